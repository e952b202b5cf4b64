package lesson

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"
)

// promptTemplate is the fixed instructional template for lesson drafts.
// The wording is a constant: the same LessonRequest always produces
// byte-identical prompt text.
const promptTemplate = `You are a professional curriculum teacher preparing a lesson note draft.

Curriculum: {{.Curriculum}}
Class: {{.ClassLevel}}
Subject: {{.Subject}}
Week: {{.Week}}
Topic: {{.Topic}}
Sub-topic: {{.SubTopic}}

Write a complete lesson note for the class, subject and topic above. Follow these rules strictly:
- Include only the sections listed below, in the order given.
- Do not invent sections, facts or curriculum references beyond the stated topic.
- Begin every section with a clear heading that matches its name in the list.

Sections:
{{.SectionList}}`

var draftTemplate = template.Must(template.New("lesson_draft").Parse(promptTemplate))

// promptData represents the data passed to the prompt template.
type promptData struct {
	Curriculum  string
	ClassLevel  string
	Subject     string
	Week        string
	Topic       string
	SubTopic    string
	SectionList string
}

// BuildPrompt validates req and renders the instructional template with its
// fields. Blank optional fields render as the "Not specified" placeholder and
// an omitted section list falls back to DefaultSections.
//
// The function is pure: no I/O, no side effects, and identical input yields
// identical output.
func BuildPrompt(req LessonRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	sections := req.Sections
	if len(sections) == 0 {
		sections = DefaultSections
	}

	data := promptData{
		Curriculum:  strings.TrimSpace(req.Curriculum),
		ClassLevel:  strings.TrimSpace(req.ClassLevel),
		Subject:     strings.TrimSpace(req.Subject),
		Week:        orNotSpecified(req.Week),
		Topic:       strings.TrimSpace(req.Topic),
		SubTopic:    orNotSpecified(req.SubTopic),
		SectionList: renderSectionList(sections),
	}

	var promptBuffer bytes.Buffer
	if err := draftTemplate.Execute(&promptBuffer, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	return promptBuffer.String(), nil
}

// renderSectionList normalizes each section name and renders a numbered list,
// one entry per line, numbering from 1 and preserving input order. There is no
// trailing newline.
func renderSectionList(sections []string) string {
	var b strings.Builder
	for i, section := range sections {
		fmt.Fprintf(&b, "%d. %s\n", i+1, normalizeSection(section))
	}
	return strings.TrimRight(b.String(), "\n")
}

// normalizeSection trims the section name and upper-cases its first rune.
func normalizeSection(section string) string {
	section = strings.TrimSpace(section)
	r, size := utf8.DecodeRuneInString(section)
	if r == utf8.RuneError {
		return section
	}
	return string(unicode.ToUpper(r)) + section[size:]
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return notSpecified
	}
	return strings.TrimSpace(s)
}
