// Package lesson defines the lesson draft request model and the deterministic
// prompt construction used to drive the text-generation service.
package lesson

import (
	"errors"
	"fmt"
	"strings"
)

// notSpecified is the placeholder rendered for optional fields the caller left blank.
const notSpecified = "Not specified"

// DefaultSections is the section list substituted when the caller omits one.
var DefaultSections = []string{"Learning Objectives", "Lesson Content", "Evaluation"}

// Validation errors returned by LessonRequest.Validate.
// These can be checked with errors.Is().
var (
	// ErrMissingRequiredField is returned when one or more required fields
	// are absent or blank after trimming.
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrInvalidSections is returned when a caller-provided section list
	// is empty or contains a blank entry.
	ErrInvalidSections = errors.New("invalid sections")
)

// LessonRequest holds the caller-supplied parameters for a lesson draft.
// Curriculum, ClassLevel, Subject and Topic are required; Week, SubTopic and
// Sections are optional. The value is never mutated after it is received.
type LessonRequest struct {
	Curriculum string
	ClassLevel string
	Subject    string
	Topic      string
	Week       string
	SubTopic   string
	Sections   []string
}

// Validate checks that every required field is non-empty after trimming and
// that a provided section list is non-empty with no blank entries. An omitted
// (nil) section list is valid and later falls back to DefaultSections; an
// explicitly provided empty one is rejected rather than silently defaulted.
// Required fields are never silently defaulted either; the returned error
// names the missing fields.
func (r LessonRequest) Validate() error {
	var missing []string
	if strings.TrimSpace(r.Curriculum) == "" {
		missing = append(missing, "curriculum")
	}
	if strings.TrimSpace(r.ClassLevel) == "" {
		missing = append(missing, "classLevel")
	}
	if strings.TrimSpace(r.Subject) == "" {
		missing = append(missing, "subject")
	}
	if strings.TrimSpace(r.Topic) == "" {
		missing = append(missing, "topic")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingRequiredField, strings.Join(missing, ", "))
	}

	if r.Sections != nil && len(r.Sections) == 0 {
		return fmt.Errorf("%w: provided section list is empty", ErrInvalidSections)
	}
	for i, section := range r.Sections {
		if strings.TrimSpace(section) == "" {
			return fmt.Errorf("%w: section %d is blank", ErrInvalidSections, i+1)
		}
	}

	return nil
}
