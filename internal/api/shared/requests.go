package shared

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// validate is the shared struct-tag validator. A single instance is reused
// because validator.New compiles tag metadata once per type.
var validate = validator.New()

// SelfValidator is implemented by request types whose validation rules live
// in code rather than struct tags.
type SelfValidator interface {
	Validate() error
}

// DecodeJSON decodes the JSON request body into v.
func DecodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// ValidateRequest validates a decoded request value. A SelfValidator
// implementation takes precedence over struct-tag validation.
func ValidateRequest(v any) error {
	if sv, ok := v.(SelfValidator); ok {
		return sv.Validate()
	}
	return validate.Struct(v)
}
