package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/radshield/radshield-web/internal/i18n"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ParseValidationErrors converts binding errors to localized messages keyed
// by the form field name
func ParseValidationErrors(err error, msgs *i18n.Catalog, locale string) []ValidationError {
	var out []ValidationError

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fe := range validationErrors {
			field := formName(fe)
			out = append(out, ValidationError{
				Field:   field,
				Code:    fe.Tag(),
				Message: msgs.FieldError(locale, field, fe.Tag(), fe.Param()),
			})
		}
	}

	return out
}

// validationMap indexes errors by field for templates
func validationMap(errs []ValidationError) map[string]string {
	m := make(map[string]string, len(errs))
	for _, e := range errs {
		if _, seen := m[e.Field]; !seen {
			m[e.Field] = e.Message
		}
	}
	return m
}

// formName lowercases the struct field name, which matches the form and
// JSON names of the request models
func formName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return name
	}
	b := []byte(name)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
