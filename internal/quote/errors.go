package quote

import (
	"errors"
	"strings"
)

var (
	ErrWrongStage       = errors.New("action not available on the current stage")
	ErrUnknownField     = errors.New("unknown field")
	ErrUnknownNeed      = errors.New("unknown need")
	ErrSubmitInProgress = errors.New("submission already in progress")
	ErrAlreadySubmitted = errors.New("quote request already submitted")
	ErrTransmission     = errors.New("quote request could not be sent")
)

// FieldError is a validation failure scoped to one field. Code is the
// failed rule ("required", "email", "max", ...), Param its argument.
type FieldError struct {
	Field Field  `json:"field"`
	Code  string `json:"code"`
	Param string `json:"param,omitempty"`
}

// FieldErrors blocks a transition. It is returned as an error by Next and Submit.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, e := range fe {
		parts = append(parts, string(e.Field)+": "+e.Code)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// For returns the first error on field
func (fe FieldErrors) For(field Field) (FieldError, bool) {
	for _, e := range fe {
		if e.Field == field {
			return e, true
		}
	}
	return FieldError{}, false
}

// Has reports whether field has an error
func (fe FieldErrors) Has(field Field) bool {
	_, ok := fe.For(field)
	return ok
}

func (fe FieldErrors) only(fields ...Field) FieldErrors {
	var out FieldErrors
	for _, e := range fe {
		for _, f := range fields {
			if e.Field == f {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

func (fe FieldErrors) without(field Field) FieldErrors {
	var out FieldErrors
	for _, e := range fe {
		if e.Field != field {
			out = append(out, e)
		}
	}
	return out
}

// AsFieldErrors extracts FieldErrors from err
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
