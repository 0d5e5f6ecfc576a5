package models

import "github.com/radshield/radshield-web/internal/quote"

// SetFieldsRequest sets several fields of the current wizard stage at once
type SetFieldsRequest struct {
	Fields map[string]string `json:"fields" binding:"required,min=1"`
}

// FieldErrorView is a localized validation error
type FieldErrorView struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StepView describes one stage for progress display
type StepView struct {
	Index   int    `json:"index"`
	Name    string `json:"name"`
	Label   string `json:"label"`
	Current bool   `json:"current"`
	Done    bool   `json:"done"`
}

// QuoteWizardResponse is returned by every wizard endpoint
type QuoteWizardResponse struct {
	Wizard    quote.State      `json:"wizard"`
	Steps     []StepView       `json:"steps"`
	Errors    []FieldErrorView `json:"errors,omitempty"`
	Reference string           `json:"reference,omitempty"`
	Message   string           `json:"message,omitempty"`
}
