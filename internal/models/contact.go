package models

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name           string `json:"name" form:"name" binding:"required,max=200"`
	Email          string `json:"email" form:"email" binding:"required,email,max=254"`
	Phone          string `json:"phone" form:"phone" binding:"omitempty,max=40"`
	Company        string `json:"company" form:"company" binding:"omitempty,max=200"`
	Message        string `json:"message" form:"message" binding:"required,max=5000"`
	RecaptchaToken string `json:"recaptchaToken" form:"g-recaptcha-response"`
	// Website is a honeypot field hidden from humans
	Website string `json:"website" form:"website"`
}

// ContactResponse represents the response after submitting a contact form
type ContactResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
