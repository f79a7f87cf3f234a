package dto

// ErrorResponse is the body of every non-auth failure
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   int    `json:"error" example:"404"`
	Message string `json:"message" example:"There are no students"`
}

// NewErrorResponse creates a standard error response
func NewErrorResponse(status int, message string) *ErrorResponse {
	return &ErrorResponse{
		Success: false,
		Error:   status,
		Message: message,
	}
}

// AuthErrorResponse is the body of an authentication or authorization failure
type AuthErrorResponse struct {
	Success     bool   `json:"success" example:"false"`
	Error       int    `json:"error" example:"401"`
	Code        string `json:"code" example:"token_expired"`
	Description string `json:"description" example:"Token expired."`
}

// NewAuthErrorResponse creates an auth error response
func NewAuthErrorResponse(status int, code, description string) *AuthErrorResponse {
	return &AuthErrorResponse{
		Success:     false,
		Error:       status,
		Code:        code,
		Description: description,
	}
}
