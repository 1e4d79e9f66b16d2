package dto

// APIResponse is the standard response envelope: on success Body is
// populated, on failure Error is.
type APIResponse struct {
	Success bool         `json:"success"`
	Body    interface{}  `json:"body,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// NewSuccessResponse wraps a payload in a success envelope
func NewSuccessResponse(body interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Body:    body,
	}
}

// NewErrorResponse wraps an error detail in a failure envelope
func NewErrorResponse(detail *ErrorDetail) APIResponse {
	return APIResponse{
		Success: false,
		Error:   detail,
	}
}

// MessageResponse is a success body carrying only a message
type MessageResponse struct {
	Message string `json:"message"`
}
