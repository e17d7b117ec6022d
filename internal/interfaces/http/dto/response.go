package dto

// ErrorResponse is the body of every non-2xx response.
// Message is for humans; Error carries the underlying cause.
type ErrorResponse struct {
	Message   string             `json:"message"`
	Error     string             `json:"error"`
	Code      string             `json:"code,omitempty"`
	RequestID string             `json:"request_id,omitempty"`
	Details   []ValidationDetail `json:"details,omitempty"`
}

// ValidationDetail describes one rejected request field
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message, cause string) ErrorResponse {
	return ErrorResponse{
		Message: message,
		Error:   cause,
		Code:    code,
	}
}

// WithRequestID returns a copy of r carrying requestID
func (r ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	r.RequestID = requestID
	return r
}

// NewValidationErrorResponse creates a 400 body listing the rejected fields.
// Error repeats the first detail so clients reading only {message, error}
// still see what was wrong.
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) ErrorResponse {
	cause := message
	if len(details) > 0 {
		cause = details[0].Field + ": " + details[0].Message
	}
	return ErrorResponse{
		Message:   message,
		Error:     cause,
		Code:      ErrCodeValidation,
		RequestID: requestID,
		Details:   details,
	}
}
