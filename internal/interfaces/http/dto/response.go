package dto

// Response is the envelope of every API response
type Response struct {
	Success      bool       `json:"success"`
	Message      string     `json:"message"`
	Data         any        `json:"data"`
	Error        *ErrorInfo `json:"error,omitempty"`
	Issues       []Issue    `json:"issues,omitempty"`
	ErrorDetails any        `json:"errorDetails,omitempty"`
	RequestID    string     `json:"requestId,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Issue is one failed validation rule
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// InvalidIDDetails names the identifier that failed to parse
type InvalidIDDetails struct {
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// DuplicateDetails names the field of a uniqueness violation
type DuplicateDetails struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// ValidationFailedMessage is the message of schema validation failures
const ValidationFailedMessage = "Validation failed"

// NewSuccessResponse creates a success response
func NewSuccessResponse(message string, data any) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{
		Success: false,
		Message: message,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// NewErrorResponseWithRequestID creates an error response carrying the request id
func NewErrorResponseWithRequestID(code, message, requestID string) Response {
	resp := NewErrorResponse(code, message)
	resp.RequestID = requestID
	return resp
}

// NewValidationErrorResponse creates a 400 validation response listing each failed rule
func NewValidationErrorResponse(requestID string, issues []Issue) Response {
	resp := NewErrorResponseWithRequestID(ErrCodeValidation, ValidationFailedMessage, requestID)
	resp.Issues = issues
	return resp
}
