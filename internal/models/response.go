package models

// ErrorResponse is the uniform error envelope. Field names the offending
// input field on validation failures.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

func NewFieldErrorResponse(field, message string) ErrorResponse {
	return ErrorResponse{Error: message, Field: field}
}

// ImageUploadResponse is returned after a successful image upload. Key is
// what listings store in imagekey; URL is the public object URL.
type ImageUploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
