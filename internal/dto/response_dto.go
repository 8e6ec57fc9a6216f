package dto

// ErrorResponse is the uniform error body returned by all endpoints.
type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// MessageResponse acknowledges an operation with no other payload.
type MessageResponse struct {
	Message string `json:"message"`
}
