package models

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse carries a plain acknowledgment message.
type MessageResponse struct {
	Message string `json:"message"`
}
