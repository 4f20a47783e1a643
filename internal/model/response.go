package model

// MessageResponse is the body of every JSON response. Code is only set on failures.
type MessageResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}
