package models

// MessageResponse is the body of every error and of informational replies
type MessageResponse struct {
	Message string `json:"message"`
}
