package models

import "encoding/json"

// CreateTaskRequest represents the request body for creating a task.
// Fields are validated by TaskService.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	DueAt       string  `json:"dueAt"`
}

// UpdateTaskRequest is a partial update; absent fields are left untouched.
// DueAt is kept raw: only a string that parses as a date is applied, any
// other value is ignored.
type UpdateTaskRequest struct {
	Title       *string         `json:"title,omitempty"`
	Description *string         `json:"description,omitempty"`
	Completed   *bool           `json:"completed,omitempty"`
	DueAt       json.RawMessage `json:"dueAt,omitempty"`
}
