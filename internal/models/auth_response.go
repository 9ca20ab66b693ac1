package models

// UserResponse is the public view of a user
type UserResponse struct {
	ID    string `json:"id"` // UUID
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"` // JWT token
	User    UserResponse `json:"user"`
}
