package models

import "time"

// Roles carried in the session token payload.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User represents a user of the store as the backend reports it.
// Passwords never transit through this application beyond the login proxy.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Notification is an admin-authored broadcast message.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title" validate:"required,min=3,max=150"`
	Message   string    `json:"message" validate:"required,max=1000"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
