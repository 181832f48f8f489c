// Package dto holds the shapes that leave the process. They are plain values
// and stay stable regardless of how users are stored.
package dto

// User is the public projection of a domain user.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
