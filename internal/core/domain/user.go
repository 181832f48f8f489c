package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the in-process representation of an account. An empty ID marks a
// transient user that has not been handed to a repository yet.
type User struct {
	ID        string
	Name      string
	Email     string
	Role      string
	CreatedAt time.Time
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsPersisted reports whether a repository has assigned an identifier.
func (u *User) IsPersisted() bool {
	return u.ID != ""
}

// WithID returns a copy of u carrying the given identity. A zero createdAt
// keeps the copy's existing timestamp.
func (u *User) WithID(id string, createdAt time.Time) *User {
	out := *u
	out.ID = id
	if !createdAt.IsZero() {
		out.CreatedAt = createdAt
	}
	return &out
}
