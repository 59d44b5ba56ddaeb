package domain

import "time"

// Role names understood by the gateway's authorization policies.
const (
	RoleHRAdmin  = "HR ADMIN"
	RoleManager  = "MANAGER"
	RoleEmployee = "EMPLOYEE"
)

// User models an identity record. The password hash never leaves the
// service; Roles is derived from the user-role links at read time, not
// stored on the record itself.
type User struct {
	ID           int64     `json:"id"`
	UserName     string    `json:"userName"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phoneNumber,omitempty"`
	PasswordHash string    `json:"-"`
	DateCreated  time.Time `json:"dateCreated"`
	Roles        []string  `json:"roles,omitempty"`
}
