package domain

import "time"

// AuthenticatedUser is the user payload echoed back on a successful sign-in.
// It carries no credential material.
type AuthenticatedUser struct {
	ID          int64     `json:"id"`
	UserName    string    `json:"userName"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	DateCreated time.Time `json:"dateCreated"`
	Roles       []string  `json:"roles"`
}

// AuthenticatedSession is the outcome of the sign-in pipeline: a signed token
// plus the identity it was issued for.
type AuthenticatedSession struct {
	Token string            `json:"token"`
	User  AuthenticatedUser `json:"user"`
}
