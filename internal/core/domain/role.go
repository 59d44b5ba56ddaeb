package domain

import "time"

// Role is an assignable authorization role. Name is unique; deleting a role
// detaches it from every linked user.
type Role struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DateCreated time.Time `json:"dateCreated"`
}
