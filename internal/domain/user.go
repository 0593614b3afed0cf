package domain

import "time"

// UserRole distinguishes regular shoppers from catalog administrators.
type UserRole int

const (
	RoleSimpleUser UserRole = 0
	RoleAdmin      UserRole = 1
)

// User is the account record persisted under users/<id>.json.
type User struct {
	SchemaVersion int       `json:"schemaVersion"`
	ID            int       `json:"id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	PhoneNumber   string    `json:"phoneNumber"`
	PasswordHash  string    `json:"passwordHash"`
	Role          UserRole  `json:"role"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
