// Package models defines client-side data models used by the wisatacli
// terminal dashboard.
package models

import "time"

// User is the authenticated administrator record returned by the profile
// endpoint. It is populated only after a successful session validation.
type User struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
}

// HasPermission reports whether the user carries the named permission.
func (u *User) HasPermission(name string) bool {
	for _, p := range u.Permissions {
		if p == name {
			return true
		}
	}
	return false
}

// ProfileDetail extends User with fields only shown on the profile page.
type ProfileDetail struct {
	User
	Phone     string     `json:"phone"`
	Address   string     `json:"address"`
	UpdatedAt *time.Time `json:"updated_at"`
}
