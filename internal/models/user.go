package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// Valid reports whether the role is one of the known values.
func (r UserRole) Valid() bool {
	return r == UserRoleUser || r == UserRoleAdmin
}

type User struct {
	ID uuid.UUID `db:"id" json:"id"`

	Username        string   `db:"username" json:"username"`
	Email           string   `db:"email" json:"email"`
	PasswordHash    string   `db:"password_hash" json:"-"`
	ProfileImageURL string   `db:"profile_image_url" json:"profile_image_url"`
	Role            UserRole `db:"role" json:"role"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	IsActive  bool      `db:"is_active" json:"is_active"`
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
