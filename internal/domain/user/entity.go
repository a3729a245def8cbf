package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
)

type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Role         string
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole reports whether a role string is one the system recognizes.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleTeacher
}
