package entities

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

type User struct {
	UserID       string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Active       bool
	AvatarURL    string
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) ValidateBasics() bool {
	name := strings.TrimSpace(u.Name)
	return name != "" &&
		len(name) >= 2 &&
		len(name) <= 100 &&
		IsValidEmail(u.Email) &&
		u.PasswordHash != "" &&
		IsSupportedRole(u.Role)
}

func IsSupportedRole(value Role) bool {
	switch value {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	default:
		return false
	}
}

// NormalizeEmail lowercases for case-insensitive uniqueness.
func NormalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func IsValidEmail(value string) bool {
	email := NormalizeEmail(value)
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	return len(email) <= 254 &&
		!strings.Contains(domain, "@") &&
		strings.Contains(domain, ".") &&
		!strings.HasPrefix(domain, ".") &&
		!strings.HasSuffix(domain, ".")
}

func IsValidPassword(value string) bool {
	return len(value) >= 8 && len(value) <= 72
}
