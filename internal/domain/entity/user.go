package entity

import "time"

// Roles de usuario.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User representa una cuenta con credenciales locales. El password se
// almacena solo como hash bcrypt.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         string
	LastLogin    *time.Time
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
