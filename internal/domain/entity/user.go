package entity

import "time"

// User representa un usuario del sistema.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano después de persistir
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
