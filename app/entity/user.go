package entity

import "time"

type User struct {
	ID           uint64
	Account      string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
