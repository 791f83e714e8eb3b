package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	Email           string     `json:"email" db:"email"`
	PhoneNumber     *string    `json:"phone_number,omitempty" db:"phone_number"`
	PasswordHash    string     `json:"-" db:"password_hash"`
	IsEmailVerified bool       `json:"is_email_verified" db:"is_email_verified"`
	IsPremium       bool       `json:"is_premium" db:"is_premium"`
	IsOnline        bool       `json:"is_online" db:"is_online"`
	LastActive      *time.Time `json:"last_active,omitempty" db:"last_active"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}
