package models

import (
	"fmt"
	"time"
)

// Role is a closed set. Keep the switch in Valid exhaustive when adding
// roles so every gate picks the new value up.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null"     json:"username"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Role         Role      `gorm:"not null;default:user"    json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"not null"                 json:"title"`
	Price       float64   `gorm:"not null;type:decimal(10,2)" json:"price"`
	Description string    `json:"description"`
	Category    string    `gorm:"size:100"                 json:"category"`
	Image       string    `json:"image"`
	RatingRate  float64   `json:"rating_rate"`
	RatingCount uint      `json:"rating_count"`
	CreatedAt   time.Time `json:"created_at"`

	// Soft reference to the creating user, nil for seeded rows. No
	// cascade behavior is defined on delete.
	UserID *uint `gorm:"index" json:"user_id,omitempty"`
}
