package domain

import "time"

// User Model
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"` // UUID primary key
	Name      string    `gorm:"not null" json:"name"`         // Display name
	Email     string    `gorm:"unique;not null" json:"email"` // Unique email, matched case-sensitively
	Password  string    `gorm:"not null" json:"-"`            // Bcrypt hash, never serialized
	Role      string    `gorm:"default:user" json:"role"`     // Role: user or admin
	CreatedAt time.Time `json:"created_at"`                   // Timestamp of registration
}
