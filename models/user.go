package models

import (
	"time"
)

// Role values assigned to users
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account in the system. A row is auto-provisioned on the
// first successful sign-in; the single protected admin can never be blocked,
// demoted or deleted.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Role      string    `gorm:"not null;default:'user'" json:"role"`
	Protected bool      `gorm:"not null;default:false" json:"protected"`
	Blocked   bool      `gorm:"not null;default:false" json:"blocked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
