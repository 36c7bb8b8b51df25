package models

import "time"

// Role is the access level attached to a user. Roles gate actions, never
// entities: an entity row carries no role of its own.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleProducer Role = "Producer"
	RoleCSR      Role = "CSR"
	RoleReadOnly Role = "ReadOnly"
)

// User represents an agency staff member who can log in.
type User struct {
	Base
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Name        string     `gorm:"not null" json:"name"`
	Password    string     `gorm:"not null" json:"-"`
	Role        Role       `gorm:"not null;default:'CSR'" json:"role"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}
