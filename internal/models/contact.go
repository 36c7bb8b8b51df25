package models

import "time"

// Contact is a person attached to an account.
type Contact struct {
	Base
	AccountID               string     `gorm:"type:uuid;not null;index" json:"account_id"`
	FirstName               string     `gorm:"not null" json:"first_name"`
	LastName                string     `gorm:"not null" json:"last_name"`
	Email                   string     `json:"email,omitempty"`
	Phone                   string     `gorm:"size:20" json:"phone,omitempty"`
	MobilePhone             string     `gorm:"size:20" json:"mobile_phone,omitempty"`
	Role                    string     `json:"role,omitempty"`
	IsPrimary               bool       `gorm:"default:false" json:"is_primary"`
	CommunicationPreference string     `json:"communication_preference,omitempty"`
	DateOfBirth             *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
}

// FullName returns the contact's display name.
func (c *Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}
