package models

import "time"

// Communication directions and channels.
const (
	DirectionInbound  = "Inbound"
	DirectionOutbound = "Outbound"

	ChannelEmail    = "Email"
	ChannelPhone    = "Phone"
	ChannelSMS      = "SMS"
	ChannelInPerson = "InPerson"
	ChannelOther    = "Other"
)

// CommunicationLog records a touchpoint with a contact, linked to any entity
// through the loose polymorphic pair.
type CommunicationLog struct {
	Base
	Direction           string     `gorm:"not null" json:"direction"`
	Channel             string     `gorm:"not null;index" json:"channel"`
	Subject             string     `json:"subject,omitempty"`
	BodyPreview         string     `json:"body_preview,omitempty"`
	LinkedEntityType    string     `gorm:"index:idx_comm_logs_link" json:"linked_entity_type,omitempty"`
	LinkedEntityID      string     `gorm:"index:idx_comm_logs_link" json:"linked_entity_id,omitempty"`
	ContactID           *string    `gorm:"type:uuid;index" json:"contact_id,omitempty"`
	UserID              *string    `gorm:"type:uuid" json:"user_id,omitempty"`
	CallDurationSeconds int        `gorm:"not null;default:0" json:"call_duration_seconds"`
	SentAt              *time.Time `json:"sent_at,omitempty"`
	LoggedAt            time.Time  `gorm:"not null" json:"logged_at"`
}
