package models

import (
	"time"

	"gorm.io/gorm"

	"sentinel/internal/uuid"
)

// AuditAction is the kind of event an audit entry records.
type AuditAction string

const (
	AuditActionCreate AuditAction = "Create"
	AuditActionUpdate AuditAction = "Update"
	AuditActionDelete AuditAction = "Delete"
	AuditActionLogin  AuditAction = "Login"
)

// Entity type names used in audit entries and polymorphic links.
const (
	EntityAccount          = "Account"
	EntityContact          = "Contact"
	EntityCarrier          = "Carrier"
	EntityCarrierContact   = "CarrierContact"
	EntityPolicy           = "Policy"
	EntityInstallment      = "Installment"
	EntityProspect         = "Prospect"
	EntityServiceItem      = "ServiceItem"
	EntityTask             = "Task"
	EntitySalesLogEntry    = "SalesLogEntry"
	EntityNote             = "Note"
	EntityCommunicationLog = "CommunicationLog"
	EntityDocument         = "Document"
	EntityUser             = "User"
)

// AuditLog is an append-only record of who changed what. Rows are written in
// the same transaction as the change they describe and are never updated or
// deleted afterwards. Update entries carry one changed field each.
type AuditLog struct {
	ID           string      `gorm:"type:uuid;primaryKey" json:"id"`
	Timestamp    time.Time   `gorm:"not null;index" json:"timestamp"`
	UserID       *string     `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Action       AuditAction `gorm:"not null;index" json:"action"`
	EntityType   string      `gorm:"not null;index:idx_audit_logs_entity" json:"entity_type"`
	EntityID     string      `gorm:"index:idx_audit_logs_entity" json:"entity_id,omitempty"`
	FieldChanged string      `json:"field_changed,omitempty"`
	OldValue     string      `json:"old_value,omitempty"`
	NewValue     string      `json:"new_value,omitempty"`
	IPAddress    string      `gorm:"size:45" json:"ip_address,omitempty"`
	UserAgent    string      `json:"user_agent,omitempty"`
	Metadata     string      `json:"metadata,omitempty"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New()
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now().UTC()
	}
	return nil
}
