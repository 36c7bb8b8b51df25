package models

import "time"

// ServiceItemType categorizes work on the service board.
type ServiceItemType string

const (
	ServiceItemTypeRenewal       ServiceItemType = "Renewal"
	ServiceItemTypeMidTermReview ServiceItemType = "MidTermReview"
	ServiceItemTypeRewrite       ServiceItemType = "Rewrite"
	ServiceItemTypeEndorsement   ServiceItemType = "Endorsement"
	ServiceItemTypeUWIssue       ServiceItemType = "UWIssue"
	ServiceItemTypeNonRenewal    ServiceItemType = "NonRenewal"
	ServiceItemTypePaymentIssue  ServiceItemType = "PaymentIssue"
	ServiceItemTypeGeneral       ServiceItemType = "General"
)

// ServiceItemStatus tracks a service item's progress. Completed and Closed are
// terminal and stamp CompletedAt.
type ServiceItemStatus string

const (
	ServiceItemStatusNotStarted      ServiceItemStatus = "Not Started"
	ServiceItemStatusInProgress      ServiceItemStatus = "In Progress"
	ServiceItemStatusAwaitingInsured ServiceItemStatus = "Awaiting Insured"
	ServiceItemStatusAwaitingCarrier ServiceItemStatus = "Awaiting Carrier"
	ServiceItemStatusActionRequired  ServiceItemStatus = "Action Required"
	ServiceItemStatusCompleted       ServiceItemStatus = "Completed"
	ServiceItemStatusClosed          ServiceItemStatus = "Closed"
	ServiceItemStatusEscalated       ServiceItemStatus = "Escalated"
)

// Terminal reports whether the status ends the item's life on the board.
func (s ServiceItemStatus) Terminal() bool {
	return s == ServiceItemStatusCompleted || s == ServiceItemStatusClosed
}

// ServiceItemUrgency orders the service board queue.
type ServiceItemUrgency string

const (
	UrgencyLow      ServiceItemUrgency = "Low"
	UrgencyMedium   ServiceItemUrgency = "Medium"
	UrgencyHigh     ServiceItemUrgency = "High"
	UrgencyCritical ServiceItemUrgency = "Critical"
)

// ServiceItem is a unit of servicing work tied to an account and optionally a
// policy.
type ServiceItem struct {
	Base
	Type        ServiceItemType    `gorm:"not null;index" json:"type"`
	AccountID   string             `gorm:"type:uuid;not null;index" json:"account_id"`
	PolicyID    *string            `gorm:"type:uuid;index" json:"policy_id,omitempty"`
	Description string             `json:"description,omitempty"`
	Status      ServiceItemStatus  `gorm:"not null;default:'Not Started';index" json:"status"`
	AssignedTo  *string            `gorm:"type:uuid;index" json:"assigned_to,omitempty"`
	DueDate     *time.Time         `gorm:"type:date;index" json:"due_date,omitempty"`
	Urgency     ServiceItemUrgency `gorm:"not null;default:'Medium'" json:"urgency"`
	CompletedAt *time.Time         `json:"completed_at,omitempty"`
}
