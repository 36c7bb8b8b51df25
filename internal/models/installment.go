package models

import "time"

// InstallmentStatus tracks a scheduled payment.
type InstallmentStatus string

const (
	InstallmentStatusScheduled InstallmentStatus = "Scheduled"
	InstallmentStatusReminded  InstallmentStatus = "Reminded"
	InstallmentStatusPaid      InstallmentStatus = "Paid"
	InstallmentStatusPastDue   InstallmentStatus = "Past Due"
	InstallmentStatusCancelled InstallmentStatus = "Cancelled"
)

// Installment is a scheduled premium payment on a policy. Amount is in cents.
type Installment struct {
	Base
	PolicyID      string            `gorm:"type:uuid;not null;index" json:"policy_id"`
	DueDate       *time.Time        `gorm:"type:date;index" json:"due_date,omitempty"`
	Amount        int64             `gorm:"not null;default:0" json:"amount"`
	Status        InstallmentStatus `gorm:"not null;default:'Scheduled';index" json:"status"`
	PaymentMethod string            `json:"payment_method,omitempty"`
	PaidDate      *time.Time        `gorm:"type:date" json:"paid_date,omitempty"`
}
