package models

import "time"

// PolicyStatus tracks a policy through its lifecycle.
type PolicyStatus string

const (
	PolicyStatusActive     PolicyStatus = "Active"
	PolicyStatusCancelled  PolicyStatus = "Cancelled"
	PolicyStatusExpired    PolicyStatus = "Expired"
	PolicyStatusNonRenewed PolicyStatus = "Non-Renewed"
	PolicyStatusRewritten  PolicyStatus = "Rewritten"
)

// Policy is a bound insurance policy on an account. Premium is stored in cents.
type Policy struct {
	Base
	AccountID        string       `gorm:"type:uuid;not null;index" json:"account_id"`
	CarrierID        *string      `gorm:"type:uuid;index" json:"carrier_id,omitempty"`
	LineOfBusiness   string       `gorm:"not null;index" json:"line_of_business"`
	PolicyNumber     string       `gorm:"index" json:"policy_number,omitempty"`
	EffectiveDate    *time.Time   `gorm:"type:date" json:"effective_date,omitempty"`
	ExpirationDate   *time.Time   `gorm:"type:date;index" json:"expiration_date,omitempty"`
	Premium          int64        `gorm:"not null;default:0" json:"premium"`
	PaymentPlan      string       `json:"payment_plan,omitempty"`
	RenewalStatus    string       `json:"renewal_status,omitempty"`
	Status           PolicyStatus `gorm:"not null;default:'Active';index" json:"status"`
	ServicingOwnerID *string      `gorm:"type:uuid" json:"servicing_owner_id,omitempty"`
	ProducingAgentID *string      `gorm:"type:uuid" json:"producing_agent_id,omitempty"`
	// PriorPolicyID links a rewrite back to the policy it replaced.
	PriorPolicyID *string `gorm:"type:uuid" json:"prior_policy_id,omitempty"`

	Installments []Installment `gorm:"foreignKey:PolicyID" json:"installments,omitempty"`
}
