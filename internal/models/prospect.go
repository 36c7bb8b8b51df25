package models

import "time"

// Pipeline stages. New prospects start at StageNewLead; the two Closed stages
// are terminal and stamp ClosedAt.
const (
	StageNewLead    = "New Lead"
	StageContacted  = "Contacted"
	StageQuoting    = "Quoting"
	StageQuoted     = "Quoted"
	StageClosedWon  = "Closed-Won"
	StageClosedLost = "Closed-Lost"
)

// ProspectSource values accepted on intake.
const (
	SourceReferral  = "Referral"
	SourceWeb       = "Web"
	SourceWalkIn    = "Walk-in"
	SourceMarketing = "Marketing"
	SourceCrossSell = "Cross-Sell"
	SourceOther     = "Other"
)

// Prospect is a lead moving through the sales pipeline. EstimatedPremium is in
// cents. ConvertedAccountID is set exactly once, by conversion.
type Prospect struct {
	Base
	FirstName          string     `json:"first_name,omitempty"`
	LastName           string     `json:"last_name,omitempty"`
	BusinessName       string     `json:"business_name,omitempty"`
	Email              string     `json:"email,omitempty"`
	Phone              string     `gorm:"size:20" json:"phone,omitempty"`
	Source             string     `json:"source,omitempty"`
	SourceDetail       string     `json:"source_detail,omitempty"`
	ReferrerAccountID  *string    `gorm:"type:uuid" json:"referrer_account_id,omitempty"`
	LOBInterest        string     `json:"lob_interest,omitempty"`
	EstimatedPremium   int64      `gorm:"not null;default:0" json:"estimated_premium"`
	CurrentCarrier     string     `json:"current_carrier,omitempty"`
	CurrentExpiration  *time.Time `gorm:"type:date" json:"current_expiration,omitempty"`
	PipelineStage      string     `gorm:"not null;default:'New Lead';index" json:"pipeline_stage"`
	AssignedProducerID *string    `gorm:"type:uuid;index" json:"assigned_producer_id,omitempty"`
	Zip                string     `gorm:"size:10" json:"zip,omitempty"`
	County             string     `json:"county,omitempty"`
	ClosedAt           *time.Time `json:"closed_at,omitempty"`
	CloseReason        string     `json:"close_reason,omitempty"`
	ConvertedAccountID *string    `gorm:"type:uuid" json:"converted_account_id,omitempty"`
}

// Closed reports whether the prospect sits in a terminal stage.
func (p *Prospect) Closed() bool {
	return p.PipelineStage == StageClosedWon || p.PipelineStage == StageClosedLost
}

// DisplayName prefers the business name for commercial leads.
func (p *Prospect) DisplayName() string {
	if p.BusinessName != "" {
		return p.BusinessName
	}
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
