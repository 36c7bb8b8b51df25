package models

import "time"

// SaleType values for a sales log entry.
const (
	SaleTypeNewBusiness = "New Business"
	SaleTypeRewrite     = "Rewrite"
	SaleTypeCrossSell   = "Cross-Sell"
	SaleTypeRenewal     = "Renewal"
)

// SalesLogEntry records one written piece of business. Premium is in cents.
type SalesLogEntry struct {
	Base
	Date           *time.Time `gorm:"type:date;not null;index" json:"date"`
	AccountID      *string    `gorm:"type:uuid;index" json:"account_id,omitempty"`
	ProspectID     *string    `gorm:"type:uuid" json:"prospect_id,omitempty"`
	PolicyID       *string    `gorm:"type:uuid" json:"policy_id,omitempty"`
	LineOfBusiness string     `gorm:"not null;index" json:"line_of_business"`
	Premium        int64      `gorm:"not null;default:0" json:"premium"`
	CarrierID      *string    `gorm:"type:uuid;index" json:"carrier_id,omitempty"`
	ProducerID     *string    `gorm:"type:uuid;index" json:"producer_id,omitempty"`
	Source         string     `json:"source,omitempty"`
	SourceDetail   string     `json:"source_detail,omitempty"`
	Zip            string     `gorm:"size:10" json:"zip,omitempty"`
	County         string     `json:"county,omitempty"`
	SaleType       string     `gorm:"not null;index" json:"sale_type"`
	Notes          string     `json:"notes,omitempty"`
}
