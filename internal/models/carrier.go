package models

// CarrierType describes the agency's relationship with a carrier.
type CarrierType string

const (
	CarrierTypeDirect     CarrierType = "Direct"
	CarrierTypeWholesaler CarrierType = "Wholesaler"
	CarrierTypeMGA        CarrierType = "MGA"
)

// Carrier is an insurance market the agency places business with.
type Carrier struct {
	Base
	Name          string      `gorm:"not null;index" json:"name"`
	Type          CarrierType `gorm:"not null" json:"type"`
	Phone         string      `gorm:"size:20" json:"phone,omitempty"`
	Email         string      `json:"email,omitempty"`
	PortalURL     string      `json:"portal_url,omitempty"`
	AppetiteNotes string      `json:"appetite_notes,omitempty"`
	AMBestRating  string      `gorm:"size:20" json:"am_best_rating,omitempty"`

	Contacts []CarrierContact `gorm:"foreignKey:CarrierID" json:"contacts,omitempty"`
}

// CarrierContact is an underwriter or rep at a carrier.
type CarrierContact struct {
	Base
	CarrierID     string `gorm:"type:uuid;not null;index" json:"carrier_id"`
	Name          string `gorm:"not null" json:"name"`
	Title         string `json:"title,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `gorm:"size:20" json:"phone,omitempty"`
	SpecialtyLOBs string `json:"specialty_lobs,omitempty"`
	Notes         string `json:"notes,omitempty"`
}
