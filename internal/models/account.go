package models

// AccountType distinguishes personal-lines from commercial-lines clients.
type AccountType string

const (
	AccountTypePersonal   AccountType = "Personal"
	AccountTypeCommercial AccountType = "Commercial"
)

// AccountStatus is the lifecycle status of an account.
type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "Active"
	AccountStatusInactive AccountStatus = "Inactive"
	AccountStatusProspect AccountStatus = "Prospect"
)

// Account is an insured client of the agency. Accounts are the hub most
// other records hang off of: contacts, policies, service items, sales.
type Account struct {
	Base
	Name               string        `gorm:"not null;index" json:"name"`
	Type               AccountType   `gorm:"not null" json:"type"`
	Status             AccountStatus `gorm:"not null;default:'Active'" json:"status"`
	PrimaryContactID   *string       `gorm:"type:uuid" json:"primary_contact_id,omitempty"`
	AssignedProducerID *string       `gorm:"type:uuid;index" json:"assigned_producer_id,omitempty"`
	AssignedCSRID      *string       `gorm:"type:uuid" json:"assigned_csr_id,omitempty"`
	AddressLine1       string        `json:"address_line1,omitempty"`
	AddressLine2       string        `json:"address_line2,omitempty"`
	City               string        `json:"city,omitempty"`
	State              string        `gorm:"size:2" json:"state,omitempty"`
	ZipCode            string        `gorm:"size:10" json:"zip_code,omitempty"`
	County             string        `json:"county,omitempty"`
	Phone              string        `gorm:"size:20" json:"phone,omitempty"`
	Email              string        `json:"email,omitempty"`

	Contacts []Contact `gorm:"foreignKey:AccountID" json:"contacts,omitempty"`
	Policies []Policy  `gorm:"foreignKey:AccountID" json:"policies,omitempty"`
}
