package models

// Note is free-form text attached to any entity through the loose polymorphic
// link pair.
type Note struct {
	Base
	Content          string `gorm:"not null" json:"content"`
	LinkedEntityType string `gorm:"not null;index:idx_notes_link" json:"linked_entity_type"`
	LinkedEntityID   string `gorm:"not null;index:idx_notes_link" json:"linked_entity_id"`
	CreatedBy        string `gorm:"type:uuid;not null" json:"created_by"`
}
