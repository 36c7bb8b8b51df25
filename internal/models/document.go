package models

// Document is file metadata attached to an entity. Binary storage lives
// outside the database; FilePath points at it.
type Document struct {
	Base
	Name             string `gorm:"not null" json:"name"`
	FilePath         string `gorm:"not null" json:"file_path"`
	FileType         string `json:"file_type,omitempty"`
	FileSize         int64  `gorm:"not null;default:0" json:"file_size"`
	Category         string `gorm:"index" json:"category,omitempty"`
	LinkedEntityType string `gorm:"index:idx_documents_link" json:"linked_entity_type,omitempty"`
	LinkedEntityID   string `gorm:"index:idx_documents_link" json:"linked_entity_id,omitempty"`
	UploadedBy       string `gorm:"type:uuid;not null" json:"uploaded_by"`
	Description      string `json:"description,omitempty"`
}
