// Package audit writes the append-only change trail. Entries are inserted
// through the same gorm transaction as the mutation they describe, so an
// aborted request leaves no trace. Nothing in this package updates or deletes
// an existing entry.
package audit

import (
	"encoding/json"

	"gorm.io/gorm"

	"sentinel/internal/models"
)

// RequestMeta carries the client details stamped onto every entry.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// Change is one field diff destined for an Update entry.
type Change struct {
	Field    string
	OldValue string
	NewValue string
}

// Diff compares the canonical forms of old and new. It returns false when the
// values stringify identically, which is what makes no-op updates silent.
func Diff(field string, oldVal, newVal interface{}) (Change, bool) {
	o := Stringify(oldVal)
	n := Stringify(newVal)
	if o == n {
		return Change{}, false
	}
	return Change{Field: field, OldValue: o, NewValue: n}, true
}

// Recorder writes audit entries for one actor within one transaction.
type Recorder struct {
	tx     *gorm.DB
	userID *string
	meta   RequestMeta
}

// NewRecorder binds a recorder to the request transaction. userID may be nil
// for unauthenticated events.
func NewRecorder(tx *gorm.DB, userID *string, meta RequestMeta) *Recorder {
	return &Recorder{tx: tx, userID: userID, meta: meta}
}

// Created writes the single Create entry for a new entity. Extra metadata, if
// any, is serialized to JSON.
func (r *Recorder) Created(entityType, entityID string, metadata map[string]interface{}) error {
	entry := r.entry(models.AuditActionCreate, entityType, entityID)
	if len(metadata) > 0 {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		entry.Metadata = string(raw)
	}
	return r.tx.Create(entry).Error
}

// Changed writes one Update entry per change, in order.
func (r *Recorder) Changed(entityType, entityID string, changes []Change) error {
	for _, ch := range changes {
		entry := r.entry(models.AuditActionUpdate, entityType, entityID)
		entry.FieldChanged = ch.Field
		entry.OldValue = ch.OldValue
		entry.NewValue = ch.NewValue
		if err := r.tx.Create(entry).Error; err != nil {
			return err
		}
	}
	return nil
}

// Deleted writes the Delete entry. Callers write it before removing the row
// so the entry and the removal commit together.
func (r *Recorder) Deleted(entityType, entityID string) error {
	return r.tx.Create(r.entry(models.AuditActionDelete, entityType, entityID)).Error
}

// LoggedIn writes a Login entry for the given user.
func (r *Recorder) LoggedIn(userID string) error {
	entry := r.entry(models.AuditActionLogin, models.EntityUser, userID)
	return r.tx.Create(entry).Error
}

func (r *Recorder) entry(action models.AuditAction, entityType, entityID string) *models.AuditLog {
	return &models.AuditLog{
		UserID:     r.userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		IPAddress:  r.meta.IPAddress,
		UserAgent:  r.meta.UserAgent,
	}
}
