package models

import "time"

// TaskPriority orders task lists.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
	TaskPriorityUrgent TaskPriority = "Urgent"
)

// TaskStatus tracks a task. Moving to Completed stamps CompletedAt.
type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "Open"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
	TaskStatusCancelled  TaskStatus = "Cancelled"
)

// Terminal reports whether the task no longer counts toward due/overdue work.
func (s TaskStatus) Terminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusCancelled
}

// Task is a to-do, optionally linked to any entity through the loose
// (LinkedEntityType, LinkedEntityID) pair.
type Task struct {
	Base
	Title            string       `gorm:"not null" json:"title"`
	Description      string       `json:"description,omitempty"`
	LinkedEntityType string       `gorm:"index:idx_tasks_link" json:"linked_entity_type,omitempty"`
	LinkedEntityID   string       `gorm:"index:idx_tasks_link" json:"linked_entity_id,omitempty"`
	AssignedTo       *string      `gorm:"type:uuid;index" json:"assigned_to,omitempty"`
	CreatedBy        string       `gorm:"type:uuid;not null" json:"created_by"`
	DueDate          *time.Time   `gorm:"type:date;index" json:"due_date,omitempty"`
	Priority         TaskPriority `gorm:"not null;default:'Medium'" json:"priority"`
	Status           TaskStatus   `gorm:"not null;default:'Open';index" json:"status"`
	CompletedAt      *time.Time   `json:"completed_at,omitempty"`
}
