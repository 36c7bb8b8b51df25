package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"sentinel/internal/audit"
	"sentinel/internal/authz"
	apperrors "sentinel/internal/errors"
	"sentinel/internal/models"
	"sentinel/internal/pagination"
)

// CreateTaskInput holds the fields accepted when creating a task.
type CreateTaskInput struct {
	Title            string
	Description      string
	LinkedEntityType string
	LinkedEntityID   string
	AssignedTo       *string
	DueDate          *time.Time
	Priority         models.TaskPriority
}

// TaskUpdateFields holds the optional fields for a task update.
type TaskUpdateFields struct {
	Title       *string
	Description *string
	AssignedTo  *string
	DueDate     *time.Time
	Priority    *models.TaskPriority
	Status      *models.TaskStatus
}

// TaskFilter holds optional filter parameters for listing tasks.
type TaskFilter struct {
	Status     *models.TaskStatus
	AssignedTo string
	EntityType string
	EntityID   string
}

// taskService handles task business logic.
type taskService struct {
	db *gorm.DB
}

// NewTaskService creates a new TaskServicer.
func NewTaskService(db *gorm.DB) TaskServicer {
	return &taskService{db: db}
}

// CreateTask creates a task owned by the acting user.
func (s *taskService) CreateTask(actor authz.Actor, meta audit.RequestMeta, input CreateTaskInput) (*models.Task, error) {
	if err := authz.Authorize(actor.Role, authz.ActionCreate, models.EntityTask); err != nil {
		return nil, err
	}
	if input.Title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "task title is required")
	}

	task := &models.Task{
		Title:            input.Title,
		Description:      input.Description,
		LinkedEntityType: input.LinkedEntityType,
		LinkedEntityID:   input.LinkedEntityID,
		AssignedTo:       input.AssignedTo,
		CreatedBy:        actor.ID,
		DueDate:          input.DueDate,
		Priority:         input.Priority,
		Status:           models.TaskStatusOpen,
	}
	if task.Priority == "" {
		task.Priority = models.TaskPriorityMedium
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		rec := audit.NewRecorder(tx, &actor.ID, meta)
		return rec.Created(models.EntityTask, task.ID, nil)
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

// GetTasks retrieves a paginated, filtered list of tasks.
func (s *taskService) GetTasks(page pagination.PageRequest, filter TaskFilter) (*pagination.PageResponse[models.Task], error) {
	page.Defaults()

	base := s.db.Model(&models.Task{})
	if filter.Status != nil {
		base = base.Where("status = ?", *filter.Status)
	}
	if filter.AssignedTo != "" {
		base = base.Where("assigned_to = ?", filter.AssignedTo)
	}
	if filter.EntityType != "" && filter.EntityID != "" {
		base = base.Where("linked_entity_type = ? AND linked_entity_id = ?", filter.EntityType, filter.EntityID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var tasks []models.Task
	if err := base.Order("due_date").Scopes(pagination.Paginate(page)).Find(&tasks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(tasks, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetMyTasks lists open tasks assigned to the acting user.
func (s *taskService) GetMyTasks(actor authz.Actor, page pagination.PageRequest) (*pagination.PageResponse[models.Task], error) {
	page.Defaults()

	base := s.db.Model(&models.Task{}).
		Where("assigned_to = ?", actor.ID).
		Where("status NOT IN ?", []models.TaskStatus{models.TaskStatusCompleted, models.TaskStatusCancelled})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var tasks []models.Task
	if err := base.Order("due_date").Scopes(pagination.Paginate(page)).Find(&tasks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(tasks, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateTask applies a partial update. Moving to Completed stamps
// completed_at as a side effect of the audited status change.
func (s *taskService) UpdateTask(actor authz.Actor, meta audit.RequestMeta, id string, fields TaskUpdateFields) (*models.Task, error) {
	if err := authz.Authorize(actor.Role, authz.ActionUpdate, models.EntityTask); err != nil {
		return nil, err
	}

	task, err := s.fetch(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	var changes []audit.Change

	stage := func(column string, oldVal, newVal, apply interface{}) {
		if ch, ok := audit.Diff(column, oldVal, newVal); ok {
			updates[column] = apply
			changes = append(changes, ch)
		}
	}

	if fields.Title != nil {
		stage("title", task.Title, *fields.Title, *fields.Title)
	}
	if fields.Description != nil {
		stage("description", task.Description, *fields.Description, *fields.Description)
	}
	if fields.AssignedTo != nil {
		stage("assigned_to", task.AssignedTo, *fields.AssignedTo, *fields.AssignedTo)
	}
	if fields.DueDate != nil {
		stage("due_date", task.DueDate, fields.DueDate, fields.DueDate)
	}
	if fields.Priority != nil {
		stage("priority", task.Priority, *fields.Priority, *fields.Priority)
	}
	if fields.Status != nil {
		if ch, ok := audit.Diff("status", task.Status, *fields.Status); ok {
			updates["status"] = *fields.Status
			changes = append(changes, ch)
			if *fields.Status == models.TaskStatusCompleted && task.CompletedAt == nil {
				updates["completed_at"] = time.Now().UTC()
			}
		}
	}

	if len(updates) == 0 {
		return task, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(task).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		rec := audit.NewRecorder(tx, &actor.ID, meta)
		return rec.Changed(models.EntityTask, task.ID, changes)
	})
	if err != nil {
		return nil, err
	}

	return s.fetch(id)
}

func (s *taskService) fetch(id string) (*models.Task, error) {
	var task models.Task
	if err := s.db.Where("id = ?", id).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &task, nil
}
