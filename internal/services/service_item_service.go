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

// CreateServiceItemInput holds the fields for a new service board item.
type CreateServiceItemInput struct {
	Type        models.ServiceItemType
	AccountID   string
	PolicyID    *string
	Description string
	AssignedTo  *string
	DueDate     *time.Time
	Urgency     models.ServiceItemUrgency
}

// ServiceItemUpdateFields holds the optional fields for a service item update.
type ServiceItemUpdateFields struct {
	Type        *models.ServiceItemType
	PolicyID    *string
	Description *string
	Status      *models.ServiceItemStatus
	AssignedTo  *string
	DueDate     *time.Time
	Urgency     *models.ServiceItemUrgency
}

// BoardCounts are the board header aggregates: grouped counts of non-terminal
// items by status and by type.
type BoardCounts struct {
	ByStatus map[string]int64 `json:"by_status"`
	ByType   map[string]int64 `json:"by_type"`
}

// ServiceItemFilter holds optional filter parameters for the service board.
type ServiceItemFilter struct {
	AccountID  string
	Status     *models.ServiceItemStatus
	Type       *models.ServiceItemType
	AssignedTo string
	Open       bool
}

// serviceItemService handles service board business logic.
type serviceItemService struct {
	db *gorm.DB
}

// NewServiceItemService creates a new ServiceItemServicer.
func NewServiceItemService(db *gorm.DB) ServiceItemServicer {
	return &serviceItemService{db: db}
}

// CreateServiceItem opens a service board item on an existing account.
func (s *serviceItemService) CreateServiceItem(actor authz.Actor, meta audit.RequestMeta, input CreateServiceItemInput) (*models.ServiceItem, error) {
	if err := authz.Authorize(actor.Role, authz.ActionCreate, models.EntityServiceItem); err != nil {
		return nil, err
	}
	if input.Type == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "service item type is required")
	}

	var count int64
	if err := s.db.Model(&models.Account{}).Where("id = ?", input.AccountID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrAccountNotFound
	}

	item := &models.ServiceItem{
		Type:        input.Type,
		AccountID:   input.AccountID,
		PolicyID:    input.PolicyID,
		Description: input.Description,
		Status:      models.ServiceItemStatusNotStarted,
		AssignedTo:  input.AssignedTo,
		DueDate:     input.DueDate,
		Urgency:     input.Urgency,
	}
	if item.Urgency == "" {
		item.Urgency = models.UrgencyMedium
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		rec := audit.NewRecorder(tx, &actor.ID, meta)
		return rec.Created(models.EntityServiceItem, item.ID, nil)
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// GetServiceItems retrieves a paginated, filtered view of the board.
func (s *serviceItemService) GetServiceItems(page pagination.PageRequest, filter ServiceItemFilter) (*pagination.PageResponse[models.ServiceItem], error) {
	page.Defaults()

	base := s.db.Model(&models.ServiceItem{})
	if filter.AccountID != "" {
		base = base.Where("account_id = ?", filter.AccountID)
	}
	if filter.Status != nil {
		base = base.Where("status = ?", *filter.Status)
	}
	if filter.Type != nil {
		base = base.Where("type = ?", *filter.Type)
	}
	if filter.AssignedTo != "" {
		base = base.Where("assigned_to = ?", filter.AssignedTo)
	}
	if filter.Open {
		base = base.Where("status NOT IN ?", []models.ServiceItemStatus{
			models.ServiceItemStatusCompleted, models.ServiceItemStatusClosed,
		})
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var items []models.ServiceItem
	if err := base.Order("due_date").Scopes(pagination.Paginate(page)).Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(items, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBoardCounts returns the board header aggregates over non-terminal items.
func (s *serviceItemService) GetBoardCounts() (*BoardCounts, error) {
	counts := &BoardCounts{
		ByStatus: make(map[string]int64),
		ByType:   make(map[string]int64),
	}

	type bucket struct {
		Key   string
		Count int64
	}
	terminal := []models.ServiceItemStatus{
		models.ServiceItemStatusCompleted, models.ServiceItemStatusClosed,
	}

	var byStatus []bucket
	if err := s.db.Model(&models.ServiceItem{}).
		Select("status AS key, COUNT(id) AS count").
		Where("status NOT IN ?", terminal).
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, b := range byStatus {
		counts.ByStatus[b.Key] = b.Count
	}

	var byType []bucket
	if err := s.db.Model(&models.ServiceItem{}).
		Select("type AS key, COUNT(id) AS count").
		Where("status NOT IN ?", terminal).
		Group("type").
		Scan(&byType).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, b := range byType {
		counts.ByType[b.Key] = b.Count
	}

	return counts, nil
}

// GetServiceItemByID retrieves one service item.
func (s *serviceItemService) GetServiceItemByID(id string) (*models.ServiceItem, error) {
	return s.fetch(id)
}

// UpdateServiceItem applies a partial update. Moving into a terminal status
// stamps completed_at as a side effect of the audited status change.
func (s *serviceItemService) UpdateServiceItem(actor authz.Actor, meta audit.RequestMeta, id string, fields ServiceItemUpdateFields) (*models.ServiceItem, error) {
	if err := authz.Authorize(actor.Role, authz.ActionUpdate, models.EntityServiceItem); err != nil {
		return nil, err
	}

	item, err := s.fetch(id)
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

	if fields.Type != nil {
		stage("type", item.Type, *fields.Type, *fields.Type)
	}
	if fields.PolicyID != nil {
		stage("policy_id", item.PolicyID, *fields.PolicyID, *fields.PolicyID)
	}
	if fields.Description != nil {
		stage("description", item.Description, *fields.Description, *fields.Description)
	}
	if fields.Status != nil {
		if ch, ok := audit.Diff("status", item.Status, *fields.Status); ok {
			updates["status"] = *fields.Status
			changes = append(changes, ch)
			if fields.Status.Terminal() && item.CompletedAt == nil {
				updates["completed_at"] = time.Now().UTC()
			}
		}
	}
	if fields.AssignedTo != nil {
		stage("assigned_to", item.AssignedTo, *fields.AssignedTo, *fields.AssignedTo)
	}
	if fields.DueDate != nil {
		stage("due_date", item.DueDate, fields.DueDate, fields.DueDate)
	}
	if fields.Urgency != nil {
		stage("urgency", item.Urgency, *fields.Urgency, *fields.Urgency)
	}

	if len(updates) == 0 {
		return item, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(item).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		rec := audit.NewRecorder(tx, &actor.ID, meta)
		return rec.Changed(models.EntityServiceItem, item.ID, changes)
	})
	if err != nil {
		return nil, err
	}

	return s.fetch(id)
}

func (s *serviceItemService) fetch(id string) (*models.ServiceItem, error) {
	var item models.ServiceItem
	if err := s.db.Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrServiceItemNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &item, nil
}
