package services

import (
	"time"

	"gorm.io/gorm"

	"sentinel/internal/authz"
	apperrors "sentinel/internal/errors"
	"sentinel/internal/models"
)

// Dashboard is the aggregated landing view: everything that matters today.
type Dashboard struct {
	TasksDueToday           int64 `json:"tasks_due_today"`
	TasksOverdue            int64 `json:"tasks_overdue"`
	ServiceItemsDueThisWeek int64 `json:"service_items_due_this_week"`
	ServiceItemsOverdue     int64 `json:"service_items_overdue"`
	InstallmentsDueThisWeek int64 `json:"installments_due_this_week"`
	InstallmentsPastDue     int64 `json:"installments_past_due"`
	PipelineCount           int64 `json:"pipeline_count"`
	PipelineValue           int64 `json:"pipeline_value"`
	SalesThisMonth          int64 `json:"sales_this_month"`
	SalesPremiumThisMonth   int64 `json:"sales_premium_this_month"`
	AutoItemsThisMonth      int64 `json:"auto_items_this_month"`

	RecentTasks        []models.Task        `json:"recent_tasks"`
	RecentServiceItems []models.ServiceItem `json:"recent_service_items"`
}

// dashboardService assembles the dashboard from pure read queries. No audit
// entries are written here.
type dashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(db *gorm.DB) DashboardServicer {
	return &dashboardService{db: db}
}

var (
	openTaskStatuses       = []models.TaskStatus{models.TaskStatusOpen, models.TaskStatusInProgress}
	terminalItemStatuses   = []models.ServiceItemStatus{models.ServiceItemStatusCompleted, models.ServiceItemStatusClosed}
	pendingInstallStatuses = []models.InstallmentStatus{models.InstallmentStatusScheduled, models.InstallmentStatusReminded}
	closedStages           = []string{models.StageClosedWon, models.StageClosedLost}
)

// GetDashboard computes the dashboard relative to now. "This week" runs from
// today through the coming Sunday inclusive; overdue means a due date
// strictly before today on a non-terminal row.
func (s *dashboardService) GetDashboard(actor authz.Actor, now time.Time) (*Dashboard, error) {
	day := today(now)
	weekEnd := day.AddDate(0, 0, (7-int(day.Weekday()))%7)
	monthStart := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)

	d := &Dashboard{}

	// Tasks
	if err := s.count(&d.TasksDueToday, s.db.Model(&models.Task{}).
		Where("due_date = ?", day).
		Where("status IN ?", openTaskStatuses)); err != nil {
		return nil, err
	}
	if err := s.count(&d.TasksOverdue, s.db.Model(&models.Task{}).
		Where("due_date < ?", day).
		Where("status IN ?", openTaskStatuses)); err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Task{}).
		Where("status IN ?", openTaskStatuses).
		Order("due_date").Limit(10).
		Find(&d.RecentTasks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Service items
	if err := s.count(&d.ServiceItemsDueThisWeek, s.db.Model(&models.ServiceItem{}).
		Where("due_date >= ? AND due_date <= ?", day, weekEnd).
		Where("status NOT IN ?", terminalItemStatuses)); err != nil {
		return nil, err
	}
	if err := s.count(&d.ServiceItemsOverdue, s.db.Model(&models.ServiceItem{}).
		Where("due_date < ?", day).
		Where("status NOT IN ?", terminalItemStatuses)); err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.ServiceItem{}).
		Where("status NOT IN ?", terminalItemStatuses).
		Order("due_date").Limit(10).
		Find(&d.RecentServiceItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Installments
	if err := s.count(&d.InstallmentsDueThisWeek, s.db.Model(&models.Installment{}).
		Where("due_date >= ? AND due_date <= ?", day, weekEnd).
		Where("status IN ?", pendingInstallStatuses)); err != nil {
		return nil, err
	}
	if err := s.count(&d.InstallmentsPastDue, s.db.Model(&models.Installment{}).
		Where("due_date < ?", day).
		Where("status IN ?", pendingInstallStatuses)); err != nil {
		return nil, err
	}

	// Pipeline, with the same producer scoping as prospect lists
	pipeline := s.db.Model(&models.Prospect{}).
		Where("pipeline_stage NOT IN ?", closedStages)
	if actor.ScopesReads() {
		pipeline = pipeline.Where("assigned_producer_id = ?", actor.ID)
	}
	pipelineRow := struct {
		Count int64
		Value int64
	}{}
	if err := pipeline.Select("COUNT(id) AS count, COALESCE(SUM(estimated_premium), 0) AS value").
		Scan(&pipelineRow).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	d.PipelineCount = pipelineRow.Count
	d.PipelineValue = pipelineRow.Value

	// Sales month to date
	salesRow := struct {
		Count   int64
		Premium int64
	}{}
	if err := s.db.Model(&models.SalesLogEntry{}).
		Where("date >= ?", monthStart).
		Select("COUNT(id) AS count, COALESCE(SUM(premium), 0) AS premium").
		Scan(&salesRow).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	d.SalesThisMonth = salesRow.Count
	d.SalesPremiumThisMonth = salesRow.Premium

	if err := s.count(&d.AutoItemsThisMonth, s.db.Model(&models.SalesLogEntry{}).
		Where("date >= ?", monthStart).
		Where("line_of_business = ?", quotaLineOfBusiness).
		Where("sale_type IN ?", quotaSaleTypes)); err != nil {
		return nil, err
	}

	if d.RecentTasks == nil {
		d.RecentTasks = []models.Task{}
	}
	if d.RecentServiceItems == nil {
		d.RecentServiceItems = []models.ServiceItem{}
	}
	return d, nil
}

func (s *dashboardService) count(dst *int64, q *gorm.DB) error {
	if err := q.Count(dst).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
