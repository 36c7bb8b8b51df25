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

// CreateProspectInput holds the fields accepted when creating a prospect.
type CreateProspectInput struct {
	FirstName          string
	LastName           string
	BusinessName       string
	Email              string
	Phone              string
	Source             string
	SourceDetail       string
	ReferrerAccountID  *string
	LOBInterest        string
	EstimatedPremium   int64
	CurrentCarrier     string
	CurrentExpiration  *time.Time
	AssignedProducerID *string
	Zip                string
	County             string
}

// ProspectUpdateFields holds the optional fields for a prospect update.
// Pipeline stage moves go through UpdateProspectStage instead.
type ProspectUpdateFields struct {
	FirstName          *string
	LastName           *string
	BusinessName       *string
	Email              *string
	Phone              *string
	Source             *string
	SourceDetail       *string
	ReferrerAccountID  *string
	LOBInterest        *string
	EstimatedPremium   *int64
	CurrentCarrier     *string
	CurrentExpiration  *time.Time
	AssignedProducerID *string
	Zip                *string
	County             *string
}

// ProspectFilter holds optional filter parameters for listing prospects.
type ProspectFilter struct {
	Stage      string
	Source     string
	ProducerID string
	Search     string
}

// prospectService handles pipeline business logic.
type prospectService struct {
	db *gorm.DB
}

// NewProspectService creates a new ProspectServicer.
func NewProspectService(db *gorm.DB) ProspectServicer {
	return &prospectService{db: db}
}

// CreateProspect creates a prospect at the default pipeline stage.
func (s *prospectService) CreateProspect(actor authz.Actor, meta audit.RequestMeta, input CreateProspectInput) (*models.Prospect, error) {
	if err := authz.Authorize(actor.Role, authz.ActionCreate, models.EntityProspect); err != nil {
		return nil, err
	}
	if input.FirstName == "" && input.LastName == "" && input.BusinessName == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "prospect name is required")
	}

	prospect := &models.Prospect{
		FirstName:          input.FirstName,
		LastName:           input.LastName,
		BusinessName:       input.BusinessName,
		Email:              input.Email,
		Phone:              input.Phone,
		Source:             input.Source,
		SourceDetail:       input.SourceDetail,
		ReferrerAccountID:  input.ReferrerAccountID,
		LOBInterest:        input.LOBInterest,
		EstimatedPremium:   input.EstimatedPremium,
		CurrentCarrier:     input.CurrentCarrier,
		CurrentExpiration:  input.CurrentExpiration,
		PipelineStage:      models.StageNewLead,
		AssignedProducerID: input.AssignedProducerID,
		Zip:                input.Zip,
		County:             input.County,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(prospect).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		rec := audit.NewRecorder(tx, &actor.ID, meta)
		return rec.Created(models.EntityProspect, prospect.ID, nil)
	})
	if err != nil {
		return nil, err
	}

	return prospect, nil
}

// GetProspects retrieves a paginated, filtered list. Producers only see
// prospects assigned to them.
func (s *prospectService) GetProspects(actor authz.Actor, page pagination.PageRequest, filter ProspectFilter) (*pagination.PageResponse[models.Prospect], error) {
	page.Defaults()

	base := s.scoped(actor)
	if filter.Stage != "" {
		base = base.Where("pipeline_stage = ?", filter.Stage)
	}
	if filter.Source != "" {
		base = base.Where("source = ?", filter.Source)
	}
	if filter.ProducerID != "" {
		base = base.Where("assigned_producer_id = ?", filter.ProducerID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where(
			"(first_name || ' ' || last_name) LIKE ? OR business_name LIKE ? OR email LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var prospects []models.Prospect
	if err := base.Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&prospects).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(prospects, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetPipeline groups open prospects by stage. Closed stages are excluded.
func (s *prospectService) GetPipeline(actor authz.Actor) (map[string][]models.Prospect, error) {
	var prospects []models.Prospect
	q := s.scoped(actor).
		Where("pipeline_stage NOT IN ?", []string{models.StageClosedWon, models.StageClosedLost}).
		Order("created_at")
	if err := q.Find(&prospects).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	pipeline := map[string][]models.Prospect{
		models.StageNewLead:   {},
		models.StageContacted: {},
		models.StageQuoting:   {},
		models.StageQuoted:    {},
	}
	for _, p := range prospects {
		pipeline[p.PipelineStage] = append(pipeline[p.PipelineStage], p)
	}
	return pipeline, nil
}

// GetProspectByID retrieves one prospect, enforcing the producer read scope.
func (s *prospectService) GetProspectByID(actor authz.Actor, id string) (*models.Prospect, error) {
	prospect, err := s.fetch(id)
	if err != nil {
		return nil, err
	}
	if err := actor.CanRead(prospect.AssignedProducerID); err != nil {
		return nil, err
	}
	return prospect, nil
}

// UpdateProspect applies a partial update with per-field audit entries.
func (s *prospectService) UpdateProspect(actor authz.Actor, meta audit.RequestMeta, id string, fields ProspectUpdateFields) (*models.Prospect, error) {
	if err := authz.Authorize(actor.Role, authz.ActionUpdate, models.EntityProspect); err != nil {
		return nil, err
	}

	prospect, err := s.GetProspectByID(actor, id)
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

	if fields.FirstName != nil {
		stage("first_name", prospect.FirstName, *fields.FirstName, *fields.FirstName)
	}
	if fields.LastName != nil {
		stage("last_name", prospect.LastName, *fields.LastName, *fields.LastName)
	}
	if fields.BusinessName != nil {
		stage("business_name", prospect.BusinessName, *fields.BusinessName, *fields.BusinessName)
	}
	if fields.Email != nil {
		stage("email", prospect.Email, *fields.Email, *fields.Email)
	}
	if fields.Phone != nil {
		stage("phone", prospect.Phone, *fields.Phone, *fields.Phone)
	}
	if fields.Source != nil {
		stage("source", prospect.Source, *fields.Source, *fields.Source)
	}
	if fields.SourceDetail != nil {
		stage("source_detail", prospect.SourceDetail, *fields.SourceDetail, *fields.SourceDetail)
	}
	if fields.ReferrerAccountID != nil {
		stage("referrer_account_id", prospect.ReferrerAccountID, *fields.ReferrerAccountID, *fields.ReferrerAccountID)
	}
	if fields.LOBInterest != nil {
		stage("lob_interest", prospect.LOBInterest, *fields.LOBInterest, *fields.LOBInterest)
	}
	if fields.EstimatedPremium != nil {
		stage("estimated_premium", prospect.EstimatedPremium, *fields.EstimatedPremium, *fields.EstimatedPremium)
	}
	if fields.CurrentCarrier != nil {
		stage("current_carrier", prospect.CurrentCarrier, *fields.CurrentCarrier, *fields.CurrentCarrier)
	}
	if fields.CurrentExpiration != nil {
		stage("current_expiration", prospect.CurrentExpiration, fields.CurrentExpiration, fields.CurrentExpiration)
	}
	if fields.AssignedProducerID != nil {
		stage("assigned_producer_id", prospect.AssignedProducerID, *fields.AssignedProducerID, *fields.AssignedProducerID)
	}
	if fields.Zip != nil {
		stage("zip", prospect.Zip, *fields.Zip, *fields.Zip)
	}
	if fields.County != nil {
		stage("county", prospect.County, *fields.County, *fields.County)
	}

	if len(updates) == 0 {
		return prospect, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(prospect).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		rec := audit.NewRecorder(tx, &actor.ID, meta)
		return rec.Changed(models.EntityProspect, prospect.ID, changes)
	})
	if err != nil {
		return nil, err
	}

	return s.fetch(id)
}

// UpdateProspectStage moves a prospect through the pipeline. Entering a
// closed stage stamps closed_at as a side effect of the audited stage change.
func (s *prospectService) UpdateProspectStage(actor authz.Actor, meta audit.RequestMeta, id, newStage, closeReason string) (*models.Prospect, error) {
	if err := authz.Authorize(actor.Role, authz.ActionUpdate, models.EntityProspect); err != nil {
		return nil, err
	}

	prospect, err := s.GetProspectByID(actor, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	var changes []audit.Change

	if ch, ok := audit.Diff("pipeline_stage", prospect.PipelineStage, newStage); ok {
		updates["pipeline_stage"] = newStage
		changes = append(changes, ch)

		closing := newStage == models.StageClosedWon || newStage == models.StageClosedLost
		if closing && prospect.ClosedAt == nil {
			updates["closed_at"] = time.Now().UTC()
		}
	}
	if closeReason != "" {
		if ch, ok := audit.Diff("close_reason", prospect.CloseReason, closeReason); ok {
			updates["close_reason"] = closeReason
			changes = append(changes, ch)
		}
	}

	if len(updates) == 0 {
		return prospect, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(prospect).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		rec := audit.NewRecorder(tx, &actor.ID, meta)
		return rec.Changed(models.EntityProspect, prospect.ID, changes)
	})
	if err != nil {
		return nil, err
	}

	return s.fetch(id)
}

// ConvertProspect turns a prospect into an account, exactly once. The new
// account, its Create audit entry, and the prospect's move to Closed-Won with
// converted_account_id set all commit in one transaction. A second attempt
// returns a conflict.
func (s *prospectService) ConvertProspect(actor authz.Actor, meta audit.RequestMeta, id string) (*models.Account, error) {
	if err := authz.Authorize(actor.Role, authz.ActionUpdate, models.EntityProspect); err != nil {
		return nil, err
	}

	prospect, err := s.GetProspectByID(actor, id)
	if err != nil {
		return nil, err
	}
	if prospect.ConvertedAccountID != nil {
		return nil, apperrors.ErrProspectConverted
	}

	accountType := models.AccountTypePersonal
	if prospect.BusinessName != "" {
		accountType = models.AccountTypeCommercial
	}
	account := &models.Account{
		Name:               prospect.DisplayName(),
		Type:               accountType,
		Status:             models.AccountStatusActive,
		AssignedProducerID: prospect.AssignedProducerID,
		ZipCode:            prospect.Zip,
		County:             prospect.County,
		Phone:              prospect.Phone,
		Email:              prospect.Email,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		rec := audit.NewRecorder(tx, &actor.ID, meta)
		if err := rec.Created(models.EntityAccount, account.ID, map[string]interface{}{
			"converted_from_prospect": prospect.ID,
		}); err != nil {
			return err
		}

		updates := map[string]interface{}{"converted_account_id": account.ID}
		linkCh, _ := audit.Diff("converted_account_id", prospect.ConvertedAccountID, account.ID)
		changes := []audit.Change{linkCh}
		if ch, ok := audit.Diff("pipeline_stage", prospect.PipelineStage, models.StageClosedWon); ok {
			updates["pipeline_stage"] = models.StageClosedWon
			changes = append(changes, ch)
		}
		if prospect.ClosedAt == nil {
			updates["closed_at"] = time.Now().UTC()
		}
		if err := rec.Changed(models.EntityProspect, prospect.ID, changes); err != nil {
			return err
		}

		// The row guard catches a conversion that raced past the check
		// above; failing here rolls the new account back.
		res := tx.Model(&models.Prospect{}).
			Where("id = ? AND converted_account_id IS NULL", prospect.ID).
			Updates(updates)
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrProspectConverted
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

func (s *prospectService) scoped(actor authz.Actor) *gorm.DB {
	q := s.db.Model(&models.Prospect{})
	if actor.ScopesReads() {
		q = q.Where("assigned_producer_id = ?", actor.ID)
	}
	return q
}

func (s *prospectService) fetch(id string) (*models.Prospect, error) {
	var prospect models.Prospect
	if err := s.db.Where("id = ?", id).First(&prospect).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProspectNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &prospect, nil
}
