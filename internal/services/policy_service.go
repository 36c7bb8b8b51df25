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

// CreatePolicyInput holds the fields accepted when creating a policy.
type CreatePolicyInput struct {
	AccountID        string
	CarrierID        *string
	LineOfBusiness   string
	PolicyNumber     string
	EffectiveDate    *time.Time
	ExpirationDate   *time.Time
	Premium          int64
	PaymentPlan      string
	RenewalStatus    string
	Status           models.PolicyStatus
	ServicingOwnerID *string
	ProducingAgentID *string
	PriorPolicyID    *string
}

// PolicyUpdateFields holds the optional fields for a policy update.
type PolicyUpdateFields struct {
	CarrierID        *string
	LineOfBusiness   *string
	PolicyNumber     *string
	EffectiveDate    *time.Time
	ExpirationDate   *time.Time
	Premium          *int64
	PaymentPlan      *string
	RenewalStatus    *string
	Status           *models.PolicyStatus
	ServicingOwnerID *string
	ProducingAgentID *string
	PriorPolicyID    *string
}

// PolicyFilter holds optional filter parameters for listing policies.
type PolicyFilter struct {
	AccountID      string
	Status         *models.PolicyStatus
	LineOfBusiness string
	CarrierID      string
}

// CreateInstallmentInput holds the fields for a new installment.
type CreateInstallmentInput struct {
	DueDate       *time.Time
	Amount        int64
	Status        models.InstallmentStatus
	PaymentMethod string
}

// InstallmentUpdateFields holds the optional fields for an installment update.
type InstallmentUpdateFields struct {
	DueDate       *time.Time
	Amount        *int64
	Status        *models.InstallmentStatus
	PaymentMethod *string
	PaidDate      *time.Time
}

// policyService handles policy and installment business logic.
type policyService struct {
	db *gorm.DB
}

// NewPolicyService creates a new PolicyServicer.
func NewPolicyService(db *gorm.DB) PolicyServicer {
	return &policyService{db: db}
}

// CreatePolicy creates a policy under an existing account.
func (s *policyService) CreatePolicy(actor authz.Actor, meta audit.RequestMeta, input CreatePolicyInput) (*models.Policy, error) {
	if err := authz.Authorize(actor.Role, authz.ActionCreate, models.EntityPolicy); err != nil {
		return nil, err
	}
	if input.LineOfBusiness == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "line of business is required")
	}

	var count int64
	if err := s.db.Model(&models.Account{}).Where("id = ?", input.AccountID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrAccountNotFound
	}

	policy := &models.Policy{
		AccountID:        input.AccountID,
		CarrierID:        input.CarrierID,
		LineOfBusiness:   input.LineOfBusiness,
		PolicyNumber:     input.PolicyNumber,
		EffectiveDate:    input.EffectiveDate,
		ExpirationDate:   input.ExpirationDate,
		Premium:          input.Premium,
		PaymentPlan:      input.PaymentPlan,
		RenewalStatus:    input.RenewalStatus,
		Status:           input.Status,
		ServicingOwnerID: input.ServicingOwnerID,
		ProducingAgentID: input.ProducingAgentID,
		PriorPolicyID:    input.PriorPolicyID,
	}
	if policy.Status == "" {
		policy.Status = models.PolicyStatusActive
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(policy).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		rec := audit.NewRecorder(tx, &actor.ID, meta)
		return rec.Created(models.EntityPolicy, policy.ID, nil)
	})
	if err != nil {
		return nil, err
	}

	return policy, nil
}

// GetPolicies retrieves a paginated, filtered list of policies.
func (s *policyService) GetPolicies(actor authz.Actor, page pagination.PageRequest, filter PolicyFilter) (*pagination.PageResponse[models.Policy], error) {
	page.Defaults()

	base := s.db.Model(&models.Policy{})
	if filter.AccountID != "" {
		base = base.Where("account_id = ?", filter.AccountID)
	}
	if filter.Status != nil {
		base = base.Where("status = ?", *filter.Status)
	}
	if filter.LineOfBusiness != "" {
		base = base.Where("line_of_business = ?", filter.LineOfBusiness)
	}
	if filter.CarrierID != "" {
		base = base.Where("carrier_id = ?", filter.CarrierID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var policies []models.Policy
	if err := base.Order("expiration_date").Scopes(pagination.Paginate(page)).Find(&policies).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(policies, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetPolicyByID retrieves one policy.
func (s *policyService) GetPolicyByID(actor authz.Actor, id string) (*models.Policy, error) {
	return s.fetch(id)
}

// UpdatePolicy applies a partial update with per-field audit entries.
func (s *policyService) UpdatePolicy(actor authz.Actor, meta audit.RequestMeta, id string, fields PolicyUpdateFields) (*models.Policy, error) {
	if err := authz.Authorize(actor.Role, authz.ActionUpdate, models.EntityPolicy); err != nil {
		return nil, err
	}

	policy, err := s.fetch(id)
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

	if fields.CarrierID != nil {
		stage("carrier_id", policy.CarrierID, *fields.CarrierID, *fields.CarrierID)
	}
	if fields.LineOfBusiness != nil {
		stage("line_of_business", policy.LineOfBusiness, *fields.LineOfBusiness, *fields.LineOfBusiness)
	}
	if fields.PolicyNumber != nil {
		stage("policy_number", policy.PolicyNumber, *fields.PolicyNumber, *fields.PolicyNumber)
	}
	if fields.EffectiveDate != nil {
		stage("effective_date", policy.EffectiveDate, fields.EffectiveDate, fields.EffectiveDate)
	}
	if fields.ExpirationDate != nil {
		stage("expiration_date", policy.ExpirationDate, fields.ExpirationDate, fields.ExpirationDate)
	}
	if fields.Premium != nil {
		stage("premium", policy.Premium, *fields.Premium, *fields.Premium)
	}
	if fields.PaymentPlan != nil {
		stage("payment_plan", policy.PaymentPlan, *fields.PaymentPlan, *fields.PaymentPlan)
	}
	if fields.RenewalStatus != nil {
		stage("renewal_status", policy.RenewalStatus, *fields.RenewalStatus, *fields.RenewalStatus)
	}
	if fields.Status != nil {
		stage("status", policy.Status, *fields.Status, *fields.Status)
	}
	if fields.ServicingOwnerID != nil {
		stage("servicing_owner_id", policy.ServicingOwnerID, *fields.ServicingOwnerID, *fields.ServicingOwnerID)
	}
	if fields.ProducingAgentID != nil {
		stage("producing_agent_id", policy.ProducingAgentID, *fields.ProducingAgentID, *fields.ProducingAgentID)
	}
	if fields.PriorPolicyID != nil {
		stage("prior_policy_id", policy.PriorPolicyID, *fields.PriorPolicyID, *fields.PriorPolicyID)
	}

	if len(updates) == 0 {
		return policy, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(policy).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		rec := audit.NewRecorder(tx, &actor.ID, meta)
		return rec.Changed(models.EntityPolicy, policy.ID, changes)
	})
	if err != nil {
		return nil, err
	}

	return s.fetch(id)
}

// CreateInstallment adds a scheduled payment to a policy.
func (s *policyService) CreateInstallment(actor authz.Actor, meta audit.RequestMeta, policyID string, input CreateInstallmentInput) (*models.Installment, error) {
	if err := authz.Authorize(actor.Role, authz.ActionCreate, models.EntityInstallment); err != nil {
		return nil, err
	}

	if _, err := s.fetch(policyID); err != nil {
		return nil, err
	}

	installment := &models.Installment{
		PolicyID:      policyID,
		DueDate:       input.DueDate,
		Amount:        input.Amount,
		Status:        input.Status,
		PaymentMethod: input.PaymentMethod,
	}
	if installment.Status == "" {
		installment.Status = models.InstallmentStatusScheduled
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(installment).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		rec := audit.NewRecorder(tx, &actor.ID, meta)
		return rec.Created(models.EntityInstallment, installment.ID, nil)
	})
	if err != nil {
		return nil, err
	}

	return installment, nil
}

// GetPolicyInstallments lists a policy's installments by due date.
func (s *policyService) GetPolicyInstallments(actor authz.Actor, policyID string) ([]models.Installment, error) {
	if _, err := s.fetch(policyID); err != nil {
		return nil, err
	}

	var installments []models.Installment
	if err := s.db.Where("policy_id = ?", policyID).Order("due_date").Find(&installments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return installments, nil
}

// UpdateInstallment applies a partial update with per-field audit entries.
func (s *policyService) UpdateInstallment(actor authz.Actor, meta audit.RequestMeta, id string, fields InstallmentUpdateFields) (*models.Installment, error) {
	if err := authz.Authorize(actor.Role, authz.ActionUpdate, models.EntityInstallment); err != nil {
		return nil, err
	}

	var installment models.Installment
	if err := s.db.Where("id = ?", id).First(&installment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInstallmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := make(map[string]interface{})
	var changes []audit.Change

	stage := func(column string, oldVal, newVal, apply interface{}) {
		if ch, ok := audit.Diff(column, oldVal, newVal); ok {
			updates[column] = apply
			changes = append(changes, ch)
		}
	}

	if fields.DueDate != nil {
		stage("due_date", installment.DueDate, fields.DueDate, fields.DueDate)
	}
	if fields.Amount != nil {
		stage("amount", installment.Amount, *fields.Amount, *fields.Amount)
	}
	if fields.Status != nil {
		stage("status", installment.Status, *fields.Status, *fields.Status)
	}
	if fields.PaymentMethod != nil {
		stage("payment_method", installment.PaymentMethod, *fields.PaymentMethod, *fields.PaymentMethod)
	}
	if fields.PaidDate != nil {
		stage("paid_date", installment.PaidDate, fields.PaidDate, fields.PaidDate)
	}

	if len(updates) == 0 {
		return &installment, nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&installment).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		rec := audit.NewRecorder(tx, &actor.ID, meta)
		return rec.Changed(models.EntityInstallment, installment.ID, changes)
	})
	if err != nil {
		return nil, err
	}

	return &installment, nil
}

func (s *policyService) fetch(id string) (*models.Policy, error) {
	var policy models.Policy
	if err := s.db.Where("id = ?", id).First(&policy).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPolicyNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &policy, nil
}
