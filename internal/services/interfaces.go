package services

import (
	"time"

	"sentinel/internal/audit"
	"sentinel/internal/authz"
	"sentinel/internal/models"
	"sentinel/internal/pagination"
)

// UserServicer defines the contract for user and authentication logic.
type UserServicer interface {
	Setup(meta audit.RequestMeta, email, password, name string) (*models.User, error)
	Register(actor authz.Actor, meta audit.RequestMeta, email, password, name string, role models.Role) (*models.User, error)
	AttemptLogin(meta audit.RequestMeta, email, password string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
}

// AccountServicer defines the contract for account business logic.
type AccountServicer interface {
	CreateAccount(actor authz.Actor, meta audit.RequestMeta, input CreateAccountInput) (*models.Account, error)
	GetAccounts(actor authz.Actor, page pagination.PageRequest, filter AccountFilter) (*pagination.PageResponse[models.Account], error)
	GetAccountByID(actor authz.Actor, id string) (*models.Account, error)
	UpdateAccount(actor authz.Actor, meta audit.RequestMeta, id string, fields AccountUpdateFields) (*models.Account, error)
	DeleteAccount(actor authz.Actor, meta audit.RequestMeta, id string) error
	GetAccountContacts(actor authz.Actor, accountID string) ([]models.Contact, error)
}

// ContactServicer defines the contract for contact business logic.
type ContactServicer interface {
	CreateContact(actor authz.Actor, meta audit.RequestMeta, input CreateContactInput) (*models.Contact, error)
	GetContactByID(actor authz.Actor, id string) (*models.Contact, error)
	UpdateContact(actor authz.Actor, meta audit.RequestMeta, id string, fields ContactUpdateFields) (*models.Contact, error)
}

// CarrierServicer defines the contract for carrier business logic.
type CarrierServicer interface {
	CreateCarrier(actor authz.Actor, meta audit.RequestMeta, input CreateCarrierInput) (*models.Carrier, error)
	GetCarriers(page pagination.PageRequest) (*pagination.PageResponse[models.Carrier], error)
	GetCarrierByID(id string) (*models.Carrier, error)
	CreateCarrierContact(actor authz.Actor, meta audit.RequestMeta, carrierID string, input CreateCarrierContactInput) (*models.CarrierContact, error)
	GetCarrierContacts(carrierID string) ([]models.CarrierContact, error)
}

// PolicyServicer defines the contract for policy and installment logic.
type PolicyServicer interface {
	CreatePolicy(actor authz.Actor, meta audit.RequestMeta, input CreatePolicyInput) (*models.Policy, error)
	GetPolicies(actor authz.Actor, page pagination.PageRequest, filter PolicyFilter) (*pagination.PageResponse[models.Policy], error)
	GetPolicyByID(actor authz.Actor, id string) (*models.Policy, error)
	UpdatePolicy(actor authz.Actor, meta audit.RequestMeta, id string, fields PolicyUpdateFields) (*models.Policy, error)
	CreateInstallment(actor authz.Actor, meta audit.RequestMeta, policyID string, input CreateInstallmentInput) (*models.Installment, error)
	GetPolicyInstallments(actor authz.Actor, policyID string) ([]models.Installment, error)
	UpdateInstallment(actor authz.Actor, meta audit.RequestMeta, id string, fields InstallmentUpdateFields) (*models.Installment, error)
}

// ProspectServicer defines the contract for pipeline business logic.
type ProspectServicer interface {
	CreateProspect(actor authz.Actor, meta audit.RequestMeta, input CreateProspectInput) (*models.Prospect, error)
	GetProspects(actor authz.Actor, page pagination.PageRequest, filter ProspectFilter) (*pagination.PageResponse[models.Prospect], error)
	GetPipeline(actor authz.Actor) (map[string][]models.Prospect, error)
	GetProspectByID(actor authz.Actor, id string) (*models.Prospect, error)
	UpdateProspect(actor authz.Actor, meta audit.RequestMeta, id string, fields ProspectUpdateFields) (*models.Prospect, error)
	UpdateProspectStage(actor authz.Actor, meta audit.RequestMeta, id, stage, closeReason string) (*models.Prospect, error)
	ConvertProspect(actor authz.Actor, meta audit.RequestMeta, id string) (*models.Account, error)
}

// ServiceItemServicer defines the contract for the service board.
type ServiceItemServicer interface {
	CreateServiceItem(actor authz.Actor, meta audit.RequestMeta, input CreateServiceItemInput) (*models.ServiceItem, error)
	GetServiceItems(page pagination.PageRequest, filter ServiceItemFilter) (*pagination.PageResponse[models.ServiceItem], error)
	GetBoardCounts() (*BoardCounts, error)
	GetServiceItemByID(id string) (*models.ServiceItem, error)
	UpdateServiceItem(actor authz.Actor, meta audit.RequestMeta, id string, fields ServiceItemUpdateFields) (*models.ServiceItem, error)
}

// TaskServicer defines the contract for task business logic.
type TaskServicer interface {
	CreateTask(actor authz.Actor, meta audit.RequestMeta, input CreateTaskInput) (*models.Task, error)
	GetTasks(page pagination.PageRequest, filter TaskFilter) (*pagination.PageResponse[models.Task], error)
	GetMyTasks(actor authz.Actor, page pagination.PageRequest) (*pagination.PageResponse[models.Task], error)
	UpdateTask(actor authz.Actor, meta audit.RequestMeta, id string, fields TaskUpdateFields) (*models.Task, error)
}

// SalesServicer defines the contract for the sales log and its reporting.
type SalesServicer interface {
	CreateEntry(actor authz.Actor, meta audit.RequestMeta, input CreateSalesEntryInput) (*models.SalesLogEntry, error)
	GetEntries(page pagination.PageRequest, filter SalesFilter) (*pagination.PageResponse[models.SalesLogEntry], error)
	GetSummary(now time.Time) (*SalesSummary, error)
	GetTrends(filter SalesFilter, period TrendPeriod, groupBy TrendGroup) ([]TrendBucket, error)
}

// NoteServicer defines the contract for notes and communication logs.
type NoteServicer interface {
	CreateNote(actor authz.Actor, meta audit.RequestMeta, input CreateNoteInput) (*models.Note, error)
	GetNotes(page pagination.PageRequest, entityType, entityID string) (*pagination.PageResponse[models.Note], error)
	CreateCommLog(actor authz.Actor, meta audit.RequestMeta, input CreateCommLogInput) (*models.CommunicationLog, error)
	GetCommLogs(page pagination.PageRequest, entityType, entityID string) (*pagination.PageResponse[models.CommunicationLog], error)
}

// DocumentServicer defines the contract for document metadata.
type DocumentServicer interface {
	CreateDocument(actor authz.Actor, meta audit.RequestMeta, input CreateDocumentInput) (*models.Document, error)
	GetDocuments(page pagination.PageRequest, entityType, entityID string) (*pagination.PageResponse[models.Document], error)
}

// DashboardServicer defines the contract for the landing dashboard.
type DashboardServicer interface {
	GetDashboard(actor authz.Actor, now time.Time) (*Dashboard, error)
}
