package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"sentinel/internal/audit"
	"sentinel/internal/authz"
	apperrors "sentinel/internal/errors"
	"sentinel/internal/models"
	"sentinel/internal/pagination"
	"sentinel/internal/services"
)

type mockAccountService struct {
	createAccountFn      func(actor authz.Actor, input services.CreateAccountInput) (*models.Account, error)
	getAccountsFn        func(actor authz.Actor, page pagination.PageRequest, filter services.AccountFilter) (*pagination.PageResponse[models.Account], error)
	getAccountByIDFn     func(actor authz.Actor, id string) (*models.Account, error)
	updateAccountFn      func(actor authz.Actor, id string, fields services.AccountUpdateFields) (*models.Account, error)
	deleteAccountFn      func(actor authz.Actor, id string) error
	getAccountContactsFn func(actor authz.Actor, accountID string) ([]models.Contact, error)
}

var _ services.AccountServicer = (*mockAccountService)(nil)

func (m *mockAccountService) CreateAccount(actor authz.Actor, _ audit.RequestMeta, input services.CreateAccountInput) (*models.Account, error) {
	if m.createAccountFn != nil {
		return m.createAccountFn(actor, input)
	}
	return &models.Account{}, nil
}

func (m *mockAccountService) GetAccounts(actor authz.Actor, page pagination.PageRequest, filter services.AccountFilter) (*pagination.PageResponse[models.Account], error) {
	if m.getAccountsFn != nil {
		return m.getAccountsFn(actor, page, filter)
	}
	resp := pagination.NewPageResponse[models.Account](nil, 1, 20, 0)
	return &resp, nil
}

func (m *mockAccountService) GetAccountByID(actor authz.Actor, id string) (*models.Account, error) {
	if m.getAccountByIDFn != nil {
		return m.getAccountByIDFn(actor, id)
	}
	return &models.Account{}, nil
}

func (m *mockAccountService) UpdateAccount(actor authz.Actor, _ audit.RequestMeta, id string, fields services.AccountUpdateFields) (*models.Account, error) {
	if m.updateAccountFn != nil {
		return m.updateAccountFn(actor, id, fields)
	}
	return &models.Account{}, nil
}

func (m *mockAccountService) DeleteAccount(actor authz.Actor, _ audit.RequestMeta, id string) error {
	if m.deleteAccountFn != nil {
		return m.deleteAccountFn(actor, id)
	}
	return nil
}

func (m *mockAccountService) GetAccountContacts(actor authz.Actor, accountID string) ([]models.Contact, error) {
	if m.getAccountContactsFn != nil {
		return m.getAccountContactsFn(actor, accountID)
	}
	return []models.Contact{}, nil
}

func setupAccountRouter(handler *AccountHandler, actorID string, role models.Role) *gin.Engine {
	r := gin.New()
	grp := r.Group("/accounts", injectActor(actorID, role))
	grp.GET("", handler.ListAccounts)
	grp.POST("", handler.CreateAccount)
	grp.GET("/:id", handler.GetAccount)
	grp.PUT("/:id", handler.UpdateAccount)
	grp.DELETE("/:id", handler.DeleteAccount)
	grp.GET("/:id/contacts", handler.GetAccountContacts)
	return r
}

func TestAccountHandler_CreateAccount(t *testing.T) {
	t.Run("returns 201 with the created account", func(t *testing.T) {
		accountSvc := &mockAccountService{
			createAccountFn: func(actor authz.Actor, input services.CreateAccountInput) (*models.Account, error) {
				return &models.Account{
					Base:   models.Base{ID: "acc-1"},
					Name:   input.Name,
					Type:   input.Type,
					Status: models.AccountStatusActive,
				}, nil
			},
		}
		handler := NewAccountHandler(accountSvc)
		r := setupAccountRouter(handler, "u-1", models.RoleCSR)

		rec := doRequest(r, "POST", "/accounts", `{"name":"Maple Street Bakery","type":"Commercial"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		account := parseJSON(t, rec)["account"].(map[string]interface{})
		if account["name"] != "Maple Street Bakery" {
			t.Errorf("expected name Maple Street Bakery, got %v", account["name"])
		}
		if account["status"] != "Active" {
			t.Errorf("expected status Active, got %v", account["status"])
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		handler := NewAccountHandler(&mockAccountService{})
		r := setupAccountRouter(handler, "u-1", models.RoleCSR)

		rec := doRequest(r, "POST", "/accounts", `{"type":"Personal"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on unknown account type", func(t *testing.T) {
		handler := NewAccountHandler(&mockAccountService{})
		r := setupAccountRouter(handler, "u-1", models.RoleCSR)

		rec := doRequest(r, "POST", "/accounts", `{"name":"Maple Street Bakery","type":"Enterprise"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 403 when the service denies the write", func(t *testing.T) {
		accountSvc := &mockAccountService{
			createAccountFn: func(_ authz.Actor, _ services.CreateAccountInput) (*models.Account, error) {
				return nil, apperrors.ErrForbidden
			},
		}
		handler := NewAccountHandler(accountSvc)
		r := setupAccountRouter(handler, "u-ro", models.RoleReadOnly)

		rec := doRequest(r, "POST", "/accounts", `{"name":"Maple Street Bakery","type":"Personal"}`)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "FORBIDDEN")
	})
}

func TestAccountHandler_ListAccounts(t *testing.T) {
	t.Run("returns a page and passes filters through", func(t *testing.T) {
		var gotFilter services.AccountFilter
		var gotPage pagination.PageRequest
		accountSvc := &mockAccountService{
			getAccountsFn: func(_ authz.Actor, page pagination.PageRequest, filter services.AccountFilter) (*pagination.PageResponse[models.Account], error) {
				gotFilter = filter
				gotPage = page
				resp := pagination.NewPageResponse([]models.Account{
					{Base: models.Base{ID: "acc-1"}, Name: "Maple Street Bakery"},
				}, 2, 10, 11)
				return &resp, nil
			},
		}
		handler := NewAccountHandler(accountSvc)
		r := setupAccountRouter(handler, "u-1", models.RoleCSR)

		rec := doRequest(r, "GET", "/accounts?page=2&page_size=10&status=Active&search=maple", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotPage.Page != 2 || gotPage.PageSize != 10 {
			t.Errorf("expected page 2 size 10, got %+v", gotPage)
		}
		if gotFilter.Status == nil || *gotFilter.Status != models.AccountStatusActive {
			t.Errorf("expected Active status filter, got %+v", gotFilter.Status)
		}
		if gotFilter.Search != "maple" {
			t.Errorf("expected search maple, got %q", gotFilter.Search)
		}
		result := parseJSON(t, rec)
		if result["total_items"] != float64(11) {
			t.Errorf("expected total_items 11, got %v", result["total_items"])
		}
		if len(result["data"].([]interface{})) != 1 {
			t.Errorf("expected 1 account in page, got %v", result["data"])
		}
	})

	t.Run("returns 400 on invalid pagination", func(t *testing.T) {
		handler := NewAccountHandler(&mockAccountService{})
		r := setupAccountRouter(handler, "u-1", models.RoleCSR)

		rec := doRequest(r, "GET", "/accounts?page=-1", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAccountHandler_GetAccount(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		accountSvc := &mockAccountService{
			getAccountByIDFn: func(_ authz.Actor, _ string) (*models.Account, error) {
				return nil, apperrors.ErrAccountNotFound
			},
		}
		handler := NewAccountHandler(accountSvc)
		r := setupAccountRouter(handler, "u-1", models.RoleCSR)

		rec := doRequest(r, "GET", "/accounts/missing-id", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "ACCOUNT_NOT_FOUND")
	})

	t.Run("returns 403 when out of the producer's book", func(t *testing.T) {
		accountSvc := &mockAccountService{
			getAccountByIDFn: func(_ authz.Actor, _ string) (*models.Account, error) {
				return nil, apperrors.ErrForbidden
			},
		}
		handler := NewAccountHandler(accountSvc)
		r := setupAccountRouter(handler, "u-prod", models.RoleProducer)

		rec := doRequest(r, "GET", "/accounts/acc-9", "")

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})
}

func TestAccountHandler_UpdateAccount(t *testing.T) {
	t.Run("passes only the provided fields", func(t *testing.T) {
		var gotFields services.AccountUpdateFields
		accountSvc := &mockAccountService{
			updateAccountFn: func(_ authz.Actor, id string, fields services.AccountUpdateFields) (*models.Account, error) {
				gotFields = fields
				return &models.Account{Base: models.Base{ID: id}, Name: "Maple Street Bakery", City: *fields.City}, nil
			},
		}
		handler := NewAccountHandler(accountSvc)
		r := setupAccountRouter(handler, "u-1", models.RoleCSR)

		rec := doRequest(r, "PUT", "/accounts/acc-1", `{"city":"Springfield"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotFields.City == nil || *gotFields.City != "Springfield" {
			t.Errorf("expected city Springfield, got %+v", gotFields.City)
		}
		if gotFields.Name != nil {
			t.Errorf("expected absent name to stay nil, got %q", *gotFields.Name)
		}
	})
}

func TestAccountHandler_DeleteAccount(t *testing.T) {
	t.Run("returns 204 on success", func(t *testing.T) {
		var deletedID string
		accountSvc := &mockAccountService{
			deleteAccountFn: func(_ authz.Actor, id string) error {
				deletedID = id
				return nil
			},
		}
		handler := NewAccountHandler(accountSvc)
		r := setupAccountRouter(handler, "u-admin", models.RoleAdmin)

		rec := doRequest(r, "DELETE", "/accounts/acc-1", "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
		if deletedID != "acc-1" {
			t.Errorf("expected delete of acc-1, got %q", deletedID)
		}
	})

	t.Run("returns 403 for non-admin", func(t *testing.T) {
		accountSvc := &mockAccountService{
			deleteAccountFn: func(_ authz.Actor, _ string) error {
				return apperrors.ErrForbidden
			},
		}
		handler := NewAccountHandler(accountSvc)
		r := setupAccountRouter(handler, "u-csr", models.RoleCSR)

		rec := doRequest(r, "DELETE", "/accounts/acc-1", "")

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})
}

func TestAccountHandler_GetAccountContacts(t *testing.T) {
	accountSvc := &mockAccountService{
		getAccountContactsFn: func(_ authz.Actor, accountID string) ([]models.Contact, error) {
			return []models.Contact{{Base: models.Base{ID: "con-1"}, AccountID: accountID, FirstName: "Pat"}}, nil
		},
	}
	handler := NewAccountHandler(accountSvc)
	r := setupAccountRouter(handler, "u-1", models.RoleCSR)

	rec := doRequest(r, "GET", "/accounts/acc-1/contacts", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	contacts := parseJSON(t, rec)["contacts"].([]interface{})
	if len(contacts) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(contacts))
	}
}
