package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "securecare/internal/errors"
	"securecare/internal/models"
	"securecare/internal/pagination"
	"securecare/internal/services"
)

// --- mock advisor service ---

type mockAdvisorService struct {
	createAdvisorFn       func(firstName, lastName string) (*models.Advisor, error)
	createAdvisorWithIDFn func(id uint, firstName, lastName string) (*models.Advisor, error)
	getOrCreateByNameFn   func(fullName string) (*models.Advisor, error)
	getAdvisorByIDFn      func(id uint) (*models.Advisor, error)
	listAdvisorsFn        func(page pagination.PageRequest) (*pagination.PageResponse[models.Advisor], error)
}

func (m *mockAdvisorService) CreateAdvisor(firstName, lastName string) (*models.Advisor, error) {
	if m.createAdvisorFn != nil {
		return m.createAdvisorFn(firstName, lastName)
	}
	return &models.Advisor{FirstName: firstName, LastName: lastName}, nil
}

func (m *mockAdvisorService) CreateAdvisorWithID(id uint, firstName, lastName string) (*models.Advisor, error) {
	if m.createAdvisorWithIDFn != nil {
		return m.createAdvisorWithIDFn(id, firstName, lastName)
	}
	return &models.Advisor{ID: id, FirstName: firstName, LastName: lastName}, nil
}

func (m *mockAdvisorService) GetOrCreateByName(fullName string) (*models.Advisor, error) {
	if m.getOrCreateByNameFn != nil {
		return m.getOrCreateByNameFn(fullName)
	}
	return &models.Advisor{}, nil
}

func (m *mockAdvisorService) GetAdvisorByID(id uint) (*models.Advisor, error) {
	if m.getAdvisorByIDFn != nil {
		return m.getAdvisorByIDFn(id)
	}
	return &models.Advisor{ID: id}, nil
}

func (m *mockAdvisorService) ListAdvisors(page pagination.PageRequest) (*pagination.PageResponse[models.Advisor], error) {
	if m.listAdvisorsFn != nil {
		return m.listAdvisorsFn(page)
	}
	resp := pagination.NewPageResponse([]models.Advisor{}, 1, 25, 0)
	return &resp, nil
}

var _ services.AdvisorServicer = (*mockAdvisorService)(nil)

func setupAdvisorRouter(handler *AdvisorHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.POST("/advisors", handler.CreateAdvisor)
	auth.GET("/advisors", handler.GetAdvisors)
	auth.GET("/advisors/:id", handler.GetAdvisor)
	return r
}

func TestAdvisorHandler_CreateAdvisor(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		audit := &mockAuditService{}
		handler := NewAdvisorHandler(&mockAdvisorService{}, audit)
		r := setupAdvisorRouter(handler)

		rec := doRequest(r, "POST", "/advisors", `{"first_name":"Dana","last_name":"Whitfield"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		advisor := parseJSON(t, rec)["advisor"].(map[string]interface{})
		if advisor["first_name"] != "Dana" {
			t.Errorf("expected Dana, got %v", advisor["first_name"])
		}
		if len(audit.entries) != 1 || audit.entries[0].Action != models.AuditAdvisorAdded {
			t.Errorf("expected ADVISOR_ADDED entry, got %+v", audit.entries)
		}
	})

	t.Run("returns 400 on missing last name", func(t *testing.T) {
		handler := NewAdvisorHandler(&mockAdvisorService{}, &mockAuditService{})
		r := setupAdvisorRouter(handler)

		rec := doRequest(r, "POST", "/advisors", `{"first_name":"Dana"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on validation failure", func(t *testing.T) {
		svc := &mockAdvisorService{
			createAdvisorFn: func(_, _ string) (*models.Advisor, error) {
				return nil, apperrors.WithMessage(apperrors.ErrValidation, "Advisor name contains a disallowed keyword")
			},
		}
		handler := NewAdvisorHandler(svc, &mockAuditService{})
		r := setupAdvisorRouter(handler)

		rec := doRequest(r, "POST", "/advisors", `{"first_name":"Robert drop","last_name":"Tables"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "VALIDATION_ERROR")
	})
}

func TestAdvisorHandler_GetAdvisor(t *testing.T) {
	t.Run("returns 400 on non-numeric ID", func(t *testing.T) {
		handler := NewAdvisorHandler(&mockAdvisorService{}, &mockAuditService{})
		r := setupAdvisorRouter(handler)

		rec := doRequest(r, "GET", "/advisors/abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockAdvisorService{
			getAdvisorByIDFn: func(_ uint) (*models.Advisor, error) {
				return nil, apperrors.ErrAdvisorNotFound
			},
		}
		handler := NewAdvisorHandler(svc, &mockAuditService{})
		r := setupAdvisorRouter(handler)

		rec := doRequest(r, "GET", "/advisors/999", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "ADVISOR_NOT_FOUND")
	})
}

func TestAdvisorHandler_GetAdvisors(t *testing.T) {
	t.Run("returns paginated list", func(t *testing.T) {
		svc := &mockAdvisorService{
			listAdvisorsFn: func(_ pagination.PageRequest) (*pagination.PageResponse[models.Advisor], error) {
				resp := pagination.NewPageResponse([]models.Advisor{
					{ID: 1, FirstName: "Dana", LastName: "Whitfield"},
					{ID: 2, FirstName: "Maria", LastName: "Zhou"},
				}, 1, 25, 2)
				return &resp, nil
			},
		}
		handler := NewAdvisorHandler(svc, &mockAuditService{})
		r := setupAdvisorRouter(handler)

		rec := doRequest(r, "GET", "/advisors", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		data := parseJSON(t, rec)["data"].([]interface{})
		if len(data) != 2 {
			t.Errorf("expected 2 advisors, got %d", len(data))
		}
	})
}
