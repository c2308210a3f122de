package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"procura/internal/domain"
	"procura/internal/handler"
	"procura/internal/middleware"
	"procura/internal/service"
	"procura/mocks"
)

// authedContext builds a test context carrying an authenticated actor.
func authedContext(t *testing.T, actor service.Actor, method, path string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	c.Request, _ = http.NewRequest(method, path, reader)
	c.Request.Header.Set("Content-Type", "application/json")

	c.Set(middleware.ContextKeyUserID, actor.UserID)
	c.Set(middleware.ContextKeyRole, string(actor.Role))
	return c, w
}

func TestRequestHandler_Create_Success(t *testing.T) {
	mockSvc := new(mocks.MockRequestService)
	h := handler.NewRequestHandler(mockSvc)
	actor := service.Actor{UserID: uuid.New(), Role: domain.RoleRequestor}

	created := &domain.Request{ID: uuid.New(), Title: "New laptops", Status: domain.StatusOpen}
	mockSvc.On("Create", mock.Anything, actor, mock.AnythingOfType("service.CreateRequestInput")).
		Return(created, nil)

	c, w := authedContext(t, actor, http.MethodPost, "/api/v1/requests", map[string]any{
		"title":       "New laptops",
		"vendor_name": "ACME GmbH",
		"vat_id":      "DE123456789",
		"department":  "Engineering",
		"order_lines": []map[string]any{
			{"description": "Laptop", "unit_price": "999.99", "amount": "2"},
		},
	})
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestRequestHandler_Create_MissingBody(t *testing.T) {
	mockSvc := new(mocks.MockRequestService)
	h := handler.NewRequestHandler(mockSvc)
	actor := service.Actor{UserID: uuid.New(), Role: domain.RoleRequestor}

	c, w := authedContext(t, actor, http.MethodPost, "/api/v1/requests", map[string]any{
		"title": "missing everything else",
	})
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Create")
}

func TestRequestHandler_List_PassesFilter(t *testing.T) {
	mockSvc := new(mocks.MockRequestService)
	h := handler.NewRequestHandler(mockSvc)
	actor := service.Actor{UserID: uuid.New(), Role: domain.RoleProcurement}

	mockSvc.On("List", mock.Anything, actor, service.ListRequestsInput{
		Status: domain.StatusOpen,
		Offset: 10,
		Limit:  5,
	}).Return([]domain.Request{}, 0, nil)

	c, w := authedContext(t, actor, http.MethodGet, "/api/v1/requests?status=open&offset=10&limit=5", nil)
	c.Request.URL.RawQuery = "status=open&offset=10&limit=5"
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestRequestHandler_List_UnknownStatus(t *testing.T) {
	mockSvc := new(mocks.MockRequestService)
	h := handler.NewRequestHandler(mockSvc)
	actor := service.Actor{UserID: uuid.New(), Role: domain.RoleRequestor}

	c, w := authedContext(t, actor, http.MethodGet, "/api/v1/requests", nil)
	c.Request.URL.RawQuery = "status=bogus"
	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "List")
}

func TestRequestHandler_GetByID_NotFound(t *testing.T) {
	mockSvc := new(mocks.MockRequestService)
	h := handler.NewRequestHandler(mockSvc)
	actor := service.Actor{UserID: uuid.New(), Role: domain.RoleRequestor}

	id := uuid.New()
	mockSvc.On("Get", mock.Anything, actor, id).Return(nil, domain.ErrNotFound)

	c, w := authedContext(t, actor, http.MethodGet, "/api/v1/requests/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequestHandler_GetByID_BadID(t *testing.T) {
	mockSvc := new(mocks.MockRequestService)
	h := handler.NewRequestHandler(mockSvc)
	actor := service.Actor{UserID: uuid.New(), Role: domain.RoleRequestor}

	c, w := authedContext(t, actor, http.MethodGet, "/api/v1/requests/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestHandler_ChangeStatus_Conflict(t *testing.T) {
	mockSvc := new(mocks.MockRequestService)
	h := handler.NewRequestHandler(mockSvc)
	actor := service.Actor{UserID: uuid.New(), Role: domain.RoleProcurement}

	id := uuid.New()
	mockSvc.On("ChangeStatus", mock.Anything, actor, id, service.ChangeStatusInput{
		Status: domain.StatusOpen,
	}).Return(nil, domain.ErrInvalidTransition)

	c, w := authedContext(t, actor, http.MethodPost, "/api/v1/requests/"+id.String()+"/status", map[string]string{
		"status": "open",
	})
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.ChangeStatus(c)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_TRANSITION", resp.Error.Code)
}

func TestRequestHandler_Delete_NotOpen(t *testing.T) {
	mockSvc := new(mocks.MockRequestService)
	h := handler.NewRequestHandler(mockSvc)
	actor := service.Actor{UserID: uuid.New(), Role: domain.RoleRequestor}

	id := uuid.New()
	mockSvc.On("Delete", mock.Anything, actor, id).Return(domain.ErrRequestNotOpen)

	c, w := authedContext(t, actor, http.MethodDelete, "/api/v1/requests/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.Delete(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRequestHandler_History_Success(t *testing.T) {
	mockSvc := new(mocks.MockRequestService)
	h := handler.NewRequestHandler(mockSvc)
	actor := service.Actor{UserID: uuid.New(), Role: domain.RoleRequestor}

	id := uuid.New()
	mockSvc.On("History", mock.Anything, actor, id).Return([]domain.StatusHistory{
		{RequestID: id, FromStatus: domain.StatusOpen, ToStatus: domain.StatusInProgress},
	}, nil)

	c, w := authedContext(t, actor, http.MethodGet, "/api/v1/requests/"+id.String()+"/history", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.History(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
