package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"procura/internal/domain"
	"procura/internal/port"
	"procura/internal/service"
	"procura/mocks"
)

type requestServiceMocks struct {
	requests *mocks.MockRequestRepo
	history  *mocks.MockStatusHistoryRepo
	groups   *mocks.MockCommodityGroupRepo
	users    *mocks.MockUserRepo
	email    *mocks.MockEmailSender
}

func newRequestService() (service.RequestService, *requestServiceMocks) {
	m := &requestServiceMocks{
		requests: new(mocks.MockRequestRepo),
		history:  new(mocks.MockStatusHistoryRepo),
		groups:   new(mocks.MockCommodityGroupRepo),
		users:    new(mocks.MockUserRepo),
		email:    new(mocks.MockEmailSender),
	}
	svc := service.NewRequestService(m.requests, m.history, m.groups, m.users, m.email)
	return svc, m
}

func requestorActor() service.Actor {
	return service.Actor{UserID: uuid.New(), Role: domain.RoleRequestor}
}

func procurementActor() service.Actor {
	return service.Actor{UserID: uuid.New(), Role: domain.RoleProcurement}
}

func validCreateInput() service.CreateRequestInput {
	return service.CreateRequestInput{
		Title:      "New laptops",
		VendorName: "ACME GmbH",
		VatID:      "DE123456789",
		Department: "Engineering",
		OrderLines: []service.OrderLineInput{
			{
				LineType:    domain.LineTypeStandard,
				Description: "Laptop",
				UnitPrice:   decimal.NewFromFloat(999.99),
				Amount:      decimal.NewFromInt(2),
				Unit:        "pcs",
			},
		},
	}
}

func TestRequestService_Create_Success(t *testing.T) {
	svc, m := newRequestService()
	actor := requestorActor()

	m.requests.On("Create", mock.Anything, mock.AnythingOfType("*domain.Request")).Return(nil)

	req, err := svc.Create(context.Background(), actor, validCreateInput())

	require.NoError(t, err)
	assert.Equal(t, actor.UserID, req.RequestorID)
	assert.Equal(t, domain.StatusOpen, req.Status)
	assert.Equal(t, "DE123456789", req.VatID)
	assert.True(t, req.TotalCost.Equal(decimal.NewFromFloat(1999.98)), "got %s", req.TotalCost)
	require.Len(t, req.OrderLines, 1)
	assert.True(t, req.OrderLines[0].TotalPrice.Equal(decimal.NewFromFloat(1999.98)))

	m.requests.AssertExpectations(t)
}

func TestRequestService_Create_NormalizesVatID(t *testing.T) {
	svc, m := newRequestService()

	m.requests.On("Create", mock.Anything, mock.AnythingOfType("*domain.Request")).Return(nil)

	input := validCreateInput()
	input.VatID = "  de123456789 "
	req, err := svc.Create(context.Background(), requestorActor(), input)

	require.NoError(t, err)
	assert.Equal(t, "DE123456789", req.VatID)
}

func TestRequestService_Create_InvalidVatID(t *testing.T) {
	svc, _ := newRequestService()

	input := validCreateInput()
	input.VatID = "DE12345"
	_, err := svc.Create(context.Background(), requestorActor(), input)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRequestService_Create_NoOrderLines(t *testing.T) {
	svc, _ := newRequestService()

	input := validCreateInput()
	input.OrderLines = nil
	_, err := svc.Create(context.Background(), requestorActor(), input)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRequestService_Create_AlternativeLinesExcludedFromTotal(t *testing.T) {
	svc, m := newRequestService()

	m.requests.On("Create", mock.Anything, mock.AnythingOfType("*domain.Request")).Return(nil)

	input := validCreateInput()
	input.OrderLines = append(input.OrderLines, service.OrderLineInput{
		LineType:    domain.LineTypeAlternative,
		Description: "Cheaper laptop",
		UnitPrice:   decimal.NewFromFloat(499.99),
		Amount:      decimal.NewFromInt(2),
	})
	req, err := svc.Create(context.Background(), requestorActor(), input)

	require.NoError(t, err)
	assert.True(t, req.TotalCost.Equal(decimal.NewFromFloat(1999.98)), "got %s", req.TotalCost)
}

func TestRequestService_Create_UnknownCommodityGroup(t *testing.T) {
	svc, m := newRequestService()

	groupID := uuid.New()
	m.groups.On("GetByID", mock.Anything, groupID).Return(nil, domain.ErrNotFound)

	input := validCreateInput()
	input.CommodityGroupID = &groupID
	_, err := svc.Create(context.Background(), requestorActor(), input)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRequestService_Get_RequestorCannotSeeForeignRequest(t *testing.T) {
	svc, m := newRequestService()
	actor := requestorActor()

	reqID := uuid.New()
	m.requests.On("GetByID", mock.Anything, reqID).Return(&domain.Request{
		ID:          reqID,
		RequestorID: uuid.New(),
	}, nil)

	_, err := svc.Get(context.Background(), actor, reqID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRequestService_Get_ProcurementSeesAll(t *testing.T) {
	svc, m := newRequestService()

	reqID := uuid.New()
	m.requests.On("GetByID", mock.Anything, reqID).Return(&domain.Request{
		ID:          reqID,
		RequestorID: uuid.New(),
	}, nil)

	req, err := svc.Get(context.Background(), procurementActor(), reqID)

	require.NoError(t, err)
	assert.Equal(t, reqID, req.ID)
}

func TestRequestService_List_RequestorScopedToOwn(t *testing.T) {
	svc, m := newRequestService()
	actor := requestorActor()

	m.requests.On("List", mock.Anything, mock.MatchedBy(func(f port.RequestFilter) bool {
		return f.RequestorID == actor.UserID
	})).Return([]domain.Request{}, 0, nil)

	_, _, err := svc.List(context.Background(), actor, service.ListRequestsInput{})

	assert.NoError(t, err)
	m.requests.AssertExpectations(t)
}

func TestRequestService_List_ProcurementUnscoped(t *testing.T) {
	svc, m := newRequestService()

	m.requests.On("List", mock.Anything, mock.MatchedBy(func(f port.RequestFilter) bool {
		return f.RequestorID == uuid.Nil
	})).Return([]domain.Request{}, 0, nil)

	_, _, err := svc.List(context.Background(), procurementActor(), service.ListRequestsInput{})

	assert.NoError(t, err)
	m.requests.AssertExpectations(t)
}

func TestRequestService_Update_ClosedRequestRejected(t *testing.T) {
	svc, m := newRequestService()
	actor := requestorActor()

	reqID := uuid.New()
	m.requests.On("GetByID", mock.Anything, reqID).Return(&domain.Request{
		ID:          reqID,
		RequestorID: actor.UserID,
		Status:      domain.StatusClosed,
	}, nil)

	title := "changed"
	_, err := svc.Update(context.Background(), actor, reqID, service.UpdateRequestInput{Title: &title})

	assert.ErrorIs(t, err, domain.ErrRequestClosed)
}

func TestRequestService_Update_RecomputesTotal(t *testing.T) {
	svc, m := newRequestService()
	actor := requestorActor()

	reqID := uuid.New()
	m.requests.On("GetByID", mock.Anything, reqID).Return(&domain.Request{
		ID:          reqID,
		RequestorID: actor.UserID,
		Status:      domain.StatusOpen,
		TotalCost:   decimal.NewFromInt(100),
	}, nil)
	m.requests.On("Update", mock.Anything, mock.AnythingOfType("*domain.Request")).Return(nil)

	req, err := svc.Update(context.Background(), actor, reqID, service.UpdateRequestInput{
		OrderLines: []service.OrderLineInput{
			{
				Description: "Monitor",
				UnitPrice:   decimal.NewFromFloat(150.50),
				Amount:      decimal.NewFromInt(3),
			},
		},
	})

	require.NoError(t, err)
	assert.True(t, req.TotalCost.Equal(decimal.NewFromFloat(451.50)), "got %s", req.TotalCost)
}

func TestRequestService_ChangeStatus_RequestorForbidden(t *testing.T) {
	svc, _ := newRequestService()

	_, err := svc.ChangeStatus(context.Background(), requestorActor(), uuid.New(), service.ChangeStatusInput{
		Status: domain.StatusInProgress,
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRequestService_ChangeStatus_Success(t *testing.T) {
	svc, m := newRequestService()
	actor := procurementActor()

	reqID := uuid.New()
	requestorID := uuid.New()
	m.requests.On("GetByID", mock.Anything, reqID).Return(&domain.Request{
		ID:          reqID,
		RequestorID: requestorID,
		Title:       "New laptops",
		Status:      domain.StatusOpen,
	}, nil)
	m.requests.On("UpdateStatus", mock.Anything, reqID, domain.StatusInProgress).Return(nil)
	m.history.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.StatusHistory) bool {
		return e.FromStatus == domain.StatusOpen && e.ToStatus == domain.StatusInProgress && e.ChangedBy == actor.UserID
	})).Return(nil)
	m.users.On("GetByID", mock.Anything, requestorID).Return(&domain.User{
		ID:       requestorID,
		Email:    "requestor@test.com",
		FullName: "Requestor",
	}, nil)
	m.email.On("SendStatusChangeEmail", mock.Anything, mock.MatchedBy(func(msg port.StatusChangeEmail) bool {
		return msg.ToEmail == "requestor@test.com" && msg.ToStatus == domain.StatusInProgress
	})).Return(nil)

	req, err := svc.ChangeStatus(context.Background(), actor, reqID, service.ChangeStatusInput{
		Status:  domain.StatusInProgress,
		Comment: "ordered",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, req.Status)
	m.requests.AssertExpectations(t)
	m.history.AssertExpectations(t)
	m.email.AssertExpectations(t)
}

func TestRequestService_ChangeStatus_ClosedIsTerminal(t *testing.T) {
	svc, m := newRequestService()

	reqID := uuid.New()
	m.requests.On("GetByID", mock.Anything, reqID).Return(&domain.Request{
		ID:     reqID,
		Status: domain.StatusClosed,
	}, nil)

	_, err := svc.ChangeStatus(context.Background(), procurementActor(), reqID, service.ChangeStatusInput{
		Status: domain.StatusOpen,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestRequestService_ChangeStatus_EmailFailureDoesNotFail(t *testing.T) {
	svc, m := newRequestService()
	actor := procurementActor()

	reqID := uuid.New()
	requestorID := uuid.New()
	m.requests.On("GetByID", mock.Anything, reqID).Return(&domain.Request{
		ID:          reqID,
		RequestorID: requestorID,
		Status:      domain.StatusInProgress,
	}, nil)
	m.requests.On("UpdateStatus", mock.Anything, reqID, domain.StatusClosed).Return(nil)
	m.history.On("Create", mock.Anything, mock.AnythingOfType("*domain.StatusHistory")).Return(nil)
	m.users.On("GetByID", mock.Anything, requestorID).Return(nil, domain.ErrNotFound)

	req, err := svc.ChangeStatus(context.Background(), actor, reqID, service.ChangeStatusInput{
		Status: domain.StatusClosed,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusClosed, req.Status)
}

func TestRequestService_Delete_OnlyOpenRequests(t *testing.T) {
	svc, m := newRequestService()
	actor := requestorActor()

	reqID := uuid.New()
	m.requests.On("GetByID", mock.Anything, reqID).Return(&domain.Request{
		ID:          reqID,
		RequestorID: actor.UserID,
		Status:      domain.StatusInProgress,
	}, nil)

	err := svc.Delete(context.Background(), actor, reqID)

	assert.ErrorIs(t, err, domain.ErrRequestNotOpen)
}

func TestRequestService_Delete_Success(t *testing.T) {
	svc, m := newRequestService()
	actor := requestorActor()

	reqID := uuid.New()
	m.requests.On("GetByID", mock.Anything, reqID).Return(&domain.Request{
		ID:          reqID,
		RequestorID: actor.UserID,
		Status:      domain.StatusOpen,
	}, nil)
	m.requests.On("Delete", mock.Anything, reqID).Return(nil)

	err := svc.Delete(context.Background(), actor, reqID)

	assert.NoError(t, err)
	m.requests.AssertExpectations(t)
}

func TestRequestService_History_ChecksVisibility(t *testing.T) {
	svc, m := newRequestService()
	actor := requestorActor()

	reqID := uuid.New()
	m.requests.On("GetByID", mock.Anything, reqID).Return(&domain.Request{
		ID:          reqID,
		RequestorID: uuid.New(),
	}, nil)

	_, err := svc.History(context.Background(), actor, reqID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
