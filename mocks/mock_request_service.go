package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"procura/internal/domain"
	"procura/internal/service"
)

// MockRequestService is a mock implementation of service.RequestService.
type MockRequestService struct {
	mock.Mock
}

func (m *MockRequestService) Create(ctx context.Context, actor service.Actor, input service.CreateRequestInput) (*domain.Request, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *MockRequestService) Get(ctx context.Context, actor service.Actor, id uuid.UUID) (*domain.Request, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *MockRequestService) List(ctx context.Context, actor service.Actor, input service.ListRequestsInput) ([]domain.Request, int, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Request), args.Int(1), args.Error(2)
}

func (m *MockRequestService) Update(ctx context.Context, actor service.Actor, id uuid.UUID, input service.UpdateRequestInput) (*domain.Request, error) {
	args := m.Called(ctx, actor, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *MockRequestService) ChangeStatus(ctx context.Context, actor service.Actor, id uuid.UUID, input service.ChangeStatusInput) (*domain.Request, error) {
	args := m.Called(ctx, actor, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *MockRequestService) Delete(ctx context.Context, actor service.Actor, id uuid.UUID) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *MockRequestService) History(ctx context.Context, actor service.Actor, id uuid.UUID) ([]domain.StatusHistory, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusHistory), args.Error(1)
}
