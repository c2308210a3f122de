package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"procura/internal/domain"
)

// MockStatusHistoryRepo is a mock implementation of port.StatusHistoryRepository.
type MockStatusHistoryRepo struct {
	mock.Mock
}

func (m *MockStatusHistoryRepo) Create(ctx context.Context, entry *domain.StatusHistory) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockStatusHistoryRepo) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.StatusHistory, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusHistory), args.Error(1)
}
