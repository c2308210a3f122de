package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"procura/internal/domain"
)

// MockCommodityGroupRepo is a mock implementation of port.CommodityGroupRepository.
type MockCommodityGroupRepo struct {
	mock.Mock
}

func (m *MockCommodityGroupRepo) List(ctx context.Context) ([]domain.CommodityGroup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CommodityGroup), args.Error(1)
}

func (m *MockCommodityGroupRepo) GetByCategory(ctx context.Context, category string) (*domain.CommodityGroup, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommodityGroup), args.Error(1)
}

func (m *MockCommodityGroupRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CommodityGroup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommodityGroup), args.Error(1)
}

func (m *MockCommodityGroupRepo) Upsert(ctx context.Context, group *domain.CommodityGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}
