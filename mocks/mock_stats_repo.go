package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"procura/internal/domain"
	"procura/internal/port"
)

// MockStatsRepo is a mock implementation of port.StatsRepository.
type MockStatsRepo struct {
	mock.Mock
}

func (m *MockStatsRepo) CountByStatus(ctx context.Context) ([]port.StatusCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.StatusCount), args.Error(1)
}

func (m *MockStatsRepo) SpendByDepartment(ctx context.Context) ([]port.DepartmentSpend, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.DepartmentSpend), args.Error(1)
}

func (m *MockStatsRepo) RecentRequests(ctx context.Context, limit int) ([]domain.Request, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Request), args.Error(1)
}
