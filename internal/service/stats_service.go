package service

import (
	"context"
	"fmt"

	"procura/internal/domain"
	"procura/internal/port"
)

// DashboardStats aggregates the numbers shown on the procurement dashboard.
type DashboardStats struct {
	TotalRequests  int                    `json:"total_requests"`
	ByStatus       []port.StatusCount     `json:"by_status"`
	ByDepartment   []port.DepartmentSpend `json:"by_department"`
	RecentRequests []domain.Request       `json:"recent_requests"`
}

// StatsService provides dashboard aggregates for procurement users.
type StatsService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
}

type statsService struct {
	stats port.StatsRepository
}

// NewStatsService creates a new StatsService implementation.
func NewStatsService(stats port.StatsRepository) StatsService {
	return &statsService{stats: stats}
}

func (s *statsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	byStatus, err := s.stats.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("statsService.Dashboard: %w", err)
	}
	byDepartment, err := s.stats.SpendByDepartment(ctx)
	if err != nil {
		return nil, fmt.Errorf("statsService.Dashboard: %w", err)
	}
	recent, err := s.stats.RecentRequests(ctx, 10)
	if err != nil {
		return nil, fmt.Errorf("statsService.Dashboard: %w", err)
	}

	total := 0
	for _, c := range byStatus {
		total += c.Count
	}

	return &DashboardStats{
		TotalRequests:  total,
		ByStatus:       byStatus,
		ByDepartment:   byDepartment,
		RecentRequests: recent,
	}, nil
}
