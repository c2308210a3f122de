package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"procura/internal/domain"
	"procura/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new PostgreSQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

func (r *statsRepo) CountByStatus(ctx context.Context) ([]port.StatusCount, error) {
	var counts []port.StatusCount
	err := r.db.SelectContext(ctx, &counts,
		"SELECT status, COUNT(*) AS count FROM requests GROUP BY status ORDER BY status")
	if err != nil {
		return nil, fmt.Errorf("statsRepo.CountByStatus: %w", err)
	}
	return counts, nil
}

func (r *statsRepo) SpendByDepartment(ctx context.Context) ([]port.DepartmentSpend, error) {
	var spend []port.DepartmentSpend
	err := r.db.SelectContext(ctx, &spend,
		`SELECT department, COALESCE(SUM(total_cost), 0) AS total_cost, COUNT(*) AS requests
		 FROM requests GROUP BY department ORDER BY total_cost DESC`)
	if err != nil {
		return nil, fmt.Errorf("statsRepo.SpendByDepartment: %w", err)
	}
	return spend, nil
}

func (r *statsRepo) RecentRequests(ctx context.Context, limit int) ([]domain.Request, error) {
	if limit <= 0 {
		limit = 10
	}
	var requests []domain.Request
	err := r.db.SelectContext(ctx, &requests,
		"SELECT * FROM requests ORDER BY created_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("statsRepo.RecentRequests: %w", err)
	}
	return requests, nil
}
