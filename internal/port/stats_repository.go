package port

import (
	"context"

	"github.com/shopspring/decimal"

	"procura/internal/domain"
)

// StatusCount is the number of requests in one status.
type StatusCount struct {
	Status domain.RequestStatus `db:"status" json:"status"`
	Count  int                  `db:"count" json:"count"`
}

// DepartmentSpend aggregates total cost per department.
type DepartmentSpend struct {
	Department string          `db:"department" json:"department"`
	TotalCost  decimal.Decimal `db:"total_cost" json:"total_cost"`
	Requests   int             `db:"requests" json:"requests"`
}

// StatsRepository defines the contract for dashboard aggregates.
type StatsRepository interface {
	CountByStatus(ctx context.Context) ([]StatusCount, error)
	SpendByDepartment(ctx context.Context) ([]DepartmentSpend, error)
	RecentRequests(ctx context.Context, limit int) ([]domain.Request, error)
}
