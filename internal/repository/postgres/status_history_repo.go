package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"procura/internal/domain"
	"procura/internal/port"
)

type statusHistoryRepo struct {
	db *sqlx.DB
}

// NewStatusHistoryRepo creates a new PostgreSQL-backed StatusHistoryRepository.
func NewStatusHistoryRepo(db *sqlx.DB) port.StatusHistoryRepository {
	return &statusHistoryRepo{db: db}
}

func (r *statusHistoryRepo) Create(ctx context.Context, entry *domain.StatusHistory) error {
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now().UTC()

	query := `INSERT INTO status_history (id, request_id, from_status, to_status, changed_by, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.RequestID, entry.FromStatus, entry.ToStatus,
		entry.ChangedBy, entry.Comment, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("statusHistoryRepo.Create: %w", err)
	}
	return nil
}

func (r *statusHistoryRepo) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.StatusHistory, error) {
	var entries []domain.StatusHistory
	err := r.db.SelectContext(ctx, &entries,
		"SELECT * FROM status_history WHERE request_id = $1 ORDER BY created_at", requestID)
	if err != nil {
		return nil, fmt.Errorf("statusHistoryRepo.ListByRequest: %w", err)
	}
	return entries, nil
}
