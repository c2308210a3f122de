package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"procura/internal/domain"
	"procura/internal/port"
)

type commodityGroupRepo struct {
	db *sqlx.DB
}

// NewCommodityGroupRepo creates a new PostgreSQL-backed CommodityGroupRepository.
func NewCommodityGroupRepo(db *sqlx.DB) port.CommodityGroupRepository {
	return &commodityGroupRepo{db: db}
}

func (r *commodityGroupRepo) List(ctx context.Context) ([]domain.CommodityGroup, error) {
	var groups []domain.CommodityGroup
	err := r.db.SelectContext(ctx, &groups,
		"SELECT * FROM commodity_groups ORDER BY category")
	if err != nil {
		return nil, fmt.Errorf("commodityGroupRepo.List: %w", err)
	}
	return groups, nil
}

func (r *commodityGroupRepo) GetByCategory(ctx context.Context, category string) (*domain.CommodityGroup, error) {
	var group domain.CommodityGroup
	err := r.db.GetContext(ctx, &group,
		"SELECT * FROM commodity_groups WHERE category = $1", category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("commodityGroupRepo.GetByCategory: %w", err)
	}
	return &group, nil
}

func (r *commodityGroupRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CommodityGroup, error) {
	var group domain.CommodityGroup
	err := r.db.GetContext(ctx, &group,
		"SELECT * FROM commodity_groups WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("commodityGroupRepo.GetByID: %w", err)
	}
	return &group, nil
}

func (r *commodityGroupRepo) Upsert(ctx context.Context, group *domain.CommodityGroup) error {
	if group.ID == uuid.Nil {
		group.ID = uuid.New()
	}
	if group.CreatedAt.IsZero() {
		group.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO commodity_groups (id, category, name, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (category) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description`

	_, err := r.db.ExecContext(ctx, query,
		group.ID, group.Category, group.Name, group.Description, group.CreatedAt)
	if err != nil {
		return fmt.Errorf("commodityGroupRepo.Upsert: %w", err)
	}
	return nil
}
