package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"procura/internal/domain"
	"procura/internal/port"
)

type requestRepo struct {
	db *sqlx.DB
}

// NewRequestRepo creates a new PostgreSQL-backed RequestRepository.
func NewRequestRepo(db *sqlx.DB) port.RequestRepository {
	return &requestRepo{db: db}
}

func (r *requestRepo) Create(ctx context.Context, req *domain.Request) error {
	req.ID = uuid.New()
	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now
	if req.Status == "" {
		req.Status = domain.StatusOpen
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("requestRepo.Create begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `INSERT INTO requests (id, requestor_id, title, vendor_name, vat_id, department,
		commodity_group_id, total_cost, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err = tx.ExecContext(ctx, query,
		req.ID, req.RequestorID, req.Title, req.VendorName, req.VatID, req.Department,
		req.CommodityGroupID, req.TotalCost, req.Status, req.Notes, req.CreatedAt, req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("requestRepo.Create: %w", err)
	}

	if err := insertOrderLines(ctx, tx, req.ID, req.OrderLines); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("requestRepo.Create commit: %w", err)
	}
	return nil
}

func (r *requestRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Request, error) {
	var req domain.Request
	err := r.db.GetContext(ctx, &req, "SELECT * FROM requests WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("requestRepo.GetByID: %w", err)
	}

	var lines []domain.OrderLine
	err = r.db.SelectContext(ctx, &lines,
		"SELECT * FROM order_lines WHERE request_id = $1 ORDER BY position", id)
	if err != nil {
		return nil, fmt.Errorf("requestRepo.GetByID lines: %w", err)
	}
	req.OrderLines = lines
	return &req, nil
}

func (r *requestRepo) List(ctx context.Context, filter port.RequestFilter) ([]domain.Request, int, error) {
	where := []string{}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != "" {
		where = append(where, "status = "+arg(filter.Status))
	}
	if filter.RequestorID != uuid.Nil {
		where = append(where, "requestor_id = "+arg(filter.RequestorID))
	}
	if filter.Department != "" {
		where = append(where, "department = "+arg(filter.Department))
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM requests"+clause, args...); err != nil {
		return nil, 0, fmt.Errorf("requestRepo.List count: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	query := fmt.Sprintf("SELECT * FROM requests%s ORDER BY created_at DESC OFFSET %s LIMIT %s",
		clause, arg(filter.Offset), arg(limit))

	var requests []domain.Request
	if err := r.db.SelectContext(ctx, &requests, query, args...); err != nil {
		return nil, 0, fmt.Errorf("requestRepo.List: %w", err)
	}
	return requests, total, nil
}

func (r *requestRepo) Update(ctx context.Context, req *domain.Request) error {
	req.UpdatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("requestRepo.Update begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `UPDATE requests SET title = $2, vendor_name = $3, vat_id = $4, department = $5,
		commodity_group_id = $6, total_cost = $7, notes = $8, updated_at = $9 WHERE id = $1`

	result, err := tx.ExecContext(ctx, query,
		req.ID, req.Title, req.VendorName, req.VatID, req.Department,
		req.CommodityGroupID, req.TotalCost, req.Notes, req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("requestRepo.Update: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("requestRepo.Update rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	// Order lines are replaced wholesale on update.
	if _, err := tx.ExecContext(ctx, "DELETE FROM order_lines WHERE request_id = $1", req.ID); err != nil {
		return fmt.Errorf("requestRepo.Update clear lines: %w", err)
	}
	if err := insertOrderLines(ctx, tx, req.ID, req.OrderLines); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("requestRepo.Update commit: %w", err)
	}
	return nil
}

func (r *requestRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE requests SET status = $2, updated_at = $3 WHERE id = $1",
		id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("requestRepo.UpdateStatus: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("requestRepo.UpdateStatus rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *requestRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM requests WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("requestRepo.Delete: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("requestRepo.Delete rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func insertOrderLines(ctx context.Context, tx *sqlx.Tx, requestID uuid.UUID, lines []domain.OrderLine) error {
	query := `INSERT INTO order_lines (id, request_id, position, line_type, description,
		detailed_description, unit_price, amount, unit, discount_percent, discount_amount,
		total_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	now := time.Now().UTC()
	for i := range lines {
		line := &lines[i]
		line.ID = uuid.New()
		line.RequestID = requestID
		line.Position = i + 1
		line.CreatedAt = now

		_, err := tx.ExecContext(ctx, query,
			line.ID, line.RequestID, line.Position, line.LineType, line.Description,
			line.DetailedDescription, line.UnitPrice, line.Amount, line.Unit,
			line.DiscountPercent, line.DiscountAmount, line.TotalPrice, line.CreatedAt)
		if err != nil {
			return fmt.Errorf("requestRepo insert line %d: %w", i+1, err)
		}
	}
	return nil
}
