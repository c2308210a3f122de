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

type attachmentRepo struct {
	db *sqlx.DB
}

// NewAttachmentRepo creates a new PostgreSQL-backed AttachmentRepository.
func NewAttachmentRepo(db *sqlx.DB) port.AttachmentRepository {
	return &attachmentRepo{db: db}
}

func (r *attachmentRepo) Create(ctx context.Context, att *domain.Attachment) error {
	att.ID = uuid.New()
	att.CreatedAt = time.Now().UTC()

	query := `INSERT INTO attachments (id, request_id, file_name, file_type, content_type,
		size_bytes, storage_key, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		att.ID, att.RequestID, att.FileName, att.FileType, att.ContentType,
		att.SizeBytes, att.StorageKey, att.UploadedBy, att.CreatedAt)
	if err != nil {
		return fmt.Errorf("attachmentRepo.Create: %w", err)
	}
	return nil
}

func (r *attachmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error) {
	var att domain.Attachment
	err := r.db.GetContext(ctx, &att, "SELECT * FROM attachments WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("attachmentRepo.GetByID: %w", err)
	}
	return &att, nil
}

func (r *attachmentRepo) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.Attachment, error) {
	var atts []domain.Attachment
	err := r.db.SelectContext(ctx, &atts,
		"SELECT * FROM attachments WHERE request_id = $1 ORDER BY created_at", requestID)
	if err != nil {
		return nil, fmt.Errorf("attachmentRepo.ListByRequest: %w", err)
	}
	return atts, nil
}

func (r *attachmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM attachments WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("attachmentRepo.Delete: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("attachmentRepo.Delete rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
