package service

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"procura/internal/config"
	"procura/internal/domain"
	"procura/internal/port"
)

// UploadAttachmentInput carries an offer document to attach to a request.
type UploadAttachmentInput struct {
	FileName    string
	ContentType string
	Data        []byte
}

// AttachmentDownload is a presigned link to a stored offer document.
type AttachmentDownload struct {
	Attachment *domain.Attachment `json:"attachment"`
	URL        string             `json:"url"`
}

// AttachmentService manages offer documents stored alongside requests.
type AttachmentService interface {
	Upload(ctx context.Context, actor Actor, requestID uuid.UUID, input UploadAttachmentInput) (*domain.Attachment, error)
	List(ctx context.Context, actor Actor, requestID uuid.UUID) ([]domain.Attachment, error)
	Download(ctx context.Context, actor Actor, requestID, attachmentID uuid.UUID) (*AttachmentDownload, error)
	Delete(ctx context.Context, actor Actor, requestID, attachmentID uuid.UUID) error
}

type attachmentService struct {
	attachments port.AttachmentRepository
	requests    RequestService
	storage     port.ObjectStorage
	s3cfg       config.S3Config
	uploadCfg   config.UploadConfig
}

// NewAttachmentService creates a new AttachmentService implementation.
func NewAttachmentService(
	attachments port.AttachmentRepository,
	requests RequestService,
	storage port.ObjectStorage,
	s3cfg config.S3Config,
	uploadCfg config.UploadConfig,
) AttachmentService {
	return &attachmentService{
		attachments: attachments,
		requests:    requests,
		storage:     storage,
		s3cfg:       s3cfg,
		uploadCfg:   uploadCfg,
	}
}

func (s *attachmentService) Upload(ctx context.Context, actor Actor, requestID uuid.UUID, input UploadAttachmentInput) (*domain.Attachment, error) {
	if _, err := s.requests.Get(ctx, actor, requestID); err != nil {
		return nil, err
	}

	maxBytes := s.uploadCfg.MaxFileSizeMB * 1024 * 1024
	if int64(len(input.Data)) > maxBytes {
		return nil, fmt.Errorf("%w: file exceeds %d MB", domain.ErrFileTooLarge, s.uploadCfg.MaxFileSizeMB)
	}

	fileType, err := resolveFileType(input.FileName, input.ContentType)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("requests/%s/%s/%s", requestID, uuid.New(), input.FileName)
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(input.Data),
		ContentType: input.ContentType,
		Size:        int64(len(input.Data)),
		Metadata: map[string]string{
			"original-filename": input.FileName,
			"uploaded-by":       actor.UserID.String(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("attachmentService.Upload: %w", err)
	}

	att := &domain.Attachment{
		RequestID:   requestID,
		FileName:    input.FileName,
		FileType:    fileType,
		ContentType: input.ContentType,
		SizeBytes:   int64(len(input.Data)),
		StorageKey:  key,
		UploadedBy:  actor.UserID,
	}
	if err := s.attachments.Create(ctx, att); err != nil {
		// Best effort: do not leave an orphaned object behind.
		_ = s.storage.Delete(ctx, s.s3cfg.Bucket, key)
		return nil, fmt.Errorf("attachmentService.Upload: %w", err)
	}
	return att, nil
}

func (s *attachmentService) List(ctx context.Context, actor Actor, requestID uuid.UUID) ([]domain.Attachment, error) {
	if _, err := s.requests.Get(ctx, actor, requestID); err != nil {
		return nil, err
	}
	return s.attachments.ListByRequest(ctx, requestID)
}

func (s *attachmentService) Download(ctx context.Context, actor Actor, requestID, attachmentID uuid.UUID) (*AttachmentDownload, error) {
	att, err := s.getForRequest(ctx, actor, requestID, attachmentID)
	if err != nil {
		return nil, err
	}
	url, err := s.storage.GetPresignedURL(ctx, s.s3cfg.Bucket, att.StorageKey, s.s3cfg.PresignExpiry)
	if err != nil {
		return nil, fmt.Errorf("attachmentService.Download: %w", err)
	}
	return &AttachmentDownload{Attachment: att, URL: url}, nil
}

func (s *attachmentService) Delete(ctx context.Context, actor Actor, requestID, attachmentID uuid.UUID) error {
	att, err := s.getForRequest(ctx, actor, requestID, attachmentID)
	if err != nil {
		return err
	}
	if !actor.IsProcurement() && att.UploadedBy != actor.UserID {
		return domain.ErrForbidden
	}
	if err := s.attachments.Delete(ctx, attachmentID); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, s.s3cfg.Bucket, att.StorageKey); err != nil {
		return fmt.Errorf("attachmentService.Delete: %w", err)
	}
	return nil
}

// getForRequest loads an attachment after checking the actor can see the
// request, and verifies the attachment belongs to that request.
func (s *attachmentService) getForRequest(ctx context.Context, actor Actor, requestID, attachmentID uuid.UUID) (*domain.Attachment, error) {
	if _, err := s.requests.Get(ctx, actor, requestID); err != nil {
		return nil, err
	}
	att, err := s.attachments.GetByID(ctx, attachmentID)
	if err != nil {
		return nil, err
	}
	if att.RequestID != requestID {
		return nil, domain.ErrNotFound
	}
	return att, nil
}

// resolveFileType checks the content type first, then the file extension.
func resolveFileType(fileName, contentType string) (domain.FileType, error) {
	base := contentType
	if i := strings.Index(base, ";"); i >= 0 {
		base = base[:i]
	}
	base = strings.TrimSpace(strings.ToLower(base))
	if ft, ok := domain.AllowedContentTypes[base]; ok {
		return ft, nil
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	if ft, ok := domain.AllowedExtensions[ext]; ok {
		return ft, nil
	}
	return "", fmt.Errorf("%w: %q (%s)", domain.ErrUnsupportedFileType, fileName, contentType)
}
