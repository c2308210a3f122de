package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"procura/internal/domain"
	"procura/internal/service"
)

// MockAttachmentService is a mock implementation of service.AttachmentService.
type MockAttachmentService struct {
	mock.Mock
}

func (m *MockAttachmentService) Upload(ctx context.Context, actor service.Actor, requestID uuid.UUID, input service.UploadAttachmentInput) (*domain.Attachment, error) {
	args := m.Called(ctx, actor, requestID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attachment), args.Error(1)
}

func (m *MockAttachmentService) List(ctx context.Context, actor service.Actor, requestID uuid.UUID) ([]domain.Attachment, error) {
	args := m.Called(ctx, actor, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Attachment), args.Error(1)
}

func (m *MockAttachmentService) Download(ctx context.Context, actor service.Actor, requestID, attachmentID uuid.UUID) (*service.AttachmentDownload, error) {
	args := m.Called(ctx, actor, requestID, attachmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AttachmentDownload), args.Error(1)
}

func (m *MockAttachmentService) Delete(ctx context.Context, actor service.Actor, requestID, attachmentID uuid.UUID) error {
	args := m.Called(ctx, actor, requestID, attachmentID)
	return args.Error(0)
}
