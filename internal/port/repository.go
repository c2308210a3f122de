package port

import (
	"context"

	"github.com/google/uuid"

	"procura/internal/domain"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, user *domain.User) error
}

// RequestFilter narrows request listings.
type RequestFilter struct {
	Status      domain.RequestStatus
	RequestorID uuid.UUID
	Department  string
	Offset      int
	Limit       int
}

// RequestRepository defines the contract for procurement request
// persistence. Create and Update write the request together with its
// order lines in one transaction.
type RequestRepository interface {
	Create(ctx context.Context, req *domain.Request) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Request, error)
	List(ctx context.Context, filter RequestFilter) ([]domain.Request, int, error)
	Update(ctx context.Context, req *domain.Request) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// StatusHistoryRepository records and lists request status changes.
type StatusHistoryRepository interface {
	Create(ctx context.Context, entry *domain.StatusHistory) error
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.StatusHistory, error)
}

// CommodityGroupRepository defines the contract for the commodity-group
// catalog.
type CommodityGroupRepository interface {
	List(ctx context.Context) ([]domain.CommodityGroup, error)
	GetByCategory(ctx context.Context, category string) (*domain.CommodityGroup, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CommodityGroup, error)
	Upsert(ctx context.Context, group *domain.CommodityGroup) error
}

// AttachmentRepository defines the contract for offer attachment
// metadata.
type AttachmentRepository interface {
	Create(ctx context.Context, att *domain.Attachment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error)
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.Attachment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
