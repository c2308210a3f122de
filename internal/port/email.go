package port

import (
	"context"

	"procura/internal/domain"
)

// StatusChangeEmail carries everything needed to notify a requestor
// about a status change on their request.
type StatusChangeEmail struct {
	ToEmail      string
	ToName       string
	RequestID    string
	RequestTitle string
	FromStatus   domain.RequestStatus
	ToStatus     domain.RequestStatus
	Comment      string
}

// EmailSender defines the contract for sending notification emails.
type EmailSender interface {
	SendStatusChangeEmail(ctx context.Context, msg StatusChangeEmail) error
}
