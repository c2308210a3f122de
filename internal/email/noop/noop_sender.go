package noop

import (
	"context"
	"log"

	"procura/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs notifications to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendStatusChangeEmail(_ context.Context, msg port.StatusChangeEmail) error {
	log.Printf("[NOOP EMAIL] Status change for %s (%s): request %q moved %s -> %s",
		msg.ToName, msg.ToEmail, msg.RequestTitle, msg.FromStatus, msg.ToStatus)
	return nil
}
