package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"procura/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendStatusChangeEmail(ctx context.Context, msg port.StatusChangeEmail) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
