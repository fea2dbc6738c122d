package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"shelflife/internal/notify"
)

type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendEmail(ctx context.Context, to, subject, body string) (notify.SendResult, error) {
	args := m.Called(ctx, to, subject, body)
	return args.Get(0).(notify.SendResult), args.Error(1)
}
