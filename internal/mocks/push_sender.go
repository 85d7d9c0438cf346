package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"holidaily/internal/domain"
	"holidaily/internal/service/push"
)

type PushSender struct {
	mock.Mock
}

func (m *PushSender) Send(ctx context.Context, device domain.Device, msg push.Message) error {
	args := m.Called(ctx, device, msg)
	return args.Error(0)
}
