package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendMentionEmail(ctx context.Context, toEmail, recipientName, authorName, where, content string) error {
	args := m.Called(ctx, toEmail, recipientName, authorName, where, content)
	return args.Error(0)
}

func (m *EmailService) SendLikeEmail(ctx context.Context, toEmail, recipientName, likerName, content string) error {
	args := m.Called(ctx, toEmail, recipientName, likerName, content)
	return args.Error(0)
}

func (m *EmailService) SendHolidayApprovedEmail(ctx context.Context, toEmail, recipientName, holidayName string, reward int) error {
	args := m.Called(ctx, toEmail, recipientName, holidayName, reward)
	return args.Error(0)
}
