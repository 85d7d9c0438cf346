package holiday

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"holidaily/internal/domain"
	"holidaily/internal/pkg/validate"
	"holidaily/internal/repository"
	"holidaily/internal/repository/dbretry"
	"holidaily/internal/service/notification"
)

type Service interface {
	GetByID(ctx context.Context, id int64) (*domain.Holiday, error)
	// Submit files a user-created holiday for review.
	Submit(ctx context.Context, caller *domain.UserProfile, input domain.SubmitHolidayInput) (*domain.Holiday, error)
	// Approve makes a submission live and rewards its creator once.
	Approve(ctx context.Context, moderator *domain.UserProfile, id int64) (*domain.Holiday, error)
}

type service struct {
	holidayRepo repository.HolidayRepository
	notifSvc    notification.Service
	reward      int
	logger      *zap.Logger
}

func NewService(holidayRepo repository.HolidayRepository, notifSvc notification.Service, reward int, logger *zap.Logger) Service {
	return &service{
		holidayRepo: holidayRepo,
		notifSvc:    notifSvc,
		reward:      reward,
		logger:      logger.Named("holiday_service"),
	}
}

func (s *service) GetByID(ctx context.Context, id int64) (*domain.Holiday, error) {
	holiday, err := s.holidayRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get holiday: %w", err)
	}
	if holiday == nil {
		return nil, domain.ErrHolidayNotFound
	}
	return holiday, nil
}

func (s *service) Submit(ctx context.Context, caller *domain.UserProfile, input domain.SubmitHolidayInput) (*domain.Holiday, error) {
	if caller == nil {
		return nil, domain.ErrIdentityRequired
	}
	if err := caller.CanPost(); err != nil {
		return nil, err
	}
	input.Name = strings.TrimSpace(input.Name)
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	pending, err := s.holidayRepo.FindPending(ctx, caller.UserID, input.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending holidays: %w", err)
	}
	if pending != nil {
		return nil, domain.ErrPendingHoliday
	}

	creatorID := caller.UserID
	holiday := &domain.Holiday{
		Name:        input.Name,
		Description: input.Description,
		Date:        input.Date,
		CreatorID:   &creatorID,
	}
	if err := s.holidayRepo.Create(ctx, holiday); err != nil {
		return nil, fmt.Errorf("failed to create holiday: %w", err)
	}

	s.logger.Info("Holiday submitted", zap.Int64("holiday", holiday.ID), zap.Int64("creator", creatorID))
	return holiday, nil
}

func (s *service) Approve(ctx context.Context, moderator *domain.UserProfile, id int64) (*domain.Holiday, error) {
	if moderator == nil || !moderator.IsStaff {
		return nil, domain.ErrStaffRequired
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Active {
		return current, nil
	}

	type activation struct {
		holiday *domain.Holiday
		awarded bool
	}
	res, err := dbretry.Operation(ctx, func(ctx context.Context) (activation, error) {
		h, awarded, err := s.holidayRepo.Activate(ctx, id, s.reward)
		return activation{h, awarded}, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to approve holiday: %w", err)
	}

	reward := 0
	if res.awarded {
		reward = s.reward
		s.logger.Info("Holiday creator rewarded",
			zap.Int64("holiday", id),
			zap.Int64("creator", *res.holiday.CreatorID),
			zap.Int("confetti", reward))
	}

	for _, d := range s.notifSvc.NotifyHolidayApproved(ctx, res.holiday, reward) {
		if d.Err != nil {
			s.logger.Warn("Approval notice not delivered", zap.Int64("recipient", d.RecipientID), zap.Error(d.Err))
		}
	}

	return res.holiday, nil
}
