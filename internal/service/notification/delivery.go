package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"holidaily/internal/domain"
	"holidaily/internal/service/push"
)

type Channel string

const (
	ChannelPush  Channel = "push"
	ChannelEmail Channel = "email"
	ChannelNone  Channel = "none"
)

var errLoggedOut = errors.New("recipient is logged out")

// Delivery is the outcome of notifying one recipient. Err is set when no
// channel succeeded.
type Delivery struct {
	RecipientID    int64
	NotificationID int64
	Channel        Channel
	Err            error
}

type deliveryJob struct {
	recipient *domain.UserProfile
	notif     domain.Notification
	data      map[string]any
	sendEmail func(ctx context.Context) error
}

// deliverAll runs the jobs on a bounded pool and waits for all of them.
func (s *service) deliverAll(ctx context.Context, jobs []deliveryJob) []Delivery {
	if len(jobs) == 0 {
		return nil
	}

	results := make([]Delivery, len(jobs))
	p := pool.New().WithMaxGoroutines(max(s.cfg.DeliveryConcurrency, 1))
	for i, job := range jobs {
		p.Go(func() {
			results[i] = s.deliver(ctx, job)
		})
	}
	p.Wait()

	return results
}

// deliver tries push first and falls back to email when push fails and both
// the system and the recipient allow email.
func (s *service) deliver(ctx context.Context, job deliveryJob) Delivery {
	out := Delivery{RecipientID: job.recipient.UserID, NotificationID: job.notif.ID, Channel: ChannelNone}
	log := s.logger.With(
		zap.Int64("recipient", job.recipient.UserID),
		zap.String("type", string(job.notif.Type)),
		zap.Int64("notification_id", job.notif.NotificationID))

	pushErr := s.push(ctx, job)
	if pushErr == nil {
		out.Channel = ChannelPush
		return out
	}
	log.Debug("Push not delivered", zap.Error(pushErr))

	if !s.cfg.EmailsEnabled || !job.recipient.Reachable() || job.sendEmail == nil {
		out.Err = pushErr
		return out
	}

	if err := job.sendEmail(ctx); err != nil {
		log.Warn("Email fallback failed", zap.Error(err))
		out.Err = fmt.Errorf("push: %v; email: %w", pushErr, err)
		return out
	}

	out.Channel = ChannelEmail
	return out
}

func (s *service) push(ctx context.Context, job deliveryJob) error {
	if job.recipient.LoggedOut {
		return errLoggedOut
	}

	device, err := s.deviceRepo.GetActive(ctx, job.recipient.UserID, job.recipient.Platform)
	if err != nil {
		return fmt.Errorf("failed to get device: %w", err)
	}
	if device == nil {
		return push.ErrNoDevice
	}

	badge, err := s.notifRepo.CountUnread(ctx, job.recipient.UserID)
	if err != nil {
		s.logger.Warn("Failed to count unread notifications", zap.Int64("recipient", job.recipient.UserID), zap.Error(err))
	}

	err = s.pushSender.Send(ctx, *device, push.Message{
		Title: job.notif.Title,
		Body:  job.notif.Content,
		Badge: badge,
		Data:  job.data,
	})
	if errors.Is(err, push.ErrInvalidToken) {
		s.retireDevice(ctx, device)
	}
	return err
}

func (s *service) retireDevice(ctx context.Context, device *domain.Device) {
	if err := s.deviceRepo.Deactivate(ctx, device.ID); err != nil {
		s.logger.Error("Failed to deactivate device", zap.Int64("device", device.ID), zap.Error(err))
	}
	if err := s.profileRepo.SetDeviceActive(ctx, device.UserID, false); err != nil {
		s.logger.Error("Failed to flag profile device inactive", zap.Int64("user", device.UserID), zap.Error(err))
	}
	s.logger.Info("Deactivated stale push device", zap.Int64("device", device.ID), zap.Int64("user", device.UserID))
}
