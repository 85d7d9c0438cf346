package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"holidaily/internal/config"
	"holidaily/internal/repository"
	"holidaily/internal/service/avatar"
	"holidaily/internal/service/email"
	"holidaily/internal/service/facade"
	"holidaily/internal/service/holiday"
	"holidaily/internal/service/moderation"
	"holidaily/internal/service/notification"
	"holidaily/internal/service/push"
	"holidaily/internal/service/thread"
	"holidaily/internal/service/vote"
)

type Services struct {
	Community    facade.Service
	Holiday      holiday.Service
	Notification notification.Service
	Avatar       avatar.Service
}

// NewServices wires the service graph. redis and minioClient may be nil; the
// comment cache is then bypassed and avatar uploads fail.
func NewServices(
	repos *repository.Repositories,
	redis *redis.Client,
	minioClient *minio.Client,
	cfg *config.Config,
	logger *zap.Logger,
) *Services {
	var store avatar.ObjectStore
	if minioClient != nil {
		store = minioClient
	}

	emailService := email.NewService(cfg)
	pushClient := push.NewClient(cfg, logger)
	avatarService := avatar.NewService(repos.Profile, store, cfg, logger)
	notificationService := notification.NewService(repos, pushClient, emailService, cfg, logger)
	holidayService := holiday.NewService(repos.Holiday, notificationService, cfg.HolidaySubmissionReward, logger)
	communityService := facade.NewService(
		repos,
		thread.NewService(repos, avatarService, redis, cfg.CommentCacheTTL, logger),
		vote.NewService(repos.Vote, logger),
		moderation.NewService(repos.Moderation, repos.Comment, logger),
		notificationService,
		logger,
	)

	return &Services{
		Community:    communityService,
		Holiday:      holidayService,
		Notification: notificationService,
		Avatar:       avatarService,
	}
}
