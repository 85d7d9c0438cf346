package avatar

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"holidaily/internal/config"
	"holidaily/internal/domain"
	"holidaily/internal/repository"
)

const MaxAvatarSize = 5 << 20

var allowedTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// ObjectStore is the subset of the MinIO client used for avatars.
type ObjectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

type Service interface {
	Upload(ctx context.Context, caller *domain.UserProfile, reader io.Reader, size int64, mimeType string) (string, error)
	Approve(ctx context.Context, moderator *domain.UserProfile, userID int64) error
	URL(path string) string
}

type service struct {
	profileRepo repository.ProfileRepository
	store       ObjectStore
	cfg         *config.Config
	logger      *zap.Logger
}

func NewService(profileRepo repository.ProfileRepository, store ObjectStore, cfg *config.Config, logger *zap.Logger) Service {
	return &service{
		profileRepo: profileRepo,
		store:       store,
		cfg:         cfg,
		logger:      logger.Named("avatar_service"),
	}
}

func (s *service) Upload(ctx context.Context, caller *domain.UserProfile, reader io.Reader, size int64, mimeType string) (string, error) {
	if caller == nil {
		return "", domain.ErrIdentityRequired
	}
	ext, ok := allowedTypes[mimeType]
	if !ok {
		return "", domain.NewValidationError("avatar must be a jpeg, png or webp image")
	}
	if size <= 0 || size > MaxAvatarSize {
		return "", domain.NewValidationError("avatar must be smaller than 5MB")
	}
	if s.store == nil {
		return "", fmt.Errorf("avatar storage is not configured")
	}

	storagePath := fmt.Sprintf("avatars/%d/%s.%s", caller.UserID, uuid.New().String(), ext)
	_, err := s.store.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, size, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	if err := s.profileRepo.SetAvatar(ctx, caller.UserID, storagePath); err != nil {
		_ = s.store.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
		return "", fmt.Errorf("failed to save avatar: %w", err)
	}

	if caller.Avatar != nil && *caller.Avatar != storagePath {
		if err := s.store.RemoveObject(ctx, s.cfg.MinIOBucket, *caller.Avatar, minio.RemoveObjectOptions{}); err != nil {
			s.logger.Warn("Failed to remove previous avatar", zap.String("path", *caller.Avatar), zap.Error(err))
		}
	}

	return s.URL(storagePath), nil
}

func (s *service) Approve(ctx context.Context, moderator *domain.UserProfile, userID int64) error {
	if moderator == nil || !moderator.IsStaff {
		return domain.ErrStaffRequired
	}
	return s.profileRepo.ApproveAvatar(ctx, userID)
}

func (s *service) URL(path string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}

	segments := strings.Split(path, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, strings.Join(segments, "/"))
}
