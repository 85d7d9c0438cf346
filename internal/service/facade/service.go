package facade

import (
	"context"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"holidaily/internal/domain"
	"holidaily/internal/repository"
	"holidaily/internal/service/moderation"
	"holidaily/internal/service/notification"
	"holidaily/internal/service/thread"
	"holidaily/internal/service/vote"
)

// Service is the community surface consumed by the HTTP layer. Content writes
// commit first; notification fanout runs afterwards and never fails the call.
type Service interface {
	PostComment(ctx context.Context, caller *domain.UserProfile, input domain.CreateCommentInput) (*domain.Comment, error)
	EditComment(ctx context.Context, caller *domain.UserProfile, commentID int64, input domain.UpdateCommentInput) (*domain.Comment, error)
	DeleteComment(ctx context.Context, caller *domain.UserProfile, commentID int64) error
	ListComments(ctx context.Context, scope domain.Scope, window domain.PageWindow, viewer *domain.UserProfile) (domain.PaginatedResponse[domain.CommentThread], error)
	Vote(ctx context.Context, caller *domain.UserProfile, target domain.VoteTarget, choice int) (domain.VoteOutcome, error)
	Report(ctx context.Context, caller *domain.UserProfile, target domain.ReportTarget, alsoBlock bool) (domain.ReportOutcome, error)
	BlockUser(ctx context.Context, caller *domain.UserProfile, userID int64) error
	PostUpdate(ctx context.Context, caller *domain.UserProfile, input domain.CreatePostInput) (*domain.Post, error)
	LikePost(ctx context.Context, caller *domain.UserProfile, postID int64, like bool) (domain.LikeOutcome, error)
	ListPosts(ctx context.Context, holidayID int64, window domain.PageWindow, viewer *domain.UserProfile) (domain.PaginatedResponse[domain.Post], error)
}

type service struct {
	holidayRepo repository.HolidayRepository
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	threads     thread.Service
	votes       vote.Service
	moderation  moderation.Service
	notifSvc    notification.Service
	sanitizer   *bluemonday.Policy
	now         func() time.Time
	logger      *zap.Logger
}

func NewService(
	repos *repository.Repositories,
	threads thread.Service,
	votes vote.Service,
	moderationSvc moderation.Service,
	notifSvc notification.Service,
	logger *zap.Logger,
) Service {
	return &service{
		holidayRepo: repos.Holiday,
		commentRepo: repos.Comment,
		postRepo:    repos.Post,
		threads:     threads,
		votes:       votes,
		moderation:  moderationSvc,
		notifSvc:    notifSvc,
		sanitizer:   bluemonday.StrictPolicy(),
		now:         time.Now,
		logger:      logger.Named("facade_service"),
	}
}

// clean strips markup and leaves plain text.
func (s *service) clean(content string) string {
	return strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(content)))
}

func requirePoster(caller *domain.UserProfile) error {
	if caller == nil {
		return domain.ErrIdentityRequired
	}
	return caller.CanPost()
}

func (s *service) logDeliveries(kind string, deliveries []notification.Delivery) {
	for _, d := range deliveries {
		if d.Err != nil {
			s.logger.Warn("Notification not delivered",
				zap.String("kind", kind),
				zap.Int64("recipient", d.RecipientID),
				zap.Error(d.Err))
			continue
		}
		s.logger.Debug("Notification delivered",
			zap.String("kind", kind),
			zap.Int64("recipient", d.RecipientID),
			zap.String("channel", string(d.Channel)))
	}
}

func (s *service) ListComments(ctx context.Context, scope domain.Scope, window domain.PageWindow, viewer *domain.UserProfile) (domain.PaginatedResponse[domain.CommentThread], error) {
	return s.threads.BuildPage(ctx, scope, window, viewer)
}

func (s *service) Report(ctx context.Context, caller *domain.UserProfile, target domain.ReportTarget, alsoBlock bool) (domain.ReportOutcome, error) {
	return s.moderation.Report(ctx, target, caller, alsoBlock)
}

func (s *service) BlockUser(ctx context.Context, caller *domain.UserProfile, userID int64) error {
	return s.moderation.Block(ctx, caller, userID)
}
