package thread

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"holidaily/internal/domain"
	"holidaily/internal/repository"
	"holidaily/internal/service/moderation"
)

// AvatarURLs turns a stored avatar path into a public URL.
type AvatarURLs interface {
	URL(path string) string
}

type Service interface {
	// BuildPage materializes one page of threads for a scope, decorated for viewer.
	BuildPage(ctx context.Context, scope domain.Scope, window domain.PageWindow, viewer *domain.UserProfile) (domain.PaginatedResponse[domain.CommentThread], error)
	// Invalidate drops cached pages of a scope.
	Invalidate(ctx context.Context, scope domain.Scope)
}

type service struct {
	holidayRepo repository.HolidayRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	profileRepo repository.ProfileRepository
	voteRepo    repository.VoteRepository
	avatars     AvatarURLs
	redis       *redis.Client
	cacheTTL    time.Duration
	now         func() time.Time
	logger      *zap.Logger
}

type Option func(*service)

// WithClock sets the reference time used for time-since strings.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

func NewService(
	repos *repository.Repositories,
	avatars AvatarURLs,
	redis *redis.Client,
	cacheTTL time.Duration,
	logger *zap.Logger,
	opts ...Option,
) Service {
	s := &service{
		holidayRepo: repos.Holiday,
		postRepo:    repos.Post,
		commentRepo: repos.Comment,
		profileRepo: repos.Profile,
		voteRepo:    repos.Vote,
		avatars:     avatars,
		redis:       redis,
		cacheTTL:    cacheTTL,
		now:         time.Now,
		logger:      logger.Named("thread_service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// skeleton is the viewer-independent part of a page, safe to share through the cache.
type skeleton struct {
	Threads [][]domain.ThreadNode `json:"threads"`
	Total   int64                 `json:"total"`
}

func cachePrefix(scope domain.Scope) string {
	return fmt.Sprintf("comments:%s:", scope)
}

func cacheKey(scope domain.Scope, window domain.PageWindow) string {
	return fmt.Sprintf("%spage:%d:size:%d", cachePrefix(scope), window.Index, window.Size)
}

func (s *service) BuildPage(ctx context.Context, scope domain.Scope, window domain.PageWindow, viewer *domain.UserProfile) (domain.PaginatedResponse[domain.CommentThread], error) {
	window.Validate()

	if err := s.ensureScope(ctx, scope); err != nil {
		return domain.PaginatedResponse[domain.CommentThread]{}, err
	}

	page, err := s.skeleton(ctx, scope, window)
	if err != nil {
		return domain.PaginatedResponse[domain.CommentThread]{}, err
	}

	threads, err := s.decorate(ctx, page.Threads, viewer)
	if err != nil {
		return domain.PaginatedResponse[domain.CommentThread]{}, err
	}

	return domain.NewPaginatedResponse(threads, window, page.Total), nil
}

func (s *service) ensureScope(ctx context.Context, scope domain.Scope) error {
	switch scope.Kind {
	case domain.ScopeHoliday:
		h, err := s.holidayRepo.GetByID(ctx, scope.ID)
		if err != nil {
			return fmt.Errorf("failed to get holiday: %w", err)
		}
		if h == nil {
			return domain.ErrHolidayNotFound
		}
	case domain.ScopePost:
		p, err := s.postRepo.GetByID(ctx, scope.ID)
		if err != nil {
			return fmt.Errorf("failed to get post: %w", err)
		}
		if p == nil {
			return domain.ErrPostNotFound
		}
	default:
		return domain.ErrInvalidScope
	}
	return nil
}

func (s *service) skeleton(ctx context.Context, scope domain.Scope, window domain.PageWindow) (*skeleton, error) {
	key := cacheKey(scope, window)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, key).Result(); err == nil {
			var page skeleton
			if json.Unmarshal([]byte(cached), &page) == nil {
				return &page, nil
			}
		}
	}

	total, err := s.commentRepo.CountTopLevel(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	roots, err := s.commentRepo.ListTopLevel(ctx, scope, window)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	children, err := s.descendants(ctx, roots)
	if err != nil {
		return nil, err
	}

	page := &skeleton{Threads: make([][]domain.ThreadNode, 0, len(roots)), Total: total}
	for _, root := range roots {
		nodes := Flatten(root, children)
		if Tombstone(nodes) {
			continue
		}
		page.Threads = append(page.Threads, nodes)
	}

	if s.redis != nil {
		if data, err := json.Marshal(page); err == nil {
			if err := s.redis.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
				s.logger.Warn("Failed to cache comment page", zap.String("key", key), zap.Error(err))
			}
		}
	}

	return page, nil
}

// descendants loads replies one level at a time, so a page costs one query per depth level.
func (s *service) descendants(ctx context.Context, roots []domain.Comment) (map[int64][]domain.Comment, error) {
	seen := make(domain.IDSet, len(roots))
	frontier := make([]int64, 0, len(roots))
	for _, r := range roots {
		seen[r.ID] = struct{}{}
		frontier = append(frontier, r.ID)
	}

	var replies []domain.Comment
	for len(frontier) > 0 {
		level, err := s.commentRepo.ListChildren(ctx, frontier)
		if err != nil {
			return nil, fmt.Errorf("failed to list replies: %w", err)
		}

		frontier = frontier[:0]
		for _, c := range level {
			if seen.Has(c.ID) {
				continue
			}
			seen[c.ID] = struct{}{}
			frontier = append(frontier, c.ID)
			replies = append(replies, c)
		}
	}

	return GroupChildren(replies), nil
}

func (s *service) decorate(ctx context.Context, groups [][]domain.ThreadNode, viewer *domain.UserProfile) ([]domain.CommentThread, error) {
	var authorIDs, commentIDs []int64
	for _, nodes := range groups {
		for _, n := range nodes {
			authorIDs = append(authorIDs, n.Comment.UserID)
			commentIDs = append(commentIDs, n.Comment.ID)
		}
	}

	authors, err := s.profileRepo.GetByUserIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get comment authors: %w", err)
	}

	choices := map[int64]domain.VoteChoice{}
	if viewer != nil {
		choices, err = s.voteRepo.CommentChoices(ctx, viewer.UserID, commentIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to get vote choices: %w", err)
		}
	}

	filter := moderation.NewFilter(viewer)
	now := s.now()

	threads := make([]domain.CommentThread, 0, len(groups))
	for _, nodes := range groups {
		thread := domain.CommentThread{Comments: make([]domain.CommentView, 0, len(nodes))}
		for _, n := range nodes {
			thread.Comments = append(thread.Comments, s.view(n, authors[n.Comment.UserID], choices, filter, now))
		}
		threads = append(threads, thread)
	}

	return threads, nil
}

func (s *service) view(n domain.ThreadNode, author *domain.UserProfile, choices map[int64]domain.VoteChoice, filter moderation.Filter, now time.Time) domain.CommentView {
	c := n.Comment
	v := domain.CommentView{
		ID:        c.ID,
		Content:   c.Content,
		UserID:    c.UserID,
		ParentID:  c.ParentID,
		Timestamp: c.Timestamp,
		TimeSince: humanize.RelTime(c.Timestamp, now, "ago", "from now"),
		Edited:    c.Edited,
		Votes:     c.Votes,
		Deleted:   c.Deleted,
		Depth:     n.Depth,
	}
	if c.Edited != nil {
		v.TimeSinceEdit = humanize.RelTime(*c.Edited, now, "ago", "from now")
	}
	if choice, ok := choices[c.ID]; ok {
		v.VoteStatus = choice.Status()
	}

	if author != nil {
		v.Username = author.Username
		if author.Avatar != nil && s.avatars != nil && (author.AvatarApproved || filter.IsViewer(c.UserID)) {
			url := s.avatars.URL(*author.Avatar)
			v.Avatar = &url
		}
	}

	v.Blocked, v.Reported = filter.Comment(c)

	switch {
	case c.Deleted:
		v.Content = domain.DeletedContent
		v.Username = ""
		v.Avatar = nil
	case v.Blocked || v.Reported:
		v.Content = ""
		v.Avatar = nil
	}

	return v
}

func (s *service) Invalidate(ctx context.Context, scope domain.Scope) {
	if s.redis == nil {
		return
	}

	iter := s.redis.Scan(ctx, 0, cachePrefix(scope)+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		s.logger.Warn("Failed to scan comment cache", zap.String("scope", scope.String()), zap.Error(err))
		return
	}
	if len(keys) > 0 {
		if err := s.redis.Del(ctx, keys...).Err(); err != nil {
			s.logger.Warn("Failed to invalidate comment cache", zap.String("scope", scope.String()), zap.Error(err))
		}
	}
}
