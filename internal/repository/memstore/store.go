// Package memstore keeps every repository in process memory behind one mutex.
// It backs the test suites and STORAGE_DRIVER=memory local runs.
package memstore

import (
	"sync"
	"time"

	"holidaily/internal/domain"
	"holidaily/internal/repository"
)

type voteKey struct {
	userID   int64
	targetID int64
}

type notificationKey struct {
	notificationID int64
	kind           domain.NotificationType
	userID         int64
	broadcast      bool
}

type Store struct {
	mu  sync.Mutex
	seq map[string]int64
	now func() time.Time

	holidays      map[int64]*domain.Holiday
	comments      map[int64]*domain.Comment
	posts         map[int64]*domain.Post
	postLikes     map[int64]domain.IDSet
	profiles      map[int64]*domain.UserProfile
	commentVotes  map[voteKey]domain.VoteChoice
	holidayVotes  map[voteKey]domain.VoteChoice
	notifications map[int64]*domain.Notification
	notifKeys     map[notificationKey]int64
	devices       map[int64]*domain.Device
}

func New() *Store {
	return &Store{
		seq:           make(map[string]int64),
		now:           time.Now,
		holidays:      make(map[int64]*domain.Holiday),
		comments:      make(map[int64]*domain.Comment),
		posts:         make(map[int64]*domain.Post),
		postLikes:     make(map[int64]domain.IDSet),
		profiles:      make(map[int64]*domain.UserProfile),
		commentVotes:  make(map[voteKey]domain.VoteChoice),
		holidayVotes:  make(map[voteKey]domain.VoteChoice),
		notifications: make(map[int64]*domain.Notification),
		notifKeys:     make(map[notificationKey]int64),
		devices:       make(map[int64]*domain.Device),
	}
}

// WithClock replaces the timestamp source used for new rows.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Holiday:      &holidayStore{s},
		Comment:      &commentStore{s},
		Post:         &postStore{s},
		Profile:      &profileStore{s},
		Vote:         &voteStore{s},
		Notification: &notificationStore{s},
		Device:       &deviceStore{s},
		Moderation:   &moderationStore{s},
	}
}

// nextID must be called with mu held. An explicit id advances the sequence past it.
func (s *Store) nextID(table string, explicit int64) int64 {
	if explicit != 0 {
		if explicit > s.seq[table] {
			s.seq[table] = explicit
		}
		return explicit
	}
	s.seq[table]++
	return s.seq[table]
}

// PutProfile inserts or replaces a profile.
func (s *Store) PutProfile(p domain.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.BlockedUsers == nil {
		p.BlockedUsers = domain.NewIDSet()
	}
	if p.ReportedComments == nil {
		p.ReportedComments = domain.NewIDSet()
	}
	if p.ReportedPosts == nil {
		p.ReportedPosts = domain.NewIDSet()
	}
	p.UserID = s.nextID("profiles", p.UserID)
	s.profiles[p.UserID] = &p
}

// PutHoliday inserts a holiday, keeping its id when one is set.
func (s *Store) PutHoliday(h domain.Holiday) domain.Holiday {
	s.mu.Lock()
	defer s.mu.Unlock()

	h.ID = s.nextID("holidays", h.ID)
	if h.CreatedAt.IsZero() {
		h.CreatedAt = s.now()
	}
	s.holidays[h.ID] = &h
	return h
}

// PutComment inserts a comment as is, keeping its id and counters.
func (s *Store) PutComment(c domain.Comment) domain.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.nextID("comments", c.ID)
	if c.Timestamp.IsZero() {
		c.Timestamp = s.now()
	}
	s.comments[c.ID] = &c
	return c
}

// PutPost inserts a post as is, keeping its id and counters.
func (s *Store) PutPost(p domain.Post) domain.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextID("posts", p.ID)
	if p.Timestamp.IsZero() {
		p.Timestamp = s.now()
	}
	s.posts[p.ID] = &p
	s.postLikes[p.ID] = domain.NewIDSet()
	return p
}

// CommentVoteRows counts stored vote rows for a (voter, comment) pair.
func (s *Store) CommentVoteRows(voterID, commentID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.commentVotes[voteKey{voterID, commentID}]; ok {
		return 1
	}
	return 0
}

// Notifications returns every stored notification ordered by id.
func (s *Store) Notifications() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Notification, 0, len(s.notifications))
	for id := int64(1); id <= s.seq["notifications"]; id++ {
		if n, ok := s.notifications[id]; ok {
			out = append(out, *n)
		}
	}
	return out
}

func cloneProfile(p *domain.UserProfile) *domain.UserProfile {
	out := *p
	out.BlockedUsers = domain.NewIDSet(p.BlockedUsers.Slice()...)
	out.ReportedComments = domain.NewIDSet(p.ReportedComments.Slice()...)
	out.ReportedPosts = domain.NewIDSet(p.ReportedPosts.Slice()...)
	return &out
}

// bounds clips a page window to a slice of length n.
func bounds(n int, window domain.PageWindow) (start, end int) {
	start = min(max(window.Offset(), 0), n)
	end = start + min(max(window.Size, 0), n-start)
	return start, end
}
