package vote_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"holidaily/internal/domain"
	"holidaily/internal/repository/memstore"
	"holidaily/internal/service/vote"
)

const (
	authorID int64 = 1
	voterID  int64 = 2
)

func setup(t *testing.T) (*memstore.Store, vote.Service, domain.Comment, domain.Holiday) {
	t.Helper()

	store := memstore.New()
	store.PutProfile(domain.UserProfile{UserID: authorID, Username: "author", Active: true})
	store.PutProfile(domain.UserProfile{UserID: voterID, Username: "voter", Active: true})
	holiday := store.PutHoliday(domain.Holiday{ID: 1, Name: "Pizza Day", Active: true})
	comment := store.PutComment(domain.Comment{ID: 10, HolidayID: &holiday.ID, UserID: authorID, Content: "hi"})

	return store, vote.NewService(store.Repositories().Vote, zap.NewNop()), comment, holiday
}

func confetti(t *testing.T, store *memstore.Store, userID int64) int {
	t.Helper()
	p, err := store.Repositories().Profile.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	return p.Confetti
}

func TestApply_CommentVotesMoveConfetti(t *testing.T) {
	tests := []struct {
		name     string
		choices  []domain.VoteChoice
		votes    int
		confetti int
	}{
		{"up", []domain.VoteChoice{domain.VoteUp}, 1, 1},
		{"down", []domain.VoteChoice{domain.VoteDown}, -1, -1},
		{"down then up", []domain.VoteChoice{domain.VoteDown, domain.VoteUpFromDown}, 1, 1},
		{"up then down", []domain.VoteChoice{domain.VoteUp, domain.VoteDownFromUp}, -1, -1},
		{"up then neutral", []domain.VoteChoice{domain.VoteUp, domain.VoteNeutralFromUp}, 0, 0},
		{"down then neutral", []domain.VoteChoice{domain.VoteDown, domain.VoteNeutralFromDown}, 0, 0},
		{"up from down alone", []domain.VoteChoice{domain.VoteUpFromDown}, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, svc, comment, _ := setup(t)
			target := domain.VoteTarget{Kind: domain.TargetComment, ID: comment.ID}

			var out domain.VoteOutcome
			var err error
			for _, choice := range tt.choices {
				out, err = svc.Apply(context.Background(), target, voterID, choice)
				require.NoError(t, err)
			}

			assert.Equal(t, tt.votes, out.Votes)
			assert.Equal(t, tt.confetti, confetti(t, store, authorID))
			assert.Equal(t, 1, store.CommentVoteRows(voterID, comment.ID))
			assert.Equal(t, authorID, out.AuthorID)
			assert.Equal(t, comment.Scope(), out.Scope)
		})
	}
}

func TestApply_RepeatedChoiceIsNoop(t *testing.T) {
	store, svc, comment, _ := setup(t)
	ctx := context.Background()
	target := domain.VoteTarget{Kind: domain.TargetComment, ID: comment.ID}

	first, err := svc.Apply(ctx, target, voterID, domain.VoteUp)
	require.NoError(t, err)
	assert.True(t, first.Changed)

	for range 3 {
		again, err := svc.Apply(ctx, target, voterID, domain.VoteUp)
		require.NoError(t, err)
		assert.False(t, again.Changed)
		assert.Equal(t, 1, again.Votes)
		assert.Equal(t, domain.VoteStatusUp, again.Status)
	}

	assert.Equal(t, 1, store.CommentVoteRows(voterID, comment.ID))
	assert.Equal(t, 1, confetti(t, store, authorID))
}

func TestApply_HolidayVotesGiveNoConfetti(t *testing.T) {
	store, svc, _, holiday := setup(t)

	out, err := svc.Apply(context.Background(), domain.VoteTarget{Kind: domain.TargetHoliday, ID: holiday.ID}, voterID, domain.VoteUpFromDown)
	require.NoError(t, err)

	assert.Equal(t, 2, out.Votes)
	assert.Zero(t, confetti(t, store, authorID))
	assert.Zero(t, confetti(t, store, voterID))
}

func TestApply_SelfVoteStillCounts(t *testing.T) {
	store, svc, comment, _ := setup(t)

	_, err := svc.Apply(context.Background(), domain.VoteTarget{Kind: domain.TargetComment, ID: comment.ID}, authorID, domain.VoteUp)
	require.NoError(t, err)

	assert.Equal(t, 1, confetti(t, store, authorID))
}

func TestApply_Rejects(t *testing.T) {
	_, svc, comment, _ := setup(t)
	ctx := context.Background()

	t.Run("invalid choice", func(t *testing.T) {
		_, err := svc.Apply(ctx, domain.VoteTarget{Kind: domain.TargetComment, ID: comment.ID}, voterID, domain.VoteChoice(6))
		assert.ErrorIs(t, err, domain.ErrInvalidVoteChoice)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("posts are liked not voted", func(t *testing.T) {
		_, err := svc.Apply(ctx, domain.VoteTarget{Kind: domain.TargetPost, ID: 1}, voterID, domain.VoteUp)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("missing comment", func(t *testing.T) {
		_, err := svc.Apply(ctx, domain.VoteTarget{Kind: domain.TargetComment, ID: 999}, voterID, domain.VoteUp)
		assert.ErrorIs(t, err, domain.ErrCommentNotFound)
	})
}
