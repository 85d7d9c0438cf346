package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"holidaily/internal/domain"
)

func TestVoteDelta(t *testing.T) {
	up := domain.VoteUp
	down := domain.VoteDown

	tests := []struct {
		name    string
		prev    *domain.VoteChoice
		next    domain.VoteChoice
		delta   int
		changed bool
	}{
		{"first up", nil, domain.VoteUp, 1, true},
		{"first down", nil, domain.VoteDown, -1, true},
		{"down to up", &down, domain.VoteUpFromDown, 2, true},
		{"up to down", &up, domain.VoteDownFromUp, -2, true},
		{"clear up", &up, domain.VoteNeutralFromUp, -1, true},
		{"clear down", &down, domain.VoteNeutralFromDown, 1, true},
		{"repeat up", &up, domain.VoteUp, 0, false},
		{"repeat down", &down, domain.VoteDown, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delta, changed := domain.VoteDelta(tt.prev, tt.next)
			assert.Equal(t, tt.delta, delta)
			assert.Equal(t, tt.changed, changed)
		})
	}
}

func TestVoteChoice(t *testing.T) {
	assert.True(t, domain.VoteDownFromUp.Valid())
	assert.False(t, domain.VoteChoice(6).Valid())
	assert.False(t, domain.VoteChoice(-1).Valid())

	assert.True(t, domain.VoteUpFromDown.IsUpvote())
	assert.False(t, domain.VoteNeutralFromDown.IsUpvote())

	assert.Equal(t, domain.VoteStatusUp, domain.VoteUpFromDown.Status())
	assert.Equal(t, domain.VoteStatusDown, domain.VoteDownFromUp.Status())
	assert.Equal(t, domain.VoteStatusNone, domain.VoteNeutralFromUp.Status())
}
