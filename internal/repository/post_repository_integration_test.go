//go:build integration
// +build integration

package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holidaily/internal/domain"
	"holidaily/internal/repository"
)

func TestPostRepository_SetLike(t *testing.T) {
	db := setupDB(t)
	authorID := insertUser(t, db, "author")
	fanID := insertUser(t, db, "fan")
	repo := repository.NewPostRepository(db)
	ctx := context.Background()

	post := &domain.Post{UserID: authorID, HolidayID: insertHoliday(t, db, nil, true).ID, Content: "party"}
	require.NoError(t, repo.Create(ctx, post))

	steps := []struct {
		like    bool
		changed bool
		likes   int
	}{
		{true, true, 1},
		{true, false, 1},
		{false, true, 0},
		{false, false, 0},
	}
	for _, step := range steps {
		out, err := repo.SetLike(ctx, post.ID, fanID, step.like)
		require.NoError(t, err)
		assert.Equal(t, step.changed, out.Changed)
		assert.Equal(t, step.likes, out.Likes)
	}

	_, err := repo.SetLike(ctx, 999, fanID, true)
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}
