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

func TestModerationRepository_ReportTwice(t *testing.T) {
	db := setupDB(t)
	authorID := insertUser(t, db, "author")
	reporterID := insertUser(t, db, "reporter")
	comment := insertComment(t, db, insertHoliday(t, db, nil, true).ID, authorID, nil)
	repo := repository.NewModerationRepository(db)
	target := domain.ReportTarget{Kind: domain.TargetComment, ID: comment.ID}

	first, err := repo.Report(context.Background(), target, reporterID, false)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Reports)
	assert.Equal(t, authorID, first.AuthorID)
	assert.False(t, first.Blocked)

	second, err := repo.Report(context.Background(), target, reporterID, true)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Reports)
	assert.True(t, second.Blocked)

	assert.Equal(t, 1, countRows(t, db,
		`SELECT COUNT(*) FROM profile_reported_comments WHERE user_id = $1 AND comment_id = $2`, reporterID, comment.ID))
	assert.Equal(t, 1, countRows(t, db,
		`SELECT COUNT(*) FROM profile_blocked_users WHERE user_id = $1 AND blocked_user_id = $2`, reporterID, authorID))

	profile, err := repository.NewProfileRepository(db).GetByUserID(context.Background(), reporterID)
	require.NoError(t, err)
	assert.True(t, profile.ReportedComments.Has(comment.ID))
	assert.True(t, profile.BlockedUsers.Has(authorID))
}

func TestModerationRepository_ReportPostWithoutSelfBlock(t *testing.T) {
	db := setupDB(t)
	authorID := insertUser(t, db, "author")
	holiday := insertHoliday(t, db, nil, true)
	post := &domain.Post{UserID: authorID, HolidayID: holiday.ID, Content: "party"}
	require.NoError(t, repository.NewPostRepository(db).Create(context.Background(), post))

	out, err := repository.NewModerationRepository(db).Report(context.Background(),
		domain.ReportTarget{Kind: domain.TargetPost, ID: post.ID}, authorID, true)
	require.NoError(t, err)

	assert.Equal(t, 1, out.Reports)
	assert.False(t, out.Blocked)
	assert.Zero(t, countRows(t, db, `SELECT COUNT(*) FROM profile_blocked_users`))
}

func TestModerationRepository_ReportMissingRollsBack(t *testing.T) {
	db := setupDB(t)
	reporterID := insertUser(t, db, "reporter")
	repo := repository.NewModerationRepository(db)

	_, err := repo.Report(context.Background(), domain.ReportTarget{Kind: domain.TargetComment, ID: 999}, reporterID, true)
	assert.ErrorIs(t, err, domain.ErrCommentNotFound)

	_, err = repo.Report(context.Background(), domain.ReportTarget{Kind: domain.TargetPost, ID: 999}, reporterID, true)
	assert.ErrorIs(t, err, domain.ErrPostNotFound)

	assert.Zero(t, countRows(t, db, `SELECT COUNT(*) FROM profile_reported_comments`))
	assert.Zero(t, countRows(t, db, `SELECT COUNT(*) FROM profile_reported_posts`))
}
