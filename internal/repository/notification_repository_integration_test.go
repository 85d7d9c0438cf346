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

func TestNotificationRepository_CreateIfAbsent(t *testing.T) {
	db := setupDB(t)
	bobID := insertUser(t, db, "bob")
	repo := repository.NewNotificationRepository(db)
	ctx := context.Background()

	first := &domain.Notification{UserID: &bobID, NotificationID: 42, Type: domain.NotifComment, Title: "alice mentioned you", Content: "hi @bob"}
	created, err := repo.CreateIfAbsent(ctx, first)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, first.ID)
	assert.False(t, first.Read)

	second := &domain.Notification{UserID: &bobID, NotificationID: 42, Type: domain.NotifComment, Title: "alice mentioned you", Content: "hi @bob"}
	created, err = repo.CreateIfAbsent(ctx, second)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Zero(t, second.ID)

	other := &domain.Notification{UserID: &bobID, NotificationID: 42, Type: domain.NotifLikeComment, Title: "alice liked your comment"}
	created, err = repo.CreateIfAbsent(ctx, other)
	require.NoError(t, err)
	assert.True(t, created)

	assert.Equal(t, 2, countRows(t, db, `SELECT COUNT(*) FROM notifications WHERE user_id = $1`, bobID))

	unread, err := repo.CountUnread(ctx, bobID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)
}

func TestNotificationRepository_BroadcastsDedupe(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewNotificationRepository(db)
	ctx := context.Background()

	for i, want := range []bool{true, false} {
		created, err := repo.CreateIfAbsent(ctx, &domain.Notification{NotificationID: 7, Type: domain.NotifNews, Title: "New holidays"})
		require.NoError(t, err, "attempt %d", i)
		assert.Equal(t, want, created)
	}

	assert.Equal(t, 1, countRows(t, db, `SELECT COUNT(*) FROM notifications WHERE user_id IS NULL`))
}

func TestNotificationRepository_ReadTracking(t *testing.T) {
	db := setupDB(t)
	bobID := insertUser(t, db, "bob")
	aliceID := insertUser(t, db, "alice")
	repo := repository.NewNotificationRepository(db)
	ctx := context.Background()

	notif := &domain.Notification{UserID: &bobID, NotificationID: 1, Type: domain.NotifLike, Title: "liked"}
	_, err := repo.CreateIfAbsent(ctx, notif)
	require.NoError(t, err)

	assert.ErrorIs(t, repo.MarkAsRead(ctx, notif.ID, aliceID), domain.ErrNotificationNotFound)
	require.NoError(t, repo.MarkAsRead(ctx, notif.ID, bobID))

	unread, err := repo.CountUnread(ctx, bobID)
	require.NoError(t, err)
	assert.Zero(t, unread)

	items, total, err := repo.ListByUser(ctx, bobID, []domain.NotificationType{domain.NotifNews}, domain.DefaultPageWindow())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.True(t, items[0].Read)
}
