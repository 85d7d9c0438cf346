package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"holidaily/internal/config"
	"holidaily/internal/domain"
	"holidaily/internal/repository/memstore"
	"holidaily/internal/service"
)

func TestNewServices_WithoutRedisOrMinIO(t *testing.T) {
	store := memstore.New()
	store.PutHoliday(domain.Holiday{ID: 1, Name: "Pizza Day", Active: true})
	store.PutProfile(domain.UserProfile{UserID: 1, Username: "alice", DeviceID: "dev-a", Active: true})

	cfg := &config.Config{DeliveryConcurrency: 2, HolidaySubmissionReward: 100, MinIOBucket: "avatars"}
	services := service.NewServices(store.Repositories(), nil, nil, cfg, zap.NewNop())

	require.NotNil(t, services.Community)
	require.NotNil(t, services.Holiday)
	require.NotNil(t, services.Notification)
	require.NotNil(t, services.Avatar)

	ctx := context.Background()
	alice, err := store.Repositories().Profile.GetByUserID(ctx, 1)
	require.NoError(t, err)

	holidayID := int64(1)
	_, err = services.Community.PostComment(ctx, alice, domain.CreateCommentInput{HolidayID: &holidayID, Content: "hello"})
	require.NoError(t, err)

	page, err := services.Community.ListComments(ctx, domain.HolidayScope(1), domain.DefaultPageWindow(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalItems)

	_, err = services.Avatar.Upload(ctx, alice, strings.NewReader("png"), 3, "image/png")
	assert.ErrorContains(t, err, "not configured")
}
