package holiday_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"holidaily/internal/config"
	"holidaily/internal/domain"
	"holidaily/internal/mocks"
	"holidaily/internal/repository/memstore"
	"holidaily/internal/service/holiday"
	"holidaily/internal/service/notification"
)

const (
	creatorID int64 = 1
	staffID   int64 = 2
	reward          = 100
)

func setup(t *testing.T) (*memstore.Store, holiday.Service) {
	t.Helper()

	store := memstore.New()
	store.PutProfile(domain.UserProfile{UserID: creatorID, Username: "creator", Active: true})
	store.PutProfile(domain.UserProfile{UserID: staffID, Username: "staff", Active: true, IsStaff: true})

	repos := store.Repositories()
	cfg := &config.Config{DeliveryConcurrency: 1}
	notifSvc := notification.NewService(repos, new(mocks.PushSender), new(mocks.EmailService), cfg, zap.NewNop())
	return store, holiday.NewService(repos.Holiday, notifSvc, reward, zap.NewNop())
}

func get(t *testing.T, store *memstore.Store, id int64) *domain.UserProfile {
	t.Helper()
	p, err := store.Repositories().Profile.GetByUserID(context.Background(), id)
	require.NoError(t, err)
	return p
}

func submission(name string) domain.SubmitHolidayInput {
	return domain.SubmitHolidayInput{
		Name:        name,
		Description: "A day for pizza",
		Date:        time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC),
	}
}

func TestSubmit(t *testing.T) {
	store, svc := setup(t)
	ctx := context.Background()
	creator := get(t, store, creatorID)

	h, err := svc.Submit(ctx, creator, submission("  Pizza Day "))
	require.NoError(t, err)
	assert.Equal(t, "Pizza Day", h.Name)
	assert.False(t, h.Active)
	require.NotNil(t, h.CreatorID)
	assert.Equal(t, creatorID, *h.CreatorID)

	_, err = svc.Submit(ctx, creator, submission("pizza day"))
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = svc.Submit(ctx, creator, domain.SubmitHolidayInput{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Submit(ctx, nil, submission("Taco Day"))
	assert.ErrorIs(t, err, domain.ErrIdentityRequired)

	banned := get(t, store, creatorID)
	banned.Active = false
	_, err = svc.Submit(ctx, banned, submission("Taco Day"))
	assert.ErrorIs(t, err, domain.ErrBanned)
}

func TestApprove_AwardsOnce(t *testing.T) {
	store, svc := setup(t)
	ctx := context.Background()

	h, err := svc.Submit(ctx, get(t, store, creatorID), submission("Pizza Day"))
	require.NoError(t, err)

	_, err = svc.Approve(ctx, get(t, store, creatorID), h.ID)
	assert.ErrorIs(t, err, domain.ErrStaffRequired)

	approved, err := svc.Approve(ctx, get(t, store, staffID), h.ID)
	require.NoError(t, err)
	assert.True(t, approved.Active)
	assert.True(t, approved.CreatorAwarded)
	assert.Equal(t, reward, get(t, store, creatorID).Confetti)

	again, err := svc.Approve(ctx, get(t, store, staffID), h.ID)
	require.NoError(t, err)
	assert.True(t, again.Active)
	assert.Equal(t, reward, get(t, store, creatorID).Confetti)

	notes := store.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, domain.NotifHoliday, notes[0].Type)
	assert.Equal(t, h.ID, notes[0].NotificationID)
}

func TestApprove_SeededHolidayHasNoReward(t *testing.T) {
	store, svc := setup(t)
	seeded := store.PutHoliday(domain.Holiday{ID: 50, Name: "New Year"})

	h, err := svc.Approve(context.Background(), get(t, store, staffID), seeded.ID)
	require.NoError(t, err)

	assert.True(t, h.Active)
	assert.False(t, h.CreatorAwarded)
	assert.Empty(t, store.Notifications())
}

func TestGetByID_NotFound(t *testing.T) {
	_, svc := setup(t)

	_, err := svc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrHolidayNotFound)
}
