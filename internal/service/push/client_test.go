package push_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"holidaily/internal/config"
	"holidaily/internal/domain"
	"holidaily/internal/service/push"
)

func newClient(iosEndpoint string) *push.Client {
	return push.NewClient(&config.Config{
		PushEndpointIOS: iosEndpoint,
		PushAPIKey:      "secret",
		PushTimeout:     2 * time.Second,
	}, zap.NewNop())
}

var device = domain.Device{ID: 1, UserID: 2, Platform: domain.PlatformIOS, RegistrationID: "tok-1"}

func TestSend_Success(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-API-Token"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	err := newClient(server.URL).Send(context.Background(), device, push.Message{
		Title: "alice mentioned you",
		Body:  "hey",
		Badge: 3,
		Data:  map[string]any{"holiday_id": 7},
	})

	require.NoError(t, err)
	assert.Equal(t, "tok-1", got["registration_id"])
	assert.Equal(t, "alice mentioned you", got["title"])
	assert.EqualValues(t, 3, got["badge"])
	assert.EqualValues(t, 7, got["data"].(map[string]any)["holiday_id"])
}

func TestSend_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := newClient(server.URL).Send(context.Background(), device, push.Message{Title: "t"})

	require.NoError(t, err)
	assert.EqualValues(t, 3, calls.Load())
}

func TestSend_StaleToken(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"gone", http.StatusGone, ""},
		{"not found", http.StatusNotFound, ""},
		{"unregistered", http.StatusOK, `{"error":"Unregistered"}`},
		{"bad device token", http.StatusOK, `{"error":"BadDeviceToken"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			err := newClient(server.URL).Send(context.Background(), device, push.Message{Title: "t"})

			assert.ErrorIs(t, err, push.ErrInvalidToken)
			assert.EqualValues(t, 1, calls.Load())
		})
	}
}

func TestSend_ClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	err := newClient(server.URL).Send(context.Background(), device, push.Message{Title: "t"})

	require.Error(t, err)
	assert.NotErrorIs(t, err, push.ErrInvalidToken)
	assert.EqualValues(t, 1, calls.Load())
}

func TestSend_UnconfiguredPlatform(t *testing.T) {
	android := device
	android.Platform = domain.PlatformAndroid

	err := newClient("http://unused").Send(context.Background(), android, push.Message{})

	assert.ErrorIs(t, err, push.ErrNotConfigured)
}
