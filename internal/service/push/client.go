package push

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"holidaily/internal/config"
	"holidaily/internal/domain"
)

var (
	ErrNoDevice      = errors.New("no active push device")
	ErrInvalidToken  = errors.New("push token rejected by gateway")
	ErrNotConfigured = errors.New("push gateway not configured for platform")
)

type Message struct {
	Title string         `json:"title"`
	Body  string         `json:"body"`
	Badge int64          `json:"badge"`
	Data  map[string]any `json:"data,omitempty"`
}

type Sender interface {
	Send(ctx context.Context, device domain.Device, msg Message) error
}

type gatewayRequest struct {
	RegistrationID string `json:"registration_id"`
	Message
}

type gatewayResponse struct {
	Error string `json:"error"`
}

// staleTokenErrors are gateway error codes meaning the registration is gone for good.
var staleTokenErrors = map[string]struct{}{
	"InvalidRegistration": {},
	"NotRegistered":       {},
	"Unregistered":        {},
	"BadDeviceToken":      {},
}

type Client struct {
	httpClient *http.Client
	endpoints  map[domain.Platform]string
	apiKey     string
	maxRetries uint64
	logger     *zap.Logger
}

func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.PushTimeout},
		endpoints: map[domain.Platform]string{
			domain.PlatformIOS:     cfg.PushEndpointIOS,
			domain.PlatformAndroid: cfg.PushEndpointAndroid,
		},
		apiKey:     cfg.PushAPIKey,
		maxRetries: 3,
		logger:     logger.Named("push_client"),
	}
}

func (c *Client) Send(ctx context.Context, device domain.Device, msg Message) error {
	endpoint := c.endpoints[device.Platform]
	if endpoint == "" {
		return fmt.Errorf("%w: %s", ErrNotConfigured, device.Platform)
	}

	payload, err := json.Marshal(gatewayRequest{RegistrationID: device.RegistrationID, Message: msg})
	if err != nil {
		return fmt.Errorf("failed to encode push payload: %w", err)
	}

	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(200*time.Millisecond),
		backoff.WithMaxInterval(2*time.Second),
	), c.maxRetries)

	return backoff.RetryNotify(func() error {
		return c.post(ctx, endpoint, payload)
	}, backoff.WithContext(b, ctx), func(err error, wait time.Duration) {
		c.logger.Warn("Push delivery failed, retrying",
			zap.Int64("device", device.ID),
			zap.Duration("wait", wait),
			zap.Error(err))
	})
}

func (c *Client) post(ctx context.Context, endpoint string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return backoff.Permanent(ErrInvalidToken)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return fmt.Errorf("push gateway returned %d", resp.StatusCode)
	case resp.StatusCode >= 400:
		return backoff.Permanent(fmt.Errorf("push gateway returned %d: %s", resp.StatusCode, bytes.TrimSpace(body)))
	}

	var parsed gatewayResponse
	if len(body) > 0 && json.Unmarshal(body, &parsed) == nil && parsed.Error != "" {
		if _, stale := staleTokenErrors[parsed.Error]; stale {
			return backoff.Permanent(ErrInvalidToken)
		}
		return backoff.Permanent(fmt.Errorf("push gateway error: %s", parsed.Error))
	}

	return nil
}
