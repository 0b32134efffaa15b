// Package acl is the anti-corruption layer for the notifier daemon. It
// translates between the daemon's wire DTOs and domain types, so the rest of
// the codebase never sees the daemon's API shapes.
package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/jsamuelsen/growdaily/internal/adapters/clients"
	"github.com/jsamuelsen/growdaily/internal/domain"
	"github.com/jsamuelsen/growdaily/internal/platform/logging"
)

// NotifierClientConfig contains configuration for the notifier client.
type NotifierClientConfig struct {
	// Client is the HTTP client, with BaseURL pointing at the daemon.
	Client *clients.Client

	// ServiceName names the daemon in errors and health checks.
	ServiceName string

	// Logger is the structured logger.
	Logger *slog.Logger
}

// NotifierClient implements ports.NotificationGateway against the notifier
// daemon's REST API.
type NotifierClient struct {
	client      *clients.Client
	serviceName string
	logger      *slog.Logger
}

// NewNotifierClient creates a new notifier client adapter.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewNotifierClient(cfg NotifierClientConfig) *NotifierClient {
	if cfg.Client == nil {
		panic("NotifierClient: Client is required")
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "notifier"
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &NotifierClient{
		client:      cfg.Client,
		serviceName: serviceName,
		logger:      logger,
	}
}

// Wire DTOs. Internal to the ACL, never exposed.

type notificationRequestDTO struct {
	Identifier string `json:"identifier"`
	Hour       int    `json:"hour"`
	Minute     int    `json:"minute"`
	Repeats    bool   `json:"repeats"`
	QuoteID    string `json:"quoteId"`
	Title      string `json:"title"`
	Body       string `json:"body"`
}

type deliveredNotificationDTO struct {
	Identifier  string    `json:"identifier"`
	QuoteID     string    `json:"quoteId"`
	DeliveredAt time.Time `json:"deliveredAt"`
}

type identifiersDTO struct {
	Identifiers []string `json:"identifiers"`
}

type authorizationDTO struct {
	Alert bool `json:"alert"`
	Sound bool `json:"sound"`
	Badge bool `json:"badge"`
}

type authorizationResultDTO struct {
	Granted bool `json:"granted"`
}

// Add schedules a notification request with the daemon.
func (c *NotifierClient) Add(ctx context.Context, req *domain.NotificationRequest) error {
	c.logger.Log(ctx, logging.LevelTrace, "adding notification request",
		slog.String("identifier", req.Identifier))

	body, err := json.Marshal(notificationRequestDTO{
		Identifier: req.Identifier,
		Hour:       req.FireAt.Hour,
		Minute:     req.FireAt.Minute,
		Repeats:    req.Repeats,
		QuoteID:    req.QuoteID,
		Title:      req.Title,
		Body:       req.Body,
	})
	if err != nil {
		return fmt.Errorf("encoding notification request: %w", err)
	}

	resp, err := c.client.Post(ctx, "/v1/notifications/pending", bytes.NewReader(body))
	if err != nil {
		return c.mapClientError(err, "add notification")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return c.handleErrorResponse(resp, "add notification", req.Identifier)
	}

	return nil
}

// ListPending returns the daemon's pending requests.
func (c *NotifierClient) ListPending(ctx context.Context) ([]*domain.NotificationRequest, error) {
	resp, err := c.client.Get(ctx, "/v1/notifications/pending")
	if err != nil {
		return nil, c.mapClientError(err, "list pending")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleErrorResponse(resp, "list pending", "")
	}

	var external []notificationRequestDTO
	if err := json.NewDecoder(resp.Body).Decode(&external); err != nil {
		return nil, fmt.Errorf("decoding pending notifications: %w", err)
	}

	result := make([]*domain.NotificationRequest, 0, len(external))
	for _, dto := range external {
		result = append(result, &domain.NotificationRequest{
			Identifier: dto.Identifier,
			FireAt:     domain.TimeOfDay{Hour: dto.Hour, Minute: dto.Minute},
			Repeats:    dto.Repeats,
			QuoteID:    dto.QuoteID,
			Title:      dto.Title,
			Body:       dto.Body,
		})
	}

	return result, nil
}

// RemovePending cancels the requests with the given identifiers.
func (c *NotifierClient) RemovePending(ctx context.Context, identifiers []string) error {
	if len(identifiers) == 0 {
		return nil
	}

	return c.removeBatch(ctx, "/v1/notifications/pending/remove", identifiers, "remove pending")
}

// RemoveAllPending cancels every pending request.
func (c *NotifierClient) RemoveAllPending(ctx context.Context) error {
	resp, err := c.client.Delete(ctx, "/v1/notifications/pending")
	if err != nil {
		return c.mapClientError(err, "remove all pending")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return c.handleErrorResponse(resp, "remove all pending", "")
	}

	return nil
}

// ListDelivered returns notifications the daemon has already fired.
func (c *NotifierClient) ListDelivered(ctx context.Context) ([]*domain.DeliveredNotification, error) {
	resp, err := c.client.Get(ctx, "/v1/notifications/delivered")
	if err != nil {
		return nil, c.mapClientError(err, "list delivered")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleErrorResponse(resp, "list delivered", "")
	}

	var external []deliveredNotificationDTO
	if err := json.NewDecoder(resp.Body).Decode(&external); err != nil {
		return nil, fmt.Errorf("decoding delivered notifications: %w", err)
	}

	result := make([]*domain.DeliveredNotification, 0, len(external))
	for _, dto := range external {
		result = append(result, &domain.DeliveredNotification{
			Identifier:  dto.Identifier,
			QuoteID:     dto.QuoteID,
			DeliveredAt: dto.DeliveredAt,
		})
	}

	return result, nil
}

// RemoveDelivered clears delivered notifications from the visible list.
func (c *NotifierClient) RemoveDelivered(ctx context.Context, identifiers []string) error {
	if len(identifiers) == 0 {
		return nil
	}

	return c.removeBatch(ctx, "/v1/notifications/delivered/remove", identifiers, "remove delivered")
}

// RequestAuthorization asks the daemon for permission to show alerts.
func (c *NotifierClient) RequestAuthorization(ctx context.Context, opts domain.AuthorizationOptions) (bool, error) {
	body, err := json.Marshal(authorizationDTO{
		Alert: opts.Alert,
		Sound: opts.Sound,
		Badge: opts.Badge,
	})
	if err != nil {
		return false, fmt.Errorf("encoding authorization request: %w", err)
	}

	resp, err := c.client.Post(ctx, "/v1/authorization", bytes.NewReader(body))
	if err != nil {
		return false, c.mapClientError(err, "request authorization")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return false, c.handleErrorResponse(resp, "request authorization", "")
	}

	var result authorizationResultDTO
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("decoding authorization response: %w", err)
	}

	return result.Granted, nil
}

// Name implements ports.HealthChecker.
func (c *NotifierClient) Name() string {
	return c.serviceName
}

// Check implements ports.HealthChecker.
func (c *NotifierClient) Check(ctx context.Context) error {
	resp, err := c.client.Get(ctx, "/v1/health")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("notifier daemon returned status %d", resp.StatusCode)
	}

	return nil
}

func (c *NotifierClient) removeBatch(ctx context.Context, path string, identifiers []string, operation string) error {
	body, err := json.Marshal(identifiersDTO{Identifiers: identifiers})
	if err != nil {
		return fmt.Errorf("encoding identifiers: %w", err)
	}

	resp, err := c.client.Post(ctx, path, bytes.NewReader(body))
	if err != nil {
		return c.mapClientError(err, operation)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return c.handleErrorResponse(resp, operation, "")
	}

	return nil
}

func (c *NotifierClient) handleErrorResponse(resp *http.Response, operation, entityID string) error {
	body, _ := io.ReadAll(resp.Body)

	c.logger.Warn("notifier API error",
		slog.String("operation", operation),
		slog.Int("status_code", resp.StatusCode),
		slog.String("body", string(body)),
	)

	return mapStatusCode(resp.StatusCode, c.serviceName, operation, entityID)
}
