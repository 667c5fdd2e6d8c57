// Package api is the client of the authoritative booking backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"cooked/config"
	deliverycontext "cooked/internal/delivery/context"
	domainerrors "cooked/internal/domain/errors"
	"cooked/internal/domain/service"
	"cooked/internal/errors"

	"go.uber.org/fx"
)

const maxResponseBytes = 8 << 20

// Client sends JSON requests to the backend with the session's bearer token.
// It never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      service.CredentialSource
	expiry     service.ExpiryNotifier
	logger     *slog.Logger
}

// ClientParams holds dependencies for Client, injected by Fx
type ClientParams struct {
	fx.In

	Config *config.Config
	Creds  service.CredentialSource
	Expiry service.ExpiryNotifier
	Logger *slog.Logger
}

// NewClient creates the backend client from configuration
func NewClient(params ClientParams) *Client {
	return New(params.Config.Backend, params.Creds, params.Expiry, params.Logger)
}

// New builds a Client without Fx.
func New(cfg *config.BackendConfig, creds service.CredentialSource, expiry service.ExpiryNotifier, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/") + "/" + strings.Trim(cfg.APIPrefix, "/"),
		httpClient: &http.Client{Timeout: timeout},
		creds:      creds,
		expiry:     expiry,
		logger:     logger,
	}
}

// Request sends one request. path is relative to the API root.
//
// A 2xx with an empty body returns a nil payload. A 401 runs the expiry
// coordinator before returning SessionExpiredError. Any other non-2xx is an
// APIError carrying the server's message; network failures and unreadable
// success bodies are TransportError.
func (c *Client) Request(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, c.logger)
	url := c.baseURL + "/" + strings.TrimLeft(path, "/")

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := c.creds.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(deliverycontext.HeaderXRequestID, requestID)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("Backend request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err),
		)

		return nil, domainerrors.NewTransportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, domainerrors.NewTransportError(errors.Wrap(err, "read response body"))
	}

	logger.Debug("Backend request completed",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(started)),
	)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		reason := fmt.Sprintf("%s %s returned 401", method, path)
		c.expiry.Trigger(context.WithoutCancel(ctx), reason)

		return nil, domainerrors.NewSessionExpiredError(reason)

	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, domainerrors.NewAPIError(resp.StatusCode, errorMessage(raw))
	}

	trimmed := bytes.TrimSpace(raw)
	if resp.StatusCode == http.StatusNoContent || len(trimmed) == 0 {
		return nil, nil
	}
	if !json.Valid(trimmed) {
		return nil, domainerrors.NewTransportError(errors.Errorf("%s %s: response is not JSON", method, path))
	}

	return json.RawMessage(trimmed), nil
}

// errorMessage pulls a human message out of an error body.
func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}

	text := strings.TrimSpace(string(raw))
	if text == "" || len(text) > 200 || strings.HasPrefix(text, "<") || strings.HasPrefix(text, "{") {
		return ""
	}

	return text
}
