package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"myvote/internal/core/domain"
	"myvote/internal/core/ports"
	"myvote/internal/shared/config"
	"myvote/internal/shared/metrics"
)

// ErrRegistrationFailed reports a non-success status from the registry's
// registration endpoint.
var ErrRegistrationFailed = errors.New("registration failed")

// ErrStatusCheckFailed reports an unexpected status from the registration
// status endpoint. Callers of the pre-check treat it as "proceed as if
// unregistered".
var ErrStatusCheckFailed = errors.New("registration status check failed")

// Client consumes the external voter registry REST API.
type Client struct {
	cfg        config.RegistryConfig
	httpClient *http.Client
	log        zerolog.Logger
	metrics    *metrics.Metrics
}

var _ ports.RegistryClient = (*Client)(nil)

// NewClient creates the registry client.
func NewClient(cfg config.RegistryConfig, m *metrics.Metrics, baseLogger *zerolog.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        baseLogger.With().Str("component", "registry_client").Logger(),
		metrics:    m,
	}
}

// CheckRegistration reports whether the document number is already on the
// roll. 200 means registered (the body is only a success signal), 404 means
// not registered; anything else is an error.
func (c *Client) CheckRegistration(ctx context.Context, documentNumber string) (registered bool, err error) {
	start := time.Now()
	defer func() { c.metrics.ObserveCall("registry", start, err) }()

	url := fmt.Sprintf("%s/api/voters/status/aadhar/%s", c.cfg.BaseURL, documentNumber)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStatusCheckFailed, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode == http.StatusOK:
		return true, nil
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("%w: status %d", ErrStatusCheckFailed, resp.StatusCode)
	}
}

// Register submits a new registration. The registry assigns durable
// identity; success returns no content the caller needs.
func (c *Client) Register(ctx context.Context, payload *domain.RegistrationPayload) (err error) {
	start := time.Now()
	defer func() { c.metrics.ObserveCall("registry", start, err) }()

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal registration payload: %w", err)
	}

	url := fmt.Sprintf("%s/api/voters/register-aadhar", c.cfg.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Error().Int("status", resp.StatusCode).Bytes("body", respBody).Msg("Registry rejected registration")
		return fmt.Errorf("%w: status %d", ErrRegistrationFailed, resp.StatusCode)
	}
	return nil
}

// GenerateVotingQR issues a time-limited voting QR for a registered document
// number.
func (c *Client) GenerateVotingQR(ctx context.Context, documentNumber string, expirationMinutes int) (qr *ports.QRCode, err error) {
	start := time.Now()
	defer func() { c.metrics.ObserveCall("registry", start, err) }()

	body, err := json.Marshal(map[string]int{"expirationMinutes": expirationMinutes})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/api/voters/generate-voting-qr/%s", c.cfg.BaseURL, documentNumber)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-admin-address", c.cfg.AdminAddress)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generate voting QR: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("generate voting QR: status %d", resp.StatusCode)
	}

	qr = &ports.QRCode{}
	if err := json.NewDecoder(resp.Body).Decode(qr); err != nil {
		return nil, fmt.Errorf("decode voting QR response: %w", err)
	}
	return qr, nil
}
