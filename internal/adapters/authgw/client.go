package authgw

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

// ErrAuthRequest reports a non-success status from the auth provider,
// carrying the provider's message when one is present.
var ErrAuthRequest = errors.New("auth request failed")

// Client consumes a GoTrue-style OTP auth provider. Sessions are owned by
// the provider; this client only exchanges and patches them.
type Client struct {
	cfg        config.AuthConfig
	httpClient *http.Client
	log        zerolog.Logger
	metrics    *metrics.Metrics
}

var _ ports.AuthGateway = (*Client)(nil)

// NewClient creates the auth gateway client.
func NewClient(cfg config.AuthConfig, m *metrics.Metrics, baseLogger *zerolog.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        baseLogger.With().Str("component", "auth_client").Logger(),
		metrics:    m,
	}
}

// SignInWithOTP asks the provider to text a one-time password to the phone.
func (c *Client) SignInWithOTP(ctx context.Context, phone string) (err error) {
	start := time.Now()
	defer func() { c.metrics.ObserveCall("auth", start, err) }()

	body := map[string]string{"phone": phone}
	resp, err := c.post(ctx, "/auth/v1/otp", "", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return c.expectSuccess(resp)
}

type verifyResponse struct {
	AccessToken string `json:"access_token"`
	User        struct {
		ID           string         `json:"id"`
		Phone        string         `json:"phone"`
		UserMetadata map[string]any `json:"user_metadata"`
		LastSignIn   time.Time      `json:"last_sign_in_at"`
	} `json:"user"`
}

// VerifyOTP exchanges the phone/token pair for a session.
func (c *Client) VerifyOTP(ctx context.Context, phone, token string) (session *domain.Session, err error) {
	start := time.Now()
	defer func() { c.metrics.ObserveCall("auth", start, err) }()

	body := map[string]string{"phone": phone, "token": token, "type": "sms"}
	resp, err := c.post(ctx, "/auth/v1/verify", "", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := c.expectSuccess(resp); err != nil {
		return nil, err
	}

	var parsed verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode verify response: %w", err)
	}
	if parsed.AccessToken == "" {
		return nil, fmt.Errorf("%w: no access token in verify response", ErrAuthRequest)
	}

	metadata := make(map[string]string, len(parsed.User.UserMetadata))
	for k, v := range parsed.User.UserMetadata {
		if s, ok := v.(string); ok {
			metadata[k] = s
		}
	}

	userPhone := parsed.User.Phone
	if userPhone == "" {
		userPhone = phone
	}
	return &domain.Session{
		AccessToken: parsed.AccessToken,
		UserID:      parsed.User.ID,
		Phone:       userPhone,
		Metadata:    metadata,
		LastSignIn:  parsed.User.LastSignIn,
	}, nil
}

// SignOut revokes the session token.
func (c *Client) SignOut(ctx context.Context, accessToken string) (err error) {
	start := time.Now()
	defer func() { c.metrics.ObserveCall("auth", start, err) }()

	resp, err := c.post(ctx, "/auth/v1/logout", accessToken, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return c.expectSuccess(resp)
}

// UpdateUserMetadata patches durable metadata onto the user's profile.
func (c *Client) UpdateUserMetadata(ctx context.Context, accessToken string, metadata map[string]string) (err error) {
	start := time.Now()
	defer func() { c.metrics.ObserveCall("auth", start, err) }()

	body, err := json.Marshal(map[string]any{"data": metadata})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.cfg.BaseURL+"/auth/v1/user", bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.setHeaders(req, accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuthRequest, err)
	}
	defer resp.Body.Close()
	return c.expectSuccess(resp)
}

func (c *Client) post(ctx context.Context, path, accessToken string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, reader)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthRequest, err)
	}
	return resp, nil
}

func (c *Client) setHeaders(req *http.Request, accessToken string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.cfg.AnonKey)
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
}

// expectSuccess maps a non-2xx response to ErrAuthRequest with the
// provider's message. The body is left unread on success.
func (c *Client) expectSuccess(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

	var apiErr struct {
		Message  string `json:"msg"`
		ErrorMsg string `json:"error_description"`
	}
	msg := ""
	if json.Unmarshal(respBody, &apiErr) == nil {
		if apiErr.Message != "" {
			msg = apiErr.Message
		} else {
			msg = apiErr.ErrorMsg
		}
	}
	c.log.Error().Int("status", resp.StatusCode).Str("message", msg).Msg("Auth provider returned non-success status")
	if msg != "" {
		return fmt.Errorf("%w: status %d: %s", ErrAuthRequest, resp.StatusCode, msg)
	}
	return fmt.Errorf("%w: status %d", ErrAuthRequest, resp.StatusCode)
}
