package gemini

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

var (
	// ErrRequestFailed reports a non-success HTTP status from the model
	// endpoint, carrying the status and body.
	ErrRequestFailed = errors.New("extraction request failed")

	// ErrMalformedResponse reports a completion with no parseable JSON
	// object.
	ErrMalformedResponse = errors.New("malformed extraction response")
)

// extractionPrompt is the fixed instruction sent with every document image.
// The model is told the exact JSON shape, the sentinel for unreadable
// fields, and to return nothing but the object.
const extractionPrompt = `Analyze this Aadhar card image and extract the following information as a JSON object with exactly these keys:
{
  "name": "<full name>",
  "aadhar_number": "<12-digit Aadhar number>",
  "date_of_birth": "<date of birth as printed, e.g. DD/MM/YYYY>",
  "gender": "<gender>",
  "address": "<full address>",
  "guardian_name": "<father's or guardian's name>",
  "phone": "<phone number if printed>"
}
Rules: use the literal value "Not visible" for any field you cannot read.
Return only the JSON object, with no surrounding text or code fences.`

// Client calls the external multimodal completion endpoint and recovers the
// structured identity from its free-text response.
type Client struct {
	cfg        config.ExtractionConfig
	httpClient *http.Client
	log        zerolog.Logger
	metrics    *metrics.Metrics
}

var _ ports.DocumentExtractor = (*Client)(nil)

// NewClient creates the extraction client.
func NewClient(cfg config.ExtractionConfig, m *metrics.Metrics, baseLogger *zerolog.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 90 * time.Second},
		log:        baseLogger.With().Str("component", "gemini_client").Logger(),
		metrics:    m,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Extract sends the base64 image with the fixed prompt and parses the first
// top-level JSON object out of the completion. There is no retry and no
// schema validation beyond a successful parse.
func (c *Client) Extract(ctx context.Context, base64Image string) (identity *domain.ExtractedIdentity, err error) {
	start := time.Now()
	defer func() { c.metrics.ObserveCall("gemini", start, err) }()

	reqBody := generateRequest{
		Contents: []content{{
			Parts: []part{
				{Text: extractionPrompt},
				{InlineData: &inlineData{MimeType: "image/jpeg", Data: base64Image}},
			},
		}},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal extraction request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.cfg.BaseURL, c.cfg.Model, c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build extraction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error().Err(err).Msg("Extraction request failed to complete")
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrRequestFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Error().Int("status", resp.StatusCode).Msg("Model endpoint returned non-success status")
		return nil, fmt.Errorf("%w: status %d: %s", ErrRequestFailed, resp.StatusCode, truncate(respBody, 512))
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: no completion candidates", ErrMalformedResponse)
	}

	completion := parsed.Candidates[0].Content.Parts[0].Text
	object, ok := firstJSONObject(completion)
	if !ok {
		c.log.Warn().Str("completion", truncateString(completion, 256)).Msg("No JSON object found in completion")
		return nil, fmt.Errorf("%w: no JSON object in completion", ErrMalformedResponse)
	}

	identity = &domain.ExtractedIdentity{}
	if err := json.Unmarshal([]byte(object), identity); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return identity, nil
}

func truncate(b []byte, n int) string {
	return truncateString(string(b), n)
}

func truncateString(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
