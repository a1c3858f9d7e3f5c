package imaging

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/rs/zerolog"
)

// ErrImageProcessing wraps every encode/read failure so callers can show one
// consistent message instead of a raw low-level error.
var ErrImageProcessing = errors.New("image processing failed")

// Encoder converts an image resource into raw base64 with no data-URI
// prefix. Two strategies exist: fetching a remote URL (Telegram file URLs)
// and reading a local file.
type Encoder struct {
	httpClient *http.Client
	log        zerolog.Logger
}

// NewEncoder creates an encoder. A nil client falls back to
// http.DefaultClient.
func NewEncoder(httpClient *http.Client, baseLogger *zerolog.Logger) *Encoder {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Encoder{
		httpClient: httpClient,
		log:        baseLogger.With().Str("component", "image_encoder").Logger(),
	}
}

// EncodeFromURL fetches the image and encodes its bytes.
func (e *Encoder) EncodeFromURL(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageProcessing, err)
	}
	resp, err := e.httpClient.Do(req)
	if err != nil {
		e.log.Error().Err(err).Msg("Failed to fetch image")
		return "", fmt.Errorf("%w: %v", ErrImageProcessing, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		e.log.Error().Int("status", resp.StatusCode).Msg("Image fetch returned non-OK status")
		return "", fmt.Errorf("%w: unexpected status %d", ErrImageProcessing, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageProcessing, err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// EncodeFromFile reads a local image file and encodes its bytes.
func (e *Encoder) EncodeFromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		e.log.Error().Err(err).Str("path", path).Msg("Failed to read image file")
		return "", fmt.Errorf("%w: %v", ErrImageProcessing, err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
