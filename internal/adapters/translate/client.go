package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"myvote/internal/core/ports"
	"myvote/internal/shared/config"
	"myvote/internal/shared/metrics"
)

// Language describes one supported UI language.
type Language struct {
	Code       string
	Name       string
	NativeName string
}

// SupportedLanguages is the selector list offered to users.
var SupportedLanguages = []Language{
	{"en", "English", "English"},
	{"hi", "Hindi", "हिंदी"},
	{"bn", "Bengali", "বাংলা"},
	{"te", "Telugu", "తెలుగు"},
	{"mr", "Marathi", "मराठी"},
	{"ta", "Tamil", "தமிழ்"},
	{"gu", "Gujarati", "ગુજરાતી"},
	{"ur", "Urdu", "اردو"},
	{"kn", "Kannada", "ಕನ್ನಡ"},
	{"ml", "Malayalam", "മലയാളം"},
}

// IsSupported reports whether the language code is offered.
func IsSupported(code string) bool {
	for _, l := range SupportedLanguages {
		if l.Code == code {
			return true
		}
	}
	return false
}

// Client consumes the external translation endpoint. Source text is always
// English; failures degrade to returning the source text so a translation
// outage never breaks a screen. Results are cached per (language, text).
type Client struct {
	cfg        config.TranslateConfig
	httpClient *http.Client
	log        zerolog.Logger
	metrics    *metrics.Metrics

	mu    sync.RWMutex
	cache map[string]map[string]string // language -> source text -> translation
}

var _ ports.Translator = (*Client)(nil)

// NewClient creates the translation client.
func NewClient(cfg config.TranslateConfig, m *metrics.Metrics, baseLogger *zerolog.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 20 * time.Second},
		log:        baseLogger.With().Str("component", "translate_client").Logger(),
		metrics:    m,
		cache:      make(map[string]map[string]string),
	}
}

type translateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Translate returns the text in the target language, or the source text
// unchanged when the target is English, the text is blank, no API key is
// configured, or the call fails.
func (c *Client) Translate(ctx context.Context, text, targetLanguage string) string {
	if targetLanguage == "" || targetLanguage == "en" || strings.TrimSpace(text) == "" || c.cfg.APIKey == "" {
		return text
	}

	if cached, ok := c.lookup(targetLanguage, text); ok {
		return cached
	}

	translated, err := c.call(ctx, text, targetLanguage)
	if err != nil {
		c.log.Warn().Err(err).Str("target", targetLanguage).Msg("Translation failed, serving source text")
		return text
	}

	c.store(targetLanguage, text, translated)
	return translated
}

func (c *Client) call(ctx context.Context, text, target string) (translated string, err error) {
	start := time.Now()
	defer func() { c.metrics.ObserveCall("translate", start, err) }()

	body, err := json.Marshal(map[string]string{
		"q":      text,
		"target": target,
		"source": "en",
		"format": "text",
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/language/translate/v2?key=%s", c.cfg.BaseURL, c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("translation endpoint returned status %d", resp.StatusCode)
	}

	var parsed translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("translation error: %s", parsed.Error.Message)
	}
	if len(parsed.Data.Translations) == 0 || parsed.Data.Translations[0].TranslatedText == "" {
		return "", fmt.Errorf("translation response carried no translation")
	}
	return parsed.Data.Translations[0].TranslatedText, nil
}

func (c *Client) lookup(lang, text string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	byText, ok := c.cache[lang]
	if !ok {
		return "", false
	}
	translated, ok := byText[text]
	return translated, ok
}

func (c *Client) store(lang, text, translated string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cache[lang] == nil {
		c.cache[lang] = make(map[string]string)
	}
	c.cache[lang][text] = translated
}
