package translate

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"myvote/internal/shared/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *atomic.Int64) {
	t.Helper()
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	nop := zerolog.Nop()
	return NewClient(config.TranslateConfig{BaseURL: srv.URL, APIKey: "key"}, nil, &nop), &calls
}

func TestTranslate_EnglishIsIdentity(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	assert.Equal(t, "Welcome to MyVote", client.Translate(context.Background(), "Welcome to MyVote", "en"))
	assert.Equal(t, "", client.Translate(context.Background(), "", "hi"))
	assert.Equal(t, int64(0), calls.Load())
}

func TestTranslate_CachesPerLanguage(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"translations":[{"translatedText":"मायवोट में आपका स्वागत है"}]}}`)
	})

	first := client.Translate(context.Background(), "Welcome to MyVote", "hi")
	second := client.Translate(context.Background(), "Welcome to MyVote", "hi")

	assert.Equal(t, "मायवोट में आपका स्वागत है", first)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), calls.Load())
}

func TestTranslate_FailureDegradesToSource(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	assert.Equal(t, "Sign Out", client.Translate(context.Background(), "Sign Out", "hi"))
}

func TestTranslate_APIErrorBodyDegradesToSource(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":{"message":"invalid key"}}`)
	})

	assert.Equal(t, "Results", client.Translate(context.Background(), "Results", "ta"))
}

func TestTranslate_NoKeyServesEnglish(t *testing.T) {
	nop := zerolog.Nop()
	client := NewClient(config.TranslateConfig{BaseURL: "http://unused"}, nil, &nop)

	assert.Equal(t, "FAQs", client.Translate(context.Background(), "FAQs", "hi"))
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("hi"))
	assert.True(t, IsSupported("en"))
	assert.False(t, IsSupported("fr"))
}
