package imaging

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEncoder() *Encoder {
	nop := zerolog.Nop()
	return NewEncoder(nil, &nop)
}

func TestEncodeFromURL(t *testing.T) {
	payload := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10} // JPEG header bytes
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	got, err := newTestEncoder().EncodeFromURL(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString(payload), got)
	assert.NotContains(t, got, "data:")
}

func TestEncodeFromURL_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestEncoder().EncodeFromURL(context.Background(), srv.URL)

	assert.ErrorIs(t, err, ErrImageProcessing)
}

func TestEncodeFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "card.jpg")
	require.NoError(t, os.WriteFile(path, []byte("image-bytes"), 0o600))

	got, err := newTestEncoder().EncodeFromFile(path)

	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("image-bytes")), got)
}

func TestEncodeFromFile_Missing(t *testing.T) {
	_, err := newTestEncoder().EncodeFromFile(filepath.Join(t.TempDir(), "nope.jpg"))
	assert.ErrorIs(t, err, ErrImageProcessing)
}
