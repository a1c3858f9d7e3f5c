package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"myvote/internal/core/domain"
	"myvote/internal/core/ports"
)

// Exporter writes each extracted identity to a one-time JSON file. The dump
// is an audit artifact, never read back by the application, and callers
// treat failures as best-effort.
type Exporter struct {
	dir string
	log zerolog.Logger
}

var _ ports.AuditExporter = (*Exporter)(nil)

// NewExporter creates the exporter rooted at dir.
func NewExporter(dir string, baseLogger *zerolog.Logger) *Exporter {
	return &Exporter{
		dir: dir,
		log: baseLogger.With().Str("component", "audit_exporter").Logger(),
	}
}

// Export writes the identity as pretty-printed JSON and returns the file
// path.
func (e *Exporter) Export(identity *domain.ExtractedIdentity) (string, error) {
	if err := os.MkdirAll(e.dir, 0o750); err != nil {
		return "", fmt.Errorf("create audit directory: %w", err)
	}

	data, err := json.MarshalIndent(identity, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal audit record: %w", err)
	}

	name := fmt.Sprintf("aadhar_data_%d.json", time.Now().UnixMilli())
	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return "", fmt.Errorf("write audit record: %w", err)
	}

	e.log.Info().Str("path", path).Msg("Extracted data exported")
	return path, nil
}
