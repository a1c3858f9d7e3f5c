package ports

import (
	"context"
	"time"

	"myvote/internal/core/domain"
)

// AuthGateway is the external OTP auth provider, consumed and never
// implemented here.
type AuthGateway interface {
	// SignInWithOTP asks the provider to send a one-time password to the
	// phone number.
	SignInWithOTP(ctx context.Context, phone string) error

	// VerifyOTP exchanges a phone/token pair for a session.
	VerifyOTP(ctx context.Context, phone, token string) (*domain.Session, error)

	// SignOut revokes the session's token.
	SignOut(ctx context.Context, accessToken string) error

	// UpdateUserMetadata patches durable metadata onto the user's profile.
	// Callers treat failures as best-effort: logged, never blocking.
	UpdateUserMetadata(ctx context.Context, accessToken string, metadata map[string]string) error
}

// DocumentExtractor recovers structured identity fields from a base64 image
// via an external vision model.
type DocumentExtractor interface {
	Extract(ctx context.Context, base64Image string) (*domain.ExtractedIdentity, error)
}

// ImageEncoder turns an image resource into raw base64 (no data-URI prefix).
type ImageEncoder interface {
	// EncodeFromURL fetches a remote image and encodes its bytes.
	EncodeFromURL(ctx context.Context, url string) (string, error)
	// EncodeFromFile reads a local file and encodes its bytes.
	EncodeFromFile(path string) (string, error)
}

// QRCode is the registry's voting-QR issuance response.
type QRCode struct {
	Message           string    `json:"message"`
	QRCodeURL         string    `json:"qrCodeUrl"`
	ExpiresAt         time.Time `json:"expiresAt"`
	ExpirationMinutes int       `json:"expirationMinutes"`
}

// RegistryClient is the external voter registry of record.
type RegistryClient interface {
	// CheckRegistration reports whether the document number is already
	// registered. A false result with a nil error means "not registered".
	CheckRegistration(ctx context.Context, documentNumber string) (bool, error)

	// Register submits a new registration.
	Register(ctx context.Context, payload *domain.RegistrationPayload) error

	// GenerateVotingQR issues a time-limited voting QR for a registered
	// document number.
	GenerateVotingQR(ctx context.Context, documentNumber string, expirationMinutes int) (*QRCode, error)
}

// Translator is the external machine-translation endpoint. Implementations
// degrade to returning the source text on failure.
type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string) string
}

// AuditExporter dumps extracted identities as one-time audit artifacts.
// Failures must never block the primary flow.
type AuditExporter interface {
	Export(identity *domain.ExtractedIdentity) (path string, err error)
}
