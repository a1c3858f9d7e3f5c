package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is the authenticated state issued by the external auth provider.
// This system reads it and patches its metadata; lifecycle belongs to the
// provider.
type Session struct {
	AccessToken string
	UserID      string
	Phone       string
	Metadata    map[string]string
	LastSignIn  time.Time
}

// DocumentNumber returns the document number stored on the profile after a
// completed registration, or "" when none has been attached.
func (s *Session) DocumentNumber() string {
	if s == nil || s.Metadata == nil {
		return ""
	}
	return s.Metadata["aadhar_number"]
}

// FlowState is the per-user position in the conversational state machine.
type FlowState string

const (
	// Auth states.
	StateNone          FlowState = "none"
	StateAwaitingPhone FlowState = "awaiting_phone"
	StateAwaitingOTP   FlowState = "awaiting_otp"

	// Authenticated, no verification in progress.
	StateIdle FlowState = "idle"

	// Verification pipeline states.
	StateAwaitingDocument FlowState = "awaiting_document"
	StateDocumentSelected FlowState = "document_selected"
	StateExtracting       FlowState = "extracting"
	StateUnverified       FlowState = "extracted_unverified"
	StateAwaitingEmail    FlowState = "awaiting_email"
	StateAwaitingCity     FlowState = "awaiting_city"
	StateAwaitingState    FlowState = "awaiting_state"
	StateConfirming       FlowState = "confirming"
	StateRegistering      FlowState = "registering"

	// Terminal verification states.
	StateRegistered        FlowState = "registered"
	StateAlreadyRegistered FlowState = "already_registered"
)

// InVerification reports whether the state belongs to the verification
// pipeline (a new photo from any of these resets the pipeline).
func (s FlowState) InVerification() bool {
	switch s {
	case StateAwaitingDocument, StateDocumentSelected, StateExtracting,
		StateUnverified, StateAwaitingEmail, StateAwaitingCity,
		StateAwaitingState, StateConfirming, StateRegistering:
		return true
	}
	return false
}

// Terminal reports whether the verification flow has completed.
func (s FlowState) Terminal() bool {
	return s == StateRegistered || s == StateAlreadyRegistered
}

// FlowSession is the volatile per-user record backing the state machine.
// It lives only in memory; nothing here survives a restart except what the
// registry and the auth provider hold.
type FlowSession struct {
	ID         uuid.UUID
	TelegramID int64
	ChatID     int64
	State      FlowState

	// Auth scratch.
	PendingPhone string
	Session      *Session

	// Verification scratch, discarded on Reset.
	PhotoFileID   string
	Extracted     *ExtractedIdentity
	PhoneVerified bool
	Draft         RegistrationDraft

	// Presentation preference.
	Language string

	UpdatedAt time.Time
}

// NewFlowSession creates the volatile record for a first-seen Telegram user.
func NewFlowSession(telegramID, chatID int64) *FlowSession {
	return &FlowSession{
		ID:         uuid.New(),
		TelegramID: telegramID,
		ChatID:     chatID,
		State:      StateNone,
		Language:   "en",
		UpdatedAt:  time.Now(),
	}
}

// Authenticated reports whether the user holds a live provider session.
func (f *FlowSession) Authenticated() bool {
	return f.Session != nil && f.Session.AccessToken != ""
}
