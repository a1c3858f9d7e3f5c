package verify

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"myvote/internal/core/domain"
	"myvote/internal/core/ports"
)

// ErrNotVerified rejects a registration attempted without a successful phone
// cross-verification for the current extracted identity. No network call is
// issued when this is returned.
var ErrNotVerified = errors.New("phone verification has not succeeded for this identity")

// ErrBusy reports that a remote call for this flow is already in flight. The
// triggering control stays soft-disabled until it completes.
var ErrBusy = errors.New("a request is already in progress")

// Service owns the verification state machine's transition set. Every entry
// point that restarts the pipeline goes through Reset, keeping the
// transitions centralized and testable.
type Service struct {
	log      zerolog.Logger
	registry ports.RegistryClient
}

// NewService creates the flow service.
func NewService(registry ports.RegistryClient, baseLogger *zerolog.Logger) *Service {
	return &Service{
		log:      baseLogger.With().Str("component", "verify_flow").Logger(),
		registry: registry,
	}
}

// Reset discards all extracted, verification and form state and returns the
// flow to the start of the verification pipeline.
func (s *Service) Reset(flow *domain.FlowSession) {
	flow.PhotoFileID = ""
	flow.Extracted = nil
	flow.PhoneVerified = false
	flow.Draft = domain.RegistrationDraft{}
	flow.State = domain.StateAwaitingDocument
	flow.UpdatedAt = time.Now()
}

// SelectPhoto records a newly chosen document photo. Choosing a new image
// from any non-terminal state restarts the pipeline from extraction.
func (s *Service) SelectPhoto(flow *domain.FlowSession, fileID string) error {
	if flow.State == domain.StateExtracting || flow.State == domain.StateRegistering {
		return ErrBusy
	}
	s.Reset(flow)
	flow.PhotoFileID = fileID
	flow.State = domain.StateDocumentSelected
	return nil
}

// BeginExtraction marks the extraction request as in flight.
func (s *Service) BeginExtraction(flow *domain.FlowSession) error {
	switch flow.State {
	case domain.StateDocumentSelected:
		flow.State = domain.StateExtracting
		flow.UpdatedAt = time.Now()
		return nil
	case domain.StateExtracting:
		return ErrBusy
	default:
		return errors.New("no document selected")
	}
}

// FailExtraction returns control to the prior interactive state after a
// failed extraction call.
func (s *Service) FailExtraction(flow *domain.FlowSession) {
	flow.State = domain.StateDocumentSelected
	flow.UpdatedAt = time.Now()
}

// CompleteExtraction stores a fresh extraction result (replacing any prior
// one) and runs the reactive cross-verification step against the session
// phone. It reports whether the phones matched; on a match the registration
// form opens, otherwise the flow parks in the unverified state with an
// explicit retry path.
func (s *Service) CompleteExtraction(flow *domain.FlowSession, identity *domain.ExtractedIdentity) bool {
	flow.Extracted = identity
	flow.UpdatedAt = time.Now()

	sessionPhone := ""
	if flow.Session != nil {
		sessionPhone = flow.Session.Phone
	}
	if sessionPhone != "" && identity.HasPhone() && MatchPhones(sessionPhone, identity.Phone) {
		flow.PhoneVerified = true
		flow.State = domain.StateAwaitingEmail
		return true
	}

	flow.PhoneVerified = false
	flow.State = domain.StateUnverified
	return false
}

// BuildPayload combines the extracted identity with the user-entered draft
// into the registry wire record.
func (s *Service) BuildPayload(flow *domain.FlowSession) *domain.RegistrationPayload {
	id := flow.Extracted
	return &domain.RegistrationPayload{
		Name:           id.Name,
		DocumentNumber: id.DocumentNumber,
		DOB:            FormatDOB(id.DateOfBirth),
		PhoneNumber:    id.Phone,
		Email:          flow.Draft.Email,
		City:           flow.Draft.City,
		State:          flow.Draft.State,
		Gender:         id.Gender,
	}
}

// Register runs the submission sequence: gate, validation, duplicate
// pre-check, then the registration call. It returns already=true when the
// registry says the document number is registered, short-circuiting to the
// already-registered terminal state without a second registration call.
func (s *Service) Register(ctx context.Context, flow *domain.FlowSession) (already bool, err error) {
	if flow.State == domain.StateRegistering {
		return false, ErrBusy
	}
	if !flow.PhoneVerified || flow.Extracted == nil {
		return false, ErrNotVerified
	}
	if err := flow.Draft.Validate(); err != nil {
		return false, err
	}

	log := s.log.With().Int64("user_id", flow.TelegramID).Logger()

	// Best-effort pre-check: a failure here means "proceed as if
	// unregistered", the registry's POST is authoritative.
	registered, err := s.registry.CheckRegistration(ctx, flow.Extracted.DocumentNumber)
	if err != nil {
		log.Warn().Err(err).Msg("Registration pre-check failed, proceeding as unregistered")
	} else if registered {
		log.Info().Msg("Document number already registered, skipping submission")
		flow.State = domain.StateAlreadyRegistered
		flow.UpdatedAt = time.Now()
		return true, nil
	}

	flow.State = domain.StateRegistering
	flow.UpdatedAt = time.Now()

	if err := s.registry.Register(ctx, s.BuildPayload(flow)); err != nil {
		// Back to the last interactive state; retry is user-initiated.
		flow.State = domain.StateConfirming
		flow.UpdatedAt = time.Now()
		return false, err
	}

	flow.State = domain.StateRegistered
	flow.UpdatedAt = time.Now()
	return false, nil
}
