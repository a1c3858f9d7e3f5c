package verify

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"myvote/internal/core/domain"
	"myvote/internal/core/ports"
)

// MockRegistry is a testify mock over the RegistryClient port.
type MockRegistry struct {
	mock.Mock
}

var _ ports.RegistryClient = (*MockRegistry)(nil)

func (m *MockRegistry) CheckRegistration(ctx context.Context, documentNumber string) (bool, error) {
	args := m.Called(ctx, documentNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockRegistry) Register(ctx context.Context, payload *domain.RegistrationPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *MockRegistry) GenerateVotingQR(ctx context.Context, documentNumber string, expirationMinutes int) (*ports.QRCode, error) {
	args := m.Called(ctx, documentNumber, expirationMinutes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.QRCode), args.Error(1)
}

func newTestService(registry ports.RegistryClient) *Service {
	nop := zerolog.Nop()
	return NewService(registry, &nop)
}

func verifiedFlow() *domain.FlowSession {
	flow := domain.NewFlowSession(1001, 1001)
	flow.Session = &domain.Session{AccessToken: "tok", Phone: "+919876543210"}
	flow.State = domain.StateConfirming
	flow.Extracted = &domain.ExtractedIdentity{
		Name:           "A",
		DocumentNumber: "123456789012",
		DateOfBirth:    "15/08/1990",
		Gender:         "Male",
		Phone:          "9876543210",
	}
	flow.PhoneVerified = true
	flow.Draft = domain.RegistrationDraft{Email: "a@example.com", City: "Pune", State: "Maharashtra"}
	return flow
}

func TestCompleteExtraction_MatchOpensForm(t *testing.T) {
	svc := newTestService(new(MockRegistry))
	flow := domain.NewFlowSession(1, 1)
	flow.Session = &domain.Session{AccessToken: "tok", Phone: "+919876543210"}
	flow.State = domain.StateExtracting

	matched := svc.CompleteExtraction(flow, &domain.ExtractedIdentity{Phone: "9876543210"})

	assert.True(t, matched)
	assert.True(t, flow.PhoneVerified)
	assert.Equal(t, domain.StateAwaitingEmail, flow.State)
}

func TestCompleteExtraction_MismatchParksUnverified(t *testing.T) {
	svc := newTestService(new(MockRegistry))
	flow := domain.NewFlowSession(1, 1)
	flow.Session = &domain.Session{AccessToken: "tok", Phone: "+911234567890"}
	flow.State = domain.StateExtracting

	matched := svc.CompleteExtraction(flow, &domain.ExtractedIdentity{Phone: "000"})

	assert.False(t, matched)
	assert.False(t, flow.PhoneVerified)
	assert.Equal(t, domain.StateUnverified, flow.State)
}

func TestCompleteExtraction_MissingPhoneNeverMatches(t *testing.T) {
	svc := newTestService(new(MockRegistry))
	flow := domain.NewFlowSession(1, 1)
	flow.Session = &domain.Session{AccessToken: "tok", Phone: "+919876543210"}
	flow.State = domain.StateExtracting

	matched := svc.CompleteExtraction(flow, &domain.ExtractedIdentity{Phone: domain.NotVisible})

	assert.False(t, matched)
	assert.Equal(t, domain.StateUnverified, flow.State)
}

func TestSelectPhoto_ResetsVerificationState(t *testing.T) {
	svc := newTestService(new(MockRegistry))
	flow := verifiedFlow()

	require.NoError(t, svc.SelectPhoto(flow, "file-2"))

	assert.Equal(t, domain.StateDocumentSelected, flow.State)
	assert.Equal(t, "file-2", flow.PhotoFileID)
	assert.Nil(t, flow.Extracted)
	assert.False(t, flow.PhoneVerified)
	assert.Equal(t, domain.RegistrationDraft{}, flow.Draft)
}

func TestSelectPhoto_RejectedWhileInFlight(t *testing.T) {
	svc := newTestService(new(MockRegistry))
	flow := domain.NewFlowSession(1, 1)
	flow.State = domain.StateExtracting

	assert.ErrorIs(t, svc.SelectPhoto(flow, "file-2"), ErrBusy)
}

func TestRegister_GateRejectsUnverifiedWithoutNetwork(t *testing.T) {
	registry := new(MockRegistry)
	svc := newTestService(registry)
	flow := verifiedFlow()
	flow.PhoneVerified = false

	_, err := svc.Register(context.Background(), flow)

	assert.ErrorIs(t, err, ErrNotVerified)
	registry.AssertNotCalled(t, "CheckRegistration", mock.Anything, mock.Anything)
	registry.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestRegister_ValidationBlocksSubmission(t *testing.T) {
	registry := new(MockRegistry)
	svc := newTestService(registry)
	flow := verifiedFlow()
	flow.Draft.Email = "no-at-sign"

	_, err := svc.Register(context.Background(), flow)

	var fieldErr *domain.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "email", fieldErr.Field)
	registry.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestRegister_DuplicateShortCircuits(t *testing.T) {
	registry := new(MockRegistry)
	registry.On("CheckRegistration", mock.Anything, "123456789012").Return(true, nil).Once()
	svc := newTestService(registry)
	flow := verifiedFlow()

	already, err := svc.Register(context.Background(), flow)

	require.NoError(t, err)
	assert.True(t, already)
	assert.Equal(t, domain.StateAlreadyRegistered, flow.State)
	registry.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	registry.AssertExpectations(t)
}

func TestRegister_PreCheckFailureProceeds(t *testing.T) {
	registry := new(MockRegistry)
	registry.On("CheckRegistration", mock.Anything, "123456789012").
		Return(false, errors.New("registry unavailable")).Once()
	registry.On("Register", mock.Anything, mock.Anything).Return(nil).Once()
	svc := newTestService(registry)
	flow := verifiedFlow()

	already, err := svc.Register(context.Background(), flow)

	require.NoError(t, err)
	assert.False(t, already)
	assert.Equal(t, domain.StateRegistered, flow.State)
	registry.AssertExpectations(t)
}

func TestRegister_FailureReturnsToConfirming(t *testing.T) {
	registry := new(MockRegistry)
	registry.On("CheckRegistration", mock.Anything, "123456789012").Return(false, nil).Once()
	registry.On("Register", mock.Anything, mock.Anything).Return(errors.New("registration failed: status 500")).Once()
	svc := newTestService(registry)
	flow := verifiedFlow()

	_, err := svc.Register(context.Background(), flow)

	require.Error(t, err)
	assert.Equal(t, domain.StateConfirming, flow.State)
}

func TestRegister_PayloadCarriesConvertedDOB(t *testing.T) {
	registry := new(MockRegistry)
	registry.On("CheckRegistration", mock.Anything, "123456789012").Return(false, nil).Once()
	registry.On("Register", mock.Anything, mock.MatchedBy(func(p *domain.RegistrationPayload) bool {
		return p.DOB == "1990-08-15" &&
			p.Name == "A" &&
			p.DocumentNumber == "123456789012" &&
			p.PhoneNumber == "9876543210" &&
			p.Email == "a@example.com" &&
			p.City == "Pune" &&
			p.State == "Maharashtra"
	})).Return(nil).Once()
	svc := newTestService(registry)
	flow := verifiedFlow()

	_, err := svc.Register(context.Background(), flow)

	require.NoError(t, err)
	assert.Equal(t, domain.StateRegistered, flow.State)
	registry.AssertExpectations(t)
}

// The full matched path of the pipeline: photo, extraction, reactive
// verification, form fill, submission.
func TestFlow_EndToEnd(t *testing.T) {
	registry := new(MockRegistry)
	registry.On("CheckRegistration", mock.Anything, "123456789012").Return(false, nil).Once()
	registry.On("Register", mock.Anything, mock.Anything).Return(nil).Once()
	svc := newTestService(registry)

	flow := domain.NewFlowSession(42, 42)
	flow.Session = &domain.Session{AccessToken: "tok", Phone: "+919876543210"}
	flow.State = domain.StateIdle

	require.NoError(t, svc.SelectPhoto(flow, "photo-1"))
	require.NoError(t, svc.BeginExtraction(flow))
	assert.ErrorIs(t, svc.BeginExtraction(flow), ErrBusy)

	matched := svc.CompleteExtraction(flow, &domain.ExtractedIdentity{
		Name:           "A",
		DocumentNumber: "123456789012",
		DateOfBirth:    "15/08/1990",
		Phone:          "9876543210",
	})
	require.True(t, matched)

	flow.Draft = domain.RegistrationDraft{Email: "a@b.in", City: "Pune", State: "Maharashtra"}
	flow.State = domain.StateConfirming

	already, err := svc.Register(context.Background(), flow)
	require.NoError(t, err)
	assert.False(t, already)
	assert.Equal(t, domain.StateRegistered, flow.State)
	registry.AssertExpectations(t)
}
