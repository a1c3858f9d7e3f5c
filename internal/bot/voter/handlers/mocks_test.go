package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"myvote/internal/core/domain"
	"myvote/internal/core/ports"
)

// MockBotClient is a mock for the BotClientPort.
type MockBotClient struct {
	mock.Mock
}

var _ ports.BotClientPort = (*MockBotClient)(nil)

func (m *MockBotClient) SendMessage(ctx context.Context, params ports.SendMessageParams) (int, error) {
	args := m.Called(ctx, params)
	return args.Int(0), args.Error(1)
}
func (m *MockBotClient) SendPhoto(ctx context.Context, params ports.SendPhotoParams) (int, error) {
	args := m.Called(ctx, params)
	return args.Int(0), args.Error(1)
}
func (m *MockBotClient) EditMessageText(ctx context.Context, params ports.EditMessageParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}
func (m *MockBotClient) AnswerCallbackQuery(ctx context.Context, params ports.AnswerCallbackParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}
func (m *MockBotClient) SetMenuCommands(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockBotClient) FileURL(ctx context.Context, fileID string) (string, error) {
	args := m.Called(ctx, fileID)
	return args.String(0), args.Error(1)
}

// MockFlowStore is a mock for the FlowStore port.
type MockFlowStore struct {
	mock.Mock
}

var _ ports.FlowStore = (*MockFlowStore)(nil)

func (m *MockFlowStore) Get(ctx context.Context, telegramID int64) (*domain.FlowSession, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlowSession), args.Error(1)
}
func (m *MockFlowStore) GetOrCreate(ctx context.Context, telegramID, chatID int64) (*domain.FlowSession, error) {
	args := m.Called(ctx, telegramID, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlowSession), args.Error(1)
}
func (m *MockFlowStore) Update(ctx context.Context, flow *domain.FlowSession) error {
	args := m.Called(ctx, flow)
	return args.Error(0)
}
func (m *MockFlowStore) SetSession(ctx context.Context, telegramID int64, sess *domain.Session) error {
	args := m.Called(ctx, telegramID, sess)
	return args.Error(0)
}
func (m *MockFlowStore) Subscribe(listener ports.SessionListener) int {
	args := m.Called(listener)
	return args.Int(0)
}
func (m *MockFlowStore) Unsubscribe(id int) {
	m.Called(id)
}

// MockAuthGateway is a mock for the AuthGateway port.
type MockAuthGateway struct {
	mock.Mock
}

var _ ports.AuthGateway = (*MockAuthGateway)(nil)

func (m *MockAuthGateway) SignInWithOTP(ctx context.Context, phone string) error {
	args := m.Called(ctx, phone)
	return args.Error(0)
}
func (m *MockAuthGateway) VerifyOTP(ctx context.Context, phone, token string) (*domain.Session, error) {
	args := m.Called(ctx, phone, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}
func (m *MockAuthGateway) SignOut(ctx context.Context, accessToken string) error {
	args := m.Called(ctx, accessToken)
	return args.Error(0)
}
func (m *MockAuthGateway) UpdateUserMetadata(ctx context.Context, accessToken string, metadata map[string]string) error {
	args := m.Called(ctx, accessToken, metadata)
	return args.Error(0)
}

// MockExtractor is a mock for the DocumentExtractor port.
type MockExtractor struct {
	mock.Mock
}

var _ ports.DocumentExtractor = (*MockExtractor)(nil)

func (m *MockExtractor) Extract(ctx context.Context, base64Image string) (*domain.ExtractedIdentity, error) {
	args := m.Called(ctx, base64Image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractedIdentity), args.Error(1)
}

// MockEncoder is a mock for the ImageEncoder port.
type MockEncoder struct {
	mock.Mock
}

var _ ports.ImageEncoder = (*MockEncoder)(nil)

func (m *MockEncoder) EncodeFromURL(ctx context.Context, url string) (string, error) {
	args := m.Called(ctx, url)
	return args.String(0), args.Error(1)
}
func (m *MockEncoder) EncodeFromFile(path string) (string, error) {
	args := m.Called(path)
	return args.String(0), args.Error(1)
}

// MockRegistry is a mock for the RegistryClient port.
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

// MockAudit is a mock for the AuditExporter port.
type MockAudit struct {
	mock.Mock
}

var _ ports.AuditExporter = (*MockAudit)(nil)

func (m *MockAudit) Export(identity *domain.ExtractedIdentity) (string, error) {
	args := m.Called(identity)
	return args.String(0), args.Error(1)
}

// passThroughTranslator keeps info-screen tests independent of the
// translation endpoint.
type passThroughTranslator struct{}

func (passThroughTranslator) Translate(ctx context.Context, text, targetLanguage string) string {
	return text
}

// taggingTranslator marks translated strings with the target language so
// tests can tell which messages went through translation.
type taggingTranslator struct{}

func (taggingTranslator) Translate(ctx context.Context, text, targetLanguage string) string {
	return "[" + targetLanguage + "] " + text
}
