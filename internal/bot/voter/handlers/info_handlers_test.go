package handlers

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"myvote/internal/bot/voter"
	"myvote/internal/core/domain"
	"myvote/internal/core/ports"
)

func infoDeps(bot *MockBotClient, store *MockFlowStore) *voter.Deps {
	return &voter.Deps{
		Bot:        bot,
		Store:      store,
		Translator: passThroughTranslator{},
	}
}

func TestFAQCommand_ListsCategories(t *testing.T) {
	nopLogger := zerolog.Nop()
	bot := new(MockBotClient)
	h := NewFAQCommandHandler(infoDeps(bot, nil), &nopLogger)

	flow := domain.NewFlowSession(789, 1000)

	var sent ports.SendMessageParams
	bot.On("SendMessage", mock.Anything, mock.AnythingOfType("ports.SendMessageParams")).
		Run(func(args mock.Arguments) { sent = args.Get(1).(ports.SendMessageParams) }).
		Return(1, nil).Once()

	err := h.Handle(context.Background(), &ports.BotUpdate{ChatID: 1000, UserID: 789}, flow)
	require.NoError(t, err)

	require.NotNil(t, sent.ReplyMarkup)
	assert.True(t, sent.ReplyMarkup.IsInline)
	assert.Len(t, sent.ReplyMarkup.Buttons, 6)
	assert.Equal(t, "faq_0", sent.ReplyMarkup.Buttons[0][0].Data)
}

func TestFAQCallback_RendersCategory(t *testing.T) {
	nopLogger := zerolog.Nop()
	bot := new(MockBotClient)
	h := NewFAQCallbackHandler(infoDeps(bot, nil), &nopLogger)

	flow := domain.NewFlowSession(789, 1000)

	bot.On("AnswerCallbackQuery", mock.Anything, mock.AnythingOfType("ports.AnswerCallbackParams")).Return(nil)

	var sent ports.SendMessageParams
	bot.On("SendMessage", mock.Anything, mock.AnythingOfType("ports.SendMessageParams")).
		Run(func(args mock.Arguments) { sent = args.Get(1).(ports.SendMessageParams) }).
		Return(1, nil).Once()

	err := h.Handle(context.Background(), callbackUpdate("faq_3"), flow)
	require.NoError(t, err)

	assert.Contains(t, sent.Text, "NOTA")
	assert.Contains(t, sent.Text, "None of The Above")
}

func TestFAQCallback_UnknownCategoryIgnored(t *testing.T) {
	nopLogger := zerolog.Nop()
	bot := new(MockBotClient)
	h := NewFAQCallbackHandler(infoDeps(bot, nil), &nopLogger)

	bot.On("AnswerCallbackQuery", mock.Anything, mock.AnythingOfType("ports.AnswerCallbackParams")).Return(nil)

	err := h.Handle(context.Background(), callbackUpdate("faq_99"), domain.NewFlowSession(789, 1000))
	require.NoError(t, err)
	bot.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything)
}

func TestElectionsCommand_RendersCalendar(t *testing.T) {
	nopLogger := zerolog.Nop()
	bot := new(MockBotClient)
	h := NewElectionsHandler(infoDeps(bot, nil), &nopLogger)

	flow := domain.NewFlowSession(789, 1000)

	var sent ports.SendMessageParams
	bot.On("SendMessage", mock.Anything, mock.AnythingOfType("ports.SendMessageParams")).
		Run(func(args mock.Arguments) { sent = args.Get(1).(ports.SendMessageParams) }).
		Return(1, nil).Once()

	err := h.Handle(context.Background(), &ports.BotUpdate{ChatID: 1000, UserID: 789}, flow)
	require.NoError(t, err)

	assert.Contains(t, sent.Text, "General Elections 2024")
	assert.Contains(t, sent.Text, "Panchayat Elections")
	assert.Contains(t, sent.Text, "Registration Phase")
}

func TestResultsCommand_ListsStates(t *testing.T) {
	nopLogger := zerolog.Nop()
	bot := new(MockBotClient)
	h := NewResultsCommandHandler(infoDeps(bot, nil), &nopLogger)

	flow := domain.NewFlowSession(789, 1000)

	var sent ports.SendMessageParams
	bot.On("SendMessage", mock.Anything, mock.AnythingOfType("ports.SendMessageParams")).
		Run(func(args mock.Arguments) { sent = args.Get(1).(ports.SendMessageParams) }).
		Return(1, nil).Once()

	err := h.Handle(context.Background(), &ports.BotUpdate{ChatID: 1000, UserID: 789}, flow)
	require.NoError(t, err)

	require.NotNil(t, sent.ReplyMarkup)
	total := 0
	for _, row := range sent.ReplyMarkup.Buttons {
		total += len(row)
	}
	assert.Equal(t, 28, total)
}

func TestResultsCallback_RendersStateBreakdown(t *testing.T) {
	nopLogger := zerolog.Nop()
	bot := new(MockBotClient)
	h := NewResultsCallbackHandler(infoDeps(bot, nil), &nopLogger)

	flow := domain.NewFlowSession(789, 1000)

	bot.On("AnswerCallbackQuery", mock.Anything, mock.AnythingOfType("ports.AnswerCallbackParams")).Return(nil)

	var sent ports.SendMessageParams
	bot.On("SendMessage", mock.Anything, mock.AnythingOfType("ports.SendMessageParams")).
		Run(func(args mock.Arguments) { sent = args.Get(1).(ports.SendMessageParams) }).
		Return(1, nil).Once()

	err := h.Handle(context.Background(), callbackUpdate("results_kerala"), flow)
	require.NoError(t, err)

	assert.Contains(t, sent.Text, "Kerala")
	assert.Contains(t, sent.Text, "LDF: 99")
	assert.Contains(t, sent.Text, "Pinarayi Vijayan")
}

func TestLanguageCallback_SetsLanguage(t *testing.T) {
	nopLogger := zerolog.Nop()
	bot := new(MockBotClient)
	store := new(MockFlowStore)
	h := NewLanguageCallbackHandler(infoDeps(bot, store), &nopLogger)

	flow := domain.NewFlowSession(789, 1000)

	store.On("Update", mock.Anything, flow).Return(nil).Once()
	bot.On("AnswerCallbackQuery", mock.Anything, mock.MatchedBy(func(params ports.AnswerCallbackParams) bool {
		return strings.Contains(params.Text, "हिंदी")
	})).Return(nil).Once()

	err := h.Handle(context.Background(), callbackUpdate("lang_hi"), flow)
	require.NoError(t, err)

	assert.Equal(t, "hi", flow.Language)
	store.AssertExpectations(t)
}

func TestLanguageCallback_RejectsUnknownCode(t *testing.T) {
	nopLogger := zerolog.Nop()
	bot := new(MockBotClient)
	store := new(MockFlowStore)
	h := NewLanguageCallbackHandler(infoDeps(bot, store), &nopLogger)

	flow := domain.NewFlowSession(789, 1000)

	bot.On("AnswerCallbackQuery", mock.Anything, mock.AnythingOfType("ports.AnswerCallbackParams")).Return(nil).Once()

	err := h.Handle(context.Background(), callbackUpdate("lang_xx"), flow)
	require.NoError(t, err)

	assert.Equal(t, "en", flow.Language)
	store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSignOutHandler_ClearsSession(t *testing.T) {
	nopLogger := zerolog.Nop()
	bot := new(MockBotClient)
	store := new(MockFlowStore)
	auth := new(MockAuthGateway)
	deps := &voter.Deps{Bot: bot, Store: store, Auth: auth}
	h := NewSignOutHandler(deps, &nopLogger)

	flow := domain.NewFlowSession(789, 1000)
	flow.Session = &domain.Session{AccessToken: "tok", Phone: "+919876543210"}
	flow.State = domain.StateIdle
	flow.Extracted = &domain.ExtractedIdentity{Name: "Asha Rao"}

	auth.On("SignOut", mock.Anything, "tok").Return(nil).Once()
	store.On("SetSession", mock.Anything, int64(789), (*domain.Session)(nil)).Return(nil).Once()
	store.On("Update", mock.Anything, flow).Return(nil).Once()
	bot.On("SendMessage", mock.Anything, mock.AnythingOfType("ports.SendMessageParams")).Return(1, nil).Once()

	err := h.Handle(context.Background(), &ports.BotUpdate{ChatID: 1000, UserID: 789}, flow)
	require.NoError(t, err)

	assert.Equal(t, domain.StateNone, flow.State)
	assert.Nil(t, flow.Extracted)
	auth.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestStartHandler_PromptsForPhoneWhenSignedOut(t *testing.T) {
	nopLogger := zerolog.Nop()
	bot := new(MockBotClient)
	store := new(MockFlowStore)
	h := NewStartHandler(&voter.Deps{Bot: bot, Store: store}, &nopLogger)

	flow := domain.NewFlowSession(789, 1000)

	store.On("Update", mock.Anything, flow).Return(nil).Once()

	var sent ports.SendMessageParams
	bot.On("SendMessage", mock.Anything, mock.AnythingOfType("ports.SendMessageParams")).
		Run(func(args mock.Arguments) { sent = args.Get(1).(ports.SendMessageParams) }).
		Return(1, nil).Once()

	err := h.Handle(context.Background(), &ports.BotUpdate{ChatID: 1000, UserID: 789}, flow)
	require.NoError(t, err)

	assert.Equal(t, domain.StateAwaitingPhone, flow.State)
	require.NotNil(t, sent.ReplyMarkup)
	assert.False(t, sent.ReplyMarkup.IsInline)
	assert.True(t, sent.ReplyMarkup.Buttons[0][0].RequestContact)
}

func TestStartHandler_DashboardWhenSignedIn(t *testing.T) {
	nopLogger := zerolog.Nop()
	bot := new(MockBotClient)
	store := new(MockFlowStore)
	h := NewStartHandler(&voter.Deps{Bot: bot, Store: store}, &nopLogger)

	flow := domain.NewFlowSession(789, 1000)
	flow.Session = &domain.Session{AccessToken: "tok", Phone: "+919876543210"}
	flow.State = domain.StateIdle

	var sent ports.SendMessageParams
	bot.On("SendMessage", mock.Anything, mock.AnythingOfType("ports.SendMessageParams")).
		Run(func(args mock.Arguments) { sent = args.Get(1).(ports.SendMessageParams) }).
		Return(1, nil).Once()

	err := h.Handle(context.Background(), &ports.BotUpdate{ChatID: 1000, UserID: 789}, flow)
	require.NoError(t, err)

	assert.Contains(t, sent.Text, "/verify")
	assert.Contains(t, sent.Text, "/votercard")
	store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
