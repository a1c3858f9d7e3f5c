package voter

import (
	"github.com/rs/zerolog"

	"myvote/internal/core/ports"
	"myvote/internal/core/verify"
	"myvote/internal/shared/config"
	"myvote/internal/shared/metrics"
)

// Deps bundles everything a handler may need. Handlers pick the fields they
// use; main.go fills the whole struct once.
type Deps struct {
	Cfg        *config.Config
	Store      ports.FlowStore
	Flow       *verify.Service
	Auth       ports.AuthGateway
	Extractor  ports.DocumentExtractor
	Encoder    ports.ImageEncoder
	Registry   ports.RegistryClient
	Translator ports.Translator
	Audit      ports.AuditExporter
	Metrics    *metrics.Metrics
	Bot        ports.BotClientPort
}

// --- Define types for handler "constructors" ---
// This allows us to pass dependencies from main.go

type CommandHandlerConstructor func(deps *Deps, baseLogger *zerolog.Logger) ports.CommandHandler

type CallbackHandlerConstructor func(deps *Deps, baseLogger *zerolog.Logger) ports.CallbackHandler

type MessageHandlerConstructor func(deps *Deps, baseLogger *zerolog.Logger) ports.MessageHandler

// --- Create the global registries ---
var (
	commandRegistry  []CommandHandlerConstructor
	callbackRegistry []CallbackHandlerConstructor
	messageHandler   MessageHandlerConstructor
)

// RegisterCommand is called by handlers in their init() function.
func RegisterCommand(constructor CommandHandlerConstructor) {
	commandRegistry = append(commandRegistry, constructor)
}

// RegisterCallback is called by callback handlers in their init().
func RegisterCallback(constructor CallbackHandlerConstructor) {
	callbackRegistry = append(callbackRegistry, constructor)
}

// RegisterMessage is called by the single message handler in its init().
func RegisterMessage(constructor MessageHandlerConstructor) {
	// We only allow one global message handler
	messageHandler = constructor
}

// RegisterAllHandlers is the single function called by main.go.
// It builds all registered handlers and passes them to the router.
func RegisterAllHandlers(deps *Deps, router *Router, baseLogger *zerolog.Logger) {
	log := baseLogger.With().Str("component", "voter_registry").Logger()

	for _, constructor := range commandRegistry {
		router.RegisterCommandHandler(constructor(deps, baseLogger))
	}

	for _, constructor := range callbackRegistry {
		router.RegisterCallbackHandler(constructor(deps, baseLogger))
	}

	if messageHandler != nil {
		router.SetMessageHandler(messageHandler(deps, baseLogger))
		log.Info().Msg("Registered main message handler")
	}
}
