package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"myvote/internal/core/domain"
	"myvote/internal/core/ports"
)

// MemoryStore is the volatile per-user flow store. It doubles as the
// process-wide observable session holder: auth-state changes fan out to
// subscribed listeners, each on its own goroutine so one slow listener never
// blocks the others. Nothing here survives a restart.
type MemoryStore struct {
	log zerolog.Logger

	mu    sync.RWMutex
	flows map[int64]*domain.FlowSession

	subMu     sync.RWMutex
	listeners map[int]ports.SessionListener
	nextSubID int
}

var _ ports.FlowStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore(baseLogger *zerolog.Logger) *MemoryStore {
	return &MemoryStore{
		log:       baseLogger.With().Str("component", "session_store").Logger(),
		flows:     make(map[int64]*domain.FlowSession),
		listeners: make(map[int]ports.SessionListener),
	}
}

// Get returns the flow session for a Telegram user, or nil when unseen.
func (s *MemoryStore) Get(ctx context.Context, telegramID int64) (*domain.FlowSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flows[telegramID], nil
}

// GetOrCreate returns the existing flow session or creates a fresh one.
func (s *MemoryStore) GetOrCreate(ctx context.Context, telegramID, chatID int64) (*domain.FlowSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if flow, ok := s.flows[telegramID]; ok {
		return flow, nil
	}
	flow := domain.NewFlowSession(telegramID, chatID)
	s.flows[telegramID] = flow
	s.log.Info().Int64("user_id", telegramID).Str("flow_id", flow.ID.String()).Msg("New flow session created")
	return flow, nil
}

// Update persists the mutated flow session.
func (s *MemoryStore) Update(ctx context.Context, flow *domain.FlowSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	flow.UpdatedAt = time.Now()
	s.flows[flow.TelegramID] = flow
	return nil
}

// SetSession attaches or clears the provider session and notifies
// subscribers of the auth-state change.
func (s *MemoryStore) SetSession(ctx context.Context, telegramID int64, sess *domain.Session) error {
	s.mu.Lock()
	flow, ok := s.flows[telegramID]
	if ok {
		flow.Session = sess
		flow.UpdatedAt = time.Now()
	}
	s.mu.Unlock()

	s.notify(telegramID, sess)
	return nil
}

// Subscribe registers an auth-state listener and returns its id.
func (s *MemoryStore) Subscribe(listener ports.SessionListener) int {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.listeners[id] = listener
	s.log.Info().Int("subscriber", id).Msg("Auth-state listener subscribed")
	return id
}

// Unsubscribe removes a listener.
func (s *MemoryStore) Unsubscribe(id int) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	delete(s.listeners, id)
}

func (s *MemoryStore) notify(telegramID int64, sess *domain.Session) {
	s.subMu.RLock()
	defer s.subMu.RUnlock()
	for _, listener := range s.listeners {
		go listener(telegramID, sess)
	}
}
