package store

import (
	"context"
	"sync"

	"github.com/Opirel/finalProj-dnd-backend/internal/model/session"
)

// MemoryStore keeps sessions in process memory. It backs local development
// runs and tests that do not have a MongoDB instance available.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]session.Session
}

// NewMemoryStore bootstraps an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]session.Session)}
}

func (m *MemoryStore) Exists(_ context.Context, sessionID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.sessions[sessionID]
	return ok, nil
}

func (m *MemoryStore) Create(_ context.Context, s session.Session) (session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[s.SessionID]; ok {
		return session.Session{}, ErrSessionExists
	}

	s.Conversation = stampMessages(s.Conversation)
	m.sessions[s.SessionID] = s
	return cloneSession(s), nil
}

func (m *MemoryStore) Get(_ context.Context, sessionID string) (session.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return session.Session{}, ErrSessionNotFound
	}
	return cloneSession(s), nil
}

func (m *MemoryStore) List(_ context.Context) ([]session.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sessions := make([]session.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, cloneSession(s))
	}
	return sessions, nil
}

func (m *MemoryStore) ReplaceMessages(_ context.Context, sessionID string, messages []session.Message) (session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return session.Session{}, ErrSessionNotFound
	}

	s.Conversation = stampMessages(messages)
	m.sessions[sessionID] = s
	return cloneSession(s), nil
}

func (m *MemoryStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, sessionID)
	return nil
}

// cloneSession copies the conversation slice so callers cannot mutate
// stored state.
func cloneSession(s session.Session) session.Session {
	copied := make([]session.Message, len(s.Conversation))
	copy(copied, s.Conversation)
	s.Conversation = copied
	return s
}
