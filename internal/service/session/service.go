package session

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Opirel/finalProj-dnd-backend/internal/model/session"
	"github.com/Opirel/finalProj-dnd-backend/internal/store"
)

// Replier produces one completion for a session transcript. The concrete
// implementation talks to the external model service.
type Replier interface {
	Reply(ctx context.Context, msgs []session.Message) (string, error)
}

// Service wraps the session store with the lifecycle preconditions and runs
// the AI turn on updates. A nil Replier disables AI turns entirely.
type Service struct {
	store store.Store
	ai    Replier
}

// NewService wires the lifecycle manager to its store and model.
func NewService(st store.Store, ai Replier) *Service {
	return &Service{store: st, ai: ai}
}

// Create persists a new session, rejecting duplicate identifiers before
// attempting the write so the caller gets a distinct already-exists signal.
func (s *Service) Create(ctx context.Context, sess session.Session) (session.Session, error) {
	exists, err := s.store.Exists(ctx, sess.SessionID)
	if err != nil {
		return session.Session{}, fmt.Errorf("check session existence: %w", err)
	}
	if exists {
		return session.Session{}, store.ErrSessionExists
	}

	return s.store.Create(ctx, sess)
}

// Get retrieves one session by identifier.
func (s *Service) Get(ctx context.Context, sessionID string) (session.Session, error) {
	return s.store.Get(ctx, sessionID)
}

// List returns every stored session.
func (s *Service) List(ctx context.Context) ([]session.Session, error) {
	return s.store.List(ctx)
}

// Delete removes a session by identifier.
func (s *Service) Delete(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

// Update replaces the session transcript and runs one AI turn. The returned
// session reflects the post-turn state: on a successful turn it carries the
// new bot message, otherwise the transcript exactly as submitted. A model
// failure never fails the enclosing update.
//
// The existence check and the later replace are two separate reads of store
// state; concurrent updates to the same sessionID can interleave and the
// last writer wins.
func (s *Service) Update(ctx context.Context, sessionID string, messages []session.Message) (session.Session, error) {
	if _, err := s.store.Get(ctx, sessionID); err != nil {
		return session.Session{}, err
	}

	updated, err := s.store.ReplaceMessages(ctx, sessionID, messages)
	if err != nil {
		return session.Session{}, err
	}

	return s.runTurn(ctx, updated), nil
}

// runTurn performs the best-effort AI turn: exactly one bot message is
// appended and persisted on success, and every failure is logged and
// absorbed.
func (s *Service) runTurn(ctx context.Context, sess session.Session) session.Session {
	if s.ai == nil {
		return sess
	}

	if _, ok := sess.LastMessage(); !ok {
		log.Printf("[session] skipping AI turn for session=%s: empty transcript", sess.SessionID)
		return sess
	}

	reply, err := s.ai.Reply(ctx, sess.Conversation)
	if err != nil {
		log.Printf("[session] AI turn failed for session=%s: %v", sess.SessionID, err)
		return sess
	}

	withReply := append(append([]session.Message{}, sess.Conversation...), session.Message{
		Sender: session.SenderBot,
		Time:   time.Now().UTC(),
		Text:   reply,
	})

	persisted, err := s.store.ReplaceMessages(ctx, sess.SessionID, withReply)
	if err != nil {
		log.Printf("[session] failed to persist AI reply for session=%s: %v", sess.SessionID, err)
		return sess
	}
	return persisted
}
