package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Opirel/finalProj-dnd-backend/internal/model/session"
)

var (
	ErrSessionExists   = errors.New("session already exists")
	ErrSessionNotFound = errors.New("session not found")
)

// Store persists session documents keyed by their external sessionID.
type Store interface {
	Exists(ctx context.Context, sessionID string) (bool, error)
	Create(ctx context.Context, s session.Session) (session.Session, error)
	Get(ctx context.Context, sessionID string) (session.Session, error)
	List(ctx context.Context) ([]session.Session, error)
	// ReplaceMessages swaps the full conversation in place and returns the
	// session as persisted.
	ReplaceMessages(ctx context.Context, sessionID string, messages []session.Message) (session.Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// stampMessages assigns IDs and default timestamps to incoming messages
// without mutating the caller's slice.
func stampMessages(msgs []session.Message) []session.Message {
	stamped := make([]session.Message, len(msgs))
	copy(stamped, msgs)
	for i := range stamped {
		if stamped[i].ID == "" {
			stamped[i].ID = uuid.NewString()
		}
		if stamped[i].Time.IsZero() {
			stamped[i].Time = time.Now().UTC()
		}
	}
	return stamped
}
