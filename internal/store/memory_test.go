package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Opirel/finalProj-dnd-backend/internal/model/session"
	"github.com/Opirel/finalProj-dnd-backend/internal/store"
)

func newSession(id string, texts ...string) session.Session {
	msgs := make([]session.Message, 0, len(texts))
	for _, text := range texts {
		msgs = append(msgs, session.Message{Sender: session.SenderUser, Text: text})
	}
	return session.Session{SessionID: id, Title: "my character", Conversation: msgs}
}

func TestMemoryStoreCreateAndGet(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()

	created, err := st.Create(ctx, newSession("abc", "hi"))
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}

	got, err := st.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if got.SessionID != "abc" {
		t.Fatalf("unexpected sessionID: got %s", got.SessionID)
	}
	if len(got.Conversation) != 1 || got.Conversation[0].Text != "hi" {
		t.Fatalf("unexpected conversation: %+v", got.Conversation)
	}
	if created.Conversation[0].ID == "" {
		t.Fatal("expected a store-assigned message ID")
	}
	if created.Conversation[0].Time.IsZero() {
		t.Fatal("expected a default message timestamp")
	}
}

func TestMemoryStoreCreateDuplicate(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()

	if _, err := st.Create(ctx, newSession("abc", "hi")); err != nil {
		t.Fatalf("Create err: %v", err)
	}

	_, err := st.Create(ctx, newSession("abc", "other"))
	if !errors.Is(err, store.ErrSessionExists) {
		t.Fatalf("expected ErrSessionExists, got %v", err)
	}

	// The original session must be untouched.
	got, err := st.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if len(got.Conversation) != 1 || got.Conversation[0].Text != "hi" {
		t.Fatalf("existing session was modified: %+v", got.Conversation)
	}
}

func TestMemoryStoreExists(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()

	ok, err := st.Exists(ctx, "abc")
	if err != nil || ok {
		t.Fatalf("expected Exists=false err=nil, got %v %v", ok, err)
	}

	if _, err := st.Create(ctx, newSession("abc")); err != nil {
		t.Fatalf("Create err: %v", err)
	}

	ok, err = st.Exists(ctx, "abc")
	if err != nil || !ok {
		t.Fatalf("expected Exists=true err=nil, got %v %v", ok, err)
	}
}

func TestMemoryStoreReplaceMessages(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()

	if _, err := st.Create(ctx, newSession("abc", "hi")); err != nil {
		t.Fatalf("Create err: %v", err)
	}

	replaced, err := st.ReplaceMessages(ctx, "abc", []session.Message{
		{Sender: session.SenderUser, Text: "hi"},
		{Sender: session.SenderUser, Text: "what is my AC?"},
	})
	if err != nil {
		t.Fatalf("ReplaceMessages err: %v", err)
	}
	if len(replaced.Conversation) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(replaced.Conversation))
	}
	if replaced.Title != "my character" {
		t.Fatalf("title not preserved: %q", replaced.Title)
	}
	if replaced.Conversation[1].ID == "" || replaced.Conversation[1].Time.IsZero() {
		t.Fatalf("replacement messages not stamped: %+v", replaced.Conversation[1])
	}
}

func TestMemoryStoreReplaceMessagesMissing(t *testing.T) {
	st := store.NewMemoryStore()

	_, err := st.ReplaceMessages(context.Background(), "missing", nil)
	if !errors.Is(err, store.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()

	if _, err := st.Create(ctx, newSession("abc")); err != nil {
		t.Fatalf("Create err: %v", err)
	}

	if err := st.Delete(ctx, "abc"); err != nil {
		t.Fatalf("Delete err: %v", err)
	}

	ok, err := st.Exists(ctx, "abc")
	if err != nil || ok {
		t.Fatalf("session still exists after delete")
	}

	if err := st.Delete(ctx, "abc"); !errors.Is(err, store.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestMemoryStoreList(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if _, err := st.Create(ctx, newSession(id)); err != nil {
			t.Fatalf("Create %s err: %v", id, err)
		}
	}

	sessions, err := st.List(ctx)
	if err != nil {
		t.Fatalf("List err: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()

	if _, err := st.Create(ctx, newSession("abc", "hi")); err != nil {
		t.Fatalf("Create err: %v", err)
	}

	got, _ := st.Get(ctx, "abc")
	got.Conversation[0].Text = "mutated"

	fresh, _ := st.Get(ctx, "abc")
	if fresh.Conversation[0].Text != "hi" {
		t.Fatal("stored state was mutated through a returned copy")
	}
}
