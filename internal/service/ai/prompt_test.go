package ai

import (
	"testing"

	"github.com/cloudwego/eino/schema"

	"github.com/Opirel/finalProj-dnd-backend/internal/model/session"
)

func TestBuildHistoryRoleMapping(t *testing.T) {
	msgs := []session.Message{
		{Sender: session.SenderUser, Text: "hi"},
		{Sender: session.SenderBot, Text: "hello adventurer"},
		{Sender: session.SenderUser, Text: "what is my AC?"},
	}

	history := BuildHistory(msgs)
	if len(history) != 3 {
		t.Fatalf("expected 3 history entries, got %d", len(history))
	}

	wantRoles := []schema.RoleType{schema.User, schema.Assistant, schema.User}
	for i, msg := range history {
		if msg.Role != wantRoles[i] {
			t.Fatalf("entry %d: role %s, want %s", i, msg.Role, wantRoles[i])
		}
		if msg.Content != msgs[i].Text {
			t.Fatalf("entry %d: content %q, want %q", i, msg.Content, msgs[i].Text)
		}
	}
}

func TestBuildHistoryEmpty(t *testing.T) {
	if history := BuildHistory(nil); history != nil {
		t.Fatalf("expected nil history, got %+v", history)
	}
}

func TestBuildHistoryDeterministic(t *testing.T) {
	msgs := []session.Message{
		{Sender: session.SenderUser, Text: "hi"},
		{Sender: session.SenderBot, Text: "hello"},
	}

	first := BuildHistory(msgs)
	second := BuildHistory(msgs)

	if len(first) != len(second) {
		t.Fatalf("history length differs between runs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Role != second[i].Role || first[i].Content != second[i].Content {
			t.Fatalf("entry %d differs between runs", i)
		}
	}
}

func TestBuildChainInput(t *testing.T) {
	msgs := []session.Message{
		{Sender: session.SenderUser, Text: "hi"},
		{Sender: session.SenderUser, Text: "what is my AC?"},
	}

	input := buildChainInput(msgs, msgs[len(msgs)-1].Text)

	if input["system"] != BuilderPrompt {
		t.Fatal("system prompt must be the fixed builder persona")
	}
	if input["query"] != "what is my AC?" {
		t.Fatalf("unexpected query: %v", input["query"])
	}

	history, ok := input["history"].([]*schema.Message)
	if !ok {
		t.Fatalf("history has unexpected type: %T", input["history"])
	}
	// The trigger message stays in the replayed history as well.
	if len(history) != 2 {
		t.Fatalf("expected the full transcript in history, got %d entries", len(history))
	}
}
