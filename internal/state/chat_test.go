package state

import (
	"testing"

	"github.com/databot-ai/databot-go/internal/models"
)

func TestChatStoreAppendKeepsOrder(t *testing.T) {
	s := NewChatStore()

	s.Append(models.NewUserMessage("first"))
	s.Append(models.NewAssistantMessage("second", nil))
	s.Append(models.NewUserMessage("third"))

	msgs := s.Messages()
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3", len(msgs))
	}
	for i, want := range []string{"first", "second", "third"} {
		if msgs[i].Content != want {
			t.Errorf("message %d = %q, want %q", i, msgs[i].Content, want)
		}
	}
}

func TestChatStoreSessionLifecycle(t *testing.T) {
	s := NewChatStore()
	if s.SessionID() != "" {
		t.Fatalf("fresh store has session %q", s.SessionID())
	}

	s.SetSession("sess-1")
	s.Append(models.NewUserMessage("hi"))

	s.NewSession()
	if s.SessionID() != "" {
		t.Errorf("session id survived NewSession: %q", s.SessionID())
	}
	if len(s.Messages()) != 0 {
		t.Errorf("messages survived NewSession: %d", len(s.Messages()))
	}
}

func TestChatStoreSetMessagesReplaces(t *testing.T) {
	s := NewChatStore()
	s.Append(models.NewUserMessage("stale"))

	history := []models.ChatMessage{
		models.NewUserMessage("loaded question"),
		models.NewAssistantMessage("loaded answer", []models.Source{{Title: "FAQ", Score: 0.9}}),
	}
	s.SetMessages(history)

	msgs := s.Messages()
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Content != "loaded question" {
		t.Errorf("old messages not replaced: %q", msgs[0].Content)
	}

	// The store keeps its own copy.
	history[0].Content = "mutated"
	if s.Messages()[0].Content == "mutated" {
		t.Error("store aliases the caller's slice")
	}
}
