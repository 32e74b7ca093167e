package state

import "github.com/databot-ai/databot-go/internal/models"

// ChatStore holds the active conversation: its session id and the ordered
// message list. An empty session id means the next send starts a new
// session on the backend; no empty session record is pre-created.
type ChatStore struct {
	sessionID string
	messages  []models.ChatMessage
}

// NewChatStore creates a store with no active session.
func NewChatStore() *ChatStore {
	return &ChatStore{}
}

// SessionID returns the active session id, empty when none.
func (s *ChatStore) SessionID() string {
	return s.sessionID
}

// SetSession records the session id, typically from the first answer of a
// lazily created session.
func (s *ChatStore) SetSession(id string) {
	s.sessionID = id
}

// Append adds one message at the end, preserving order. Messages are never
// deduplicated here; not sending the same message twice is the caller's
// discipline.
func (s *ChatStore) Append(msg models.ChatMessage) {
	s.messages = append(s.messages, msg)
}

// SetMessages replaces the whole list, used when loading a historical
// session.
func (s *ChatStore) SetMessages(msgs []models.ChatMessage) {
	s.messages = append([]models.ChatMessage(nil), msgs...)
}

// Messages returns the ordered message list of the active session.
func (s *ChatStore) Messages() []models.ChatMessage {
	return s.messages
}

// NewSession starts a fresh conversation: id and messages are cleared
// locally, with no backend call.
func (s *ChatStore) NewSession() {
	s.Clear()
}

// Clear drops the active session id and message list.
func (s *ChatStore) Clear() {
	s.sessionID = ""
	s.messages = nil
}
