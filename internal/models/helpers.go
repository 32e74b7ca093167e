package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ParseMetadata parses the free-form metadata text of the data-entry form.
// Empty or whitespace-only input means "no metadata" and returns (nil, nil);
// anything else must be a JSON object. A parse failure is a validation
// error raised before any network call.
func ParseMetadata(s string) (map[string]any, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, fmt.Errorf("metadata must be a JSON object: %w", err)
	}
	return m, nil
}

// NewUserMessage builds a user message with a client-generated id and the
// current timestamp. It is appended locally before the backend call.
func NewUserMessage(content string) ChatMessage {
	return ChatMessage{
		ID:        uuid.New().String(),
		Role:      RoleUser,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewAssistantMessage builds an assistant message from a backend answer.
func NewAssistantMessage(content string, sources []Source) ChatMessage {
	return ChatMessage{
		ID:        uuid.New().String(),
		Role:      RoleAssistant,
		Content:   content,
		Timestamp: time.Now(),
		Sources:   sources,
	}
}

// FormatSourceBadge renders a citation as shown next to assistant
// messages, e.g. `Policy (92% match)`.
func FormatSourceBadge(s Source) string {
	return fmt.Sprintf("%s (%.0f%% match)", s.Title, s.Score*100)
}
