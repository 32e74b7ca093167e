package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/databot-ai/databot-go/internal/models"
)

// ChatAnswer is the backend's reply to one chat message.
type ChatAnswer struct {
	Answer    string          `json:"answer"`
	Sources   []models.Source `json:"sources,omitempty"`
	SessionID string          `json:"sessionId,omitempty"`
}

// SendMessage sends one user query. An empty sessionID is omitted from the
// request, which tells the backend to start a new session; the answer then
// carries the id of the session it opened.
func (c *Client) SendMessage(ctx context.Context, query, sessionID string) (*ChatAnswer, error) {
	body := map[string]string{"query": query}
	if sessionID != "" {
		body["sessionId"] = sessionID
	}
	env, err := c.do(ctx, http.MethodPost, "/chat", nil, body)
	if err != nil {
		return nil, err
	}
	var answer ChatAnswer
	if err := unmarshal(env.Data, &answer); err != nil {
		return nil, err
	}
	return &answer, nil
}

// ListSessions returns the tenant's conversation threads.
func (c *Client) ListSessions(ctx context.Context) ([]models.ChatSession, error) {
	env, err := c.do(ctx, http.MethodGet, "/chat/sessions", nil, nil)
	if err != nil {
		return nil, err
	}
	var sessions []models.ChatSession
	if err := unmarshal(pick(env.Sessions, env.Data), &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetSession fetches the full message history of one session.
func (c *Client) GetSession(ctx context.Context, id string) ([]models.ChatMessage, error) {
	env, err := c.do(ctx, http.MethodGet, "/chat/sessions/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	var messages []models.ChatMessage
	if err := unmarshal(pick(env.Messages, env.Data), &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// DeleteSession removes one session and its messages.
func (c *Client) DeleteSession(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/chat/sessions/"+url.PathEscape(id), nil, nil)
	return err
}
