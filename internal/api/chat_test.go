package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/databot-ai/databot-go/internal/api"
)

func TestSendMessageStartsSessionLazily(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{
			"success": true,
			"data": {
				"answer": "Refunds take 14 days.",
				"sources": [{"title":"Refund Policy","score":0.91}],
				"sessionId": "sess-new"
			}
		}`))
	}))
	defer srv.Close()

	c := api.New(srv.URL)
	answer, err := c.SendMessage(context.Background(), "how long do refunds take?", "")
	require.NoError(t, err)

	// No sessionId in the request tells the backend to open a session.
	assert.NotContains(t, gotBody, "sessionId")
	assert.Equal(t, "how long do refunds take?", gotBody["query"])

	assert.Equal(t, "sess-new", answer.SessionID)
	assert.Equal(t, "Refunds take 14 days.", answer.Answer)
	require.Len(t, answer.Sources, 1)
	assert.InDelta(t, 0.91, answer.Sources[0].Score, 0.001)
}

func TestSendMessageReusesSession(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"success":true,"data":{"answer":"Worldwide.","sessionId":"sess-1"}}`))
	}))
	defer srv.Close()

	c := api.New(srv.URL)
	_, err := c.SendMessage(context.Background(), "where do you ship?", "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", gotBody["sessionId"])
}

func TestListSessions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/sessions", r.URL.Path)
		w.Write([]byte(`{"success":true,"sessions":[
			{"id":"sess-1","createdAt":"2026-08-20T09:00:00Z"},
			{"id":"sess-2","createdAt":"2026-08-21T09:00:00Z"}
		]}`))
	}))
	defer srv.Close()

	c := api.New(srv.URL)
	sessions, err := c.ListSessions(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "sess-1", sessions[0].ID)
}

func TestGetSessionMessages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/sessions/sess-1", r.URL.Path)
		w.Write([]byte(`{"success":true,"messages":[
			{"id":"m1","role":"user","content":"hi","timestamp":"2026-08-20T09:00:00Z"},
			{"id":"m2","role":"assistant","content":"hello","timestamp":"2026-08-20T09:00:02Z",
				"sources":[{"title":"Greeting Guide","score":0.5}]}
		]}`))
	}))
	defer srv.Close()

	c := api.New(srv.URL)
	messages, err := c.GetSession(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "hi", messages[0].Content)
	require.Len(t, messages[1].Sources, 1)
	assert.Equal(t, "Greeting Guide", messages[1].Sources[0].Title)
}

func TestDeleteSession(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := api.New(srv.URL)
	require.NoError(t, c.DeleteSession(context.Background(), "sess-1"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/chat/sessions/sess-1", gotPath)
}
