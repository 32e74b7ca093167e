// Package models defines the data transfer objects exchanged with the
// DataBot backend. The backend is the source of truth for all of them;
// every copy held client-side is a cache.
package models

import "time"

// Plan is the subscription tier of a tenant. It only affects which limits
// are displayed; enforcement happens server-side.
type Plan string

const (
	PlanFree       Plan = "free"
	PlanPro        Plan = "pro"
	PlanEnterprise Plan = "enterprise"
)

// TenantLimits holds the plan limits reported by the backend.
type TenantLimits struct {
	MonthlyMessages int `json:"monthlyMessages"`
	MaxDataItems    int `json:"maxDataItems"`
	MaxChunkSize    int `json:"maxChunkSize"`
}

// Tenant is the account holder owning one knowledge base and its API keys.
type Tenant struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Plan      Plan         `json:"plan"`
	CreatedAt time.Time    `json:"createdAt,omitzero"`
	Limits    TenantLimits `json:"limits"`
}

// APIKey is the list form of a key. The backend only ever returns the
// masked hint here; the full secret exists in CreatedAPIKey alone.
type APIKey struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Hint      string     `json:"hint"`
	CreatedAt time.Time  `json:"createdAt,omitzero"`
	LastUsed  *time.Time `json:"lastUsed,omitempty"`
}

// CreatedAPIKey carries the full secret value of a freshly created key.
// The backend returns it exactly once; it is never persisted and cannot
// be fetched again.
type CreatedAPIKey struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	APIKey    string    `json:"apiKey"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// DataItemType distinguishes manually entered text from uploaded documents.
type DataItemType string

const (
	DataItemText     DataItemType = "text"
	DataItemDocument DataItemType = "document"
)

// DataItem is one unit of knowledge-base content. The backend's identity
// field is sectionId; the api package folds it into ID so the rest of the
// codebase never sees the backend name.
type DataItem struct {
	ID         string         `json:"id"`
	SectionID  string         `json:"sectionId,omitempty"`
	Title      string         `json:"title"`
	Content    string         `json:"content"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Type       DataItemType   `json:"type,omitempty"`
	ChunkCount int            `json:"chunkCount,omitempty"`
	CreatedAt  time.Time      `json:"createdAt,omitzero"`
	UpdatedAt  time.Time      `json:"updatedAt,omitzero"`
}

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Source is one retrieval citation attached to an assistant message.
// Score is the relevance score in [0,1].
type Source struct {
	Title   string  `json:"title"`
	Content string  `json:"content,omitempty"`
	Score   float64 `json:"score"`
}

// ChatMessage is immutable once created; it is appended to a session's
// message list and never edited.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Sources   []Source  `json:"sources,omitempty"`
}

// ChatSession groups the messages of one conversation thread.
type ChatSession struct {
	ID        string        `json:"id"`
	Messages  []ChatMessage `json:"messages,omitempty"`
	CreatedAt time.Time     `json:"createdAt,omitzero"`
	UpdatedAt time.Time     `json:"updatedAt,omitzero"`
}

// UsageStats is a read-only snapshot of consumption against plan limits,
// refreshed only by explicit re-fetch.
type UsageStats struct {
	APICallsThisMonth      int `json:"apiCallsThisMonth"`
	APICallsLimit          int `json:"apiCallsLimit"`
	SectionsCount          int `json:"sectionsCount"`
	SectionsLimit          int `json:"sectionsLimit"`
	RequestsPerMinuteLimit int `json:"requestsPerMinuteLimit"`
}

// FileFormat describes one upload format supported by the backend.
type FileFormat struct {
	Extension   string `json:"extension"`
	ContentType string `json:"contentType,omitempty"`
	Description string `json:"description,omitempty"`
}
