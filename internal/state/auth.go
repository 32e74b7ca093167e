// Package state holds the client-side stores backing the command flows:
// authentication, the active chat session, and the cached data-registry
// page. Stores are plain passive containers — they never perform I/O or
// trigger fetches themselves — and are constructed fresh per process (or
// per test) rather than living as ambient globals.
package state

import "github.com/databot-ai/databot-go/internal/models"

// CredentialStore persists the bearer token (and cached profile) so a
// session survives restarts. The token is the only state required to do so.
type CredentialStore interface {
	Save(tenant *models.Tenant, token string) error
	Clear() error
}

// AuthStore holds the current tenant profile and bearer token.
type AuthStore struct {
	creds  CredentialStore
	tenant *models.Tenant
	token  string
}

// NewAuthStore creates an empty, logged-out store.
func NewAuthStore(creds CredentialStore) *AuthStore {
	return &AuthStore{creds: creds}
}

// Restore populates the store from previously persisted state without
// writing it back.
func (s *AuthStore) Restore(tenant *models.Tenant, token string) {
	s.tenant = tenant
	s.token = token
}

// SetAuth stores the profile and token and persists them.
func (s *AuthStore) SetAuth(tenant *models.Tenant, token string) error {
	s.tenant = tenant
	s.token = token
	if s.creds != nil {
		return s.creds.Save(tenant, token)
	}
	return nil
}

// Logout clears the in-memory session and the persisted token. Calling it
// on an already logged-out store is a no-op with the same end state.
func (s *AuthStore) Logout() error {
	s.tenant = nil
	s.token = ""
	if s.creds != nil {
		return s.creds.Clear()
	}
	return nil
}

// Authenticated is true only when both the profile and the token are
// present. Callers gating protected flows should still check the parts
// they use; a partially cleared session must never pass.
func (s *AuthStore) Authenticated() bool {
	return s.tenant != nil && s.token != ""
}

// Tenant returns the cached profile, nil when logged out.
func (s *AuthStore) Tenant() *models.Tenant {
	return s.tenant
}

// Token returns the bearer token, empty when logged out. The API client
// reads it through this method at request-send time.
func (s *AuthStore) Token() string {
	return s.token
}

// MergeTenant replaces the cached profile after a profile update, leaving
// the token untouched, and re-persists.
func (s *AuthStore) MergeTenant(tenant *models.Tenant) error {
	s.tenant = tenant
	if s.creds != nil && s.token != "" {
		return s.creds.Save(tenant, s.token)
	}
	return nil
}
