package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/databot-ai/databot-go/internal/models"
)

// Credentials is the persisted session: the bearer token plus a cached
// copy of the tenant profile so `whoami` works offline after a restart.
// The token is the only piece that must survive a reload.
type Credentials struct {
	Token  string         `yaml:"token"`
	Tenant *models.Tenant `yaml:"tenant,omitempty"`
}

// FileCredentialStore persists credentials as a YAML file with 0600
// permissions. It implements state.CredentialStore.
type FileCredentialStore struct {
	path string
}

// NewFileCredentialStore creates a store writing to path.
func NewFileCredentialStore(path string) *FileCredentialStore {
	return &FileCredentialStore{path: path}
}

// Load reads the persisted credentials. A missing file means no session
// and returns (nil, nil).
func (s *FileCredentialStore) Load() (*Credentials, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	var creds Credentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	if creds.Token == "" {
		return nil, nil
	}
	return &creds, nil
}

// Save writes the session to disk, creating the parent directory when
// needed.
func (s *FileCredentialStore) Save(tenant *models.Tenant, token string) error {
	data, err := yaml.Marshal(Credentials{Token: token, Tenant: tenant})
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// Clear removes the persisted session. Clearing an absent file is fine;
// overlapping 401 handlers may both end up here.
func (s *FileCredentialStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}
