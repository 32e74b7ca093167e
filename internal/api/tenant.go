package api

import (
	"context"
	"net/http"

	"github.com/databot-ai/databot-go/internal/models"
)

// Register creates a new tenant account and returns the profile plus the
// session token.
func (c *Client) Register(ctx context.Context, name, email, password string) (*models.Tenant, string, error) {
	env, err := c.do(ctx, http.MethodPost, "/tenants/register", nil, map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, "", err
	}
	return decodeAuth(env)
}

// Login authenticates an existing tenant.
func (c *Client) Login(ctx context.Context, email, password string) (*models.Tenant, string, error) {
	env, err := c.do(ctx, http.MethodPost, "/tenants/login", nil, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, "", err
	}
	return decodeAuth(env)
}

func decodeAuth(env *envelope) (*models.Tenant, string, error) {
	var t models.Tenant
	if err := unmarshal(pick(env.Tenant, env.Data), &t); err != nil {
		return nil, "", err
	}
	return &t, env.Token, nil
}

// Profile fetches the authenticated tenant's profile.
func (c *Client) Profile(ctx context.Context) (*models.Tenant, error) {
	env, err := c.do(ctx, http.MethodGet, "/tenants/me", nil, nil)
	if err != nil {
		return nil, err
	}
	var t models.Tenant
	if err := unmarshal(pick(env.Tenant, env.Data), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateProfileInput carries the editable profile fields; nil means leave
// the field unchanged.
type UpdateProfileInput struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// UpdateProfile updates name and/or email and returns the merged profile.
func (c *Client) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*models.Tenant, error) {
	env, err := c.do(ctx, http.MethodPut, "/tenants/me", nil, input)
	if err != nil {
		return nil, err
	}
	var t models.Tenant
	if err := unmarshal(pick(env.Tenant, env.Data), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Usage fetches the read-only usage snapshot.
func (c *Client) Usage(ctx context.Context) (*models.UsageStats, error) {
	env, err := c.do(ctx, http.MethodGet, "/tenants/usage", nil, nil)
	if err != nil {
		return nil, err
	}
	var stats models.UsageStats
	if err := unmarshal(pick(env.Usage, env.Data), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ListAPIKeys returns the tenant's keys in masked form. The full secret is
// never available here.
func (c *Client) ListAPIKeys(ctx context.Context) ([]models.APIKey, error) {
	env, err := c.do(ctx, http.MethodGet, "/tenants/api-keys", nil, nil)
	if err != nil {
		return nil, err
	}
	var keys []models.APIKey
	if err := unmarshal(env.Data, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// CreateAPIKey issues a new key, optionally named. The returned secret is
// shown to the user once and is not retrievable afterwards.
func (c *Client) CreateAPIKey(ctx context.Context, name string) (*models.CreatedAPIKey, error) {
	body := map[string]string{}
	if name != "" {
		body["name"] = name
	}
	env, err := c.do(ctx, http.MethodPost, "/tenants/api-keys", nil, body)
	if err != nil {
		return nil, err
	}
	var key models.CreatedAPIKey
	if err := unmarshal(env.Data, &key); err != nil {
		return nil, err
	}
	return &key, nil
}

// pick returns the first non-empty raw field. Some endpoints name their
// payload field (tenant, usage) while others nest under data.
func pick(fields ...[]byte) []byte {
	for _, f := range fields {
		if len(f) > 0 {
			return f
		}
	}
	return nil
}
