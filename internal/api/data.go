package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/databot-ai/databot-go/internal/models"
)

// RegisterDataInput is the payload for creating one text item.
type RegisterDataInput struct {
	Title    string         `json:"title"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// UpdateDataInput carries partial updates; nil fields stay unchanged.
type UpdateDataInput struct {
	Title    *string        `json:"title,omitempty"`
	Content  *string        `json:"content,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// normalizeItem folds the backend's sectionId into the client-facing ID.
// Compatibility adapter: the backend names the identity field sectionId,
// everything on this side uses ID. This is the only place the rename
// happens.
func normalizeItem(item *models.DataItem) {
	if item.SectionID != "" {
		item.ID = item.SectionID
	}
}

// ListData fetches one page of the data registry and the total item count
// across all pages.
func (c *Client) ListData(ctx context.Context, page, limit int) ([]models.DataItem, int, error) {
	query := url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
	}
	env, err := c.do(ctx, http.MethodGet, "/data", query, nil)
	if err != nil {
		return nil, 0, err
	}
	var items []models.DataItem
	if err := unmarshal(env.Data, &items); err != nil {
		return nil, 0, err
	}
	for i := range items {
		normalizeItem(&items[i])
	}
	return items, env.Total, nil
}

// GetData fetches one item by id.
func (c *Client) GetData(ctx context.Context, id string) (*models.DataItem, error) {
	env, err := c.do(ctx, http.MethodGet, "/data/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeItem(env)
}

// RegisterData creates one text item; the backend chunks and embeds it.
func (c *Client) RegisterData(ctx context.Context, input RegisterDataInput) (*models.DataItem, error) {
	env, err := c.do(ctx, http.MethodPost, "/data/register", nil, input)
	if err != nil {
		return nil, err
	}
	return decodeItem(env)
}

// UpdateData applies a partial update to an existing item.
func (c *Client) UpdateData(ctx context.Context, id string, input UpdateDataInput) (*models.DataItem, error) {
	env, err := c.do(ctx, http.MethodPut, "/data/"+url.PathEscape(id), nil, input)
	if err != nil {
		return nil, err
	}
	return decodeItem(env)
}

// DeleteData removes one item.
func (c *Client) DeleteData(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/data/"+url.PathEscape(id), nil, nil)
	return err
}

// BulkRegister creates a batch of text items in one call.
func (c *Client) BulkRegister(ctx context.Context, items []RegisterDataInput) error {
	_, err := c.do(ctx, http.MethodPost, "/data/bulk", nil, map[string]any{"data": items})
	return err
}

// Formats lists the upload formats the backend accepts.
func (c *Client) Formats(ctx context.Context) ([]models.FileFormat, error) {
	env, err := c.do(ctx, http.MethodGet, "/data/formats", nil, nil)
	if err != nil {
		return nil, err
	}
	var formats []models.FileFormat
	if err := unmarshal(env.Data, &formats); err != nil {
		return nil, err
	}
	return formats, nil
}

func decodeItem(env *envelope) (*models.DataItem, error) {
	var item models.DataItem
	if err := unmarshal(env.Data, &item); err != nil {
		return nil, err
	}
	normalizeItem(&item)
	return &item, nil
}
