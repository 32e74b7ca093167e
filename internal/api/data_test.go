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

func TestListDataDecodesPageAndTotal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		w.Write([]byte(`{
			"success": true,
			"data": [
				{"sectionId":"sec-1","title":"Refunds","content":"...","chunkCount":3},
				{"sectionId":"sec-2","title":"Shipping","content":"...","chunkCount":1}
			],
			"total": 45
		}`))
	}))
	defer srv.Close()

	c := api.New(srv.URL)
	items, total, err := c.ListData(context.Background(), 2, 20)
	require.NoError(t, err)

	assert.Equal(t, 45, total)
	require.Len(t, items, 2)
	// The backend's sectionId becomes the client-side id.
	assert.Equal(t, "sec-1", items[0].ID)
	assert.Equal(t, "sec-2", items[1].ID)
	assert.Equal(t, 3, items[0].ChunkCount)
}

func TestGetDataNormalizesID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/sec-9", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":{"sectionId":"sec-9","title":"FAQ","content":"Q&A"}}`))
	}))
	defer srv.Close()

	c := api.New(srv.URL)
	item, err := c.GetData(context.Background(), "sec-9")
	require.NoError(t, err)
	assert.Equal(t, "sec-9", item.ID)
	assert.Equal(t, "FAQ", item.Title)
}

func TestRegisterDataSendsPayload(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/data/register", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"success":true,"data":{"sectionId":"sec-new","title":"Refunds","content":"...","chunkCount":2}}`))
	}))
	defer srv.Close()

	c := api.New(srv.URL)
	item, err := c.RegisterData(context.Background(), api.RegisterDataInput{
		Title:    "Refunds",
		Content:  "Refunds take 14 days.",
		Metadata: map[string]any{"source": "handbook"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Refunds", gotBody["title"])
	assert.Equal(t, "Refunds take 14 days.", gotBody["content"])
	assert.Equal(t, map[string]any{"source": "handbook"}, gotBody["metadata"])
	assert.Equal(t, "sec-new", item.ID)
	assert.Equal(t, 2, item.ChunkCount)
}

func TestUpdateDataOmitsUnsetFields(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"success":true,"data":{"sectionId":"sec-1","title":"New title","content":"old"}}`))
	}))
	defer srv.Close()

	title := "New title"
	c := api.New(srv.URL)
	_, err := c.UpdateData(context.Background(), "sec-1", api.UpdateDataInput{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "New title", gotBody["title"])
	assert.NotContains(t, gotBody, "content")
	assert.NotContains(t, gotBody, "metadata")
}

func TestBulkRegisterWrapsItems(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/bulk", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := api.New(srv.URL)
	err := c.BulkRegister(context.Background(), []api.RegisterDataInput{
		{Title: "A", Content: "a"},
		{Title: "B", Content: "b"},
	})
	require.NoError(t, err)

	list, ok := gotBody["data"].([]any)
	require.True(t, ok, "items not wrapped under data: %v", gotBody)
	assert.Len(t, list, 2)
}

func TestDeleteDataEscapesID(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := api.New(srv.URL)
	require.NoError(t, c.DeleteData(context.Background(), "sec/odd id"))
	assert.Equal(t, "/data/sec%2Fodd%20id", gotPath)
}

func TestFormats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/formats", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":[{"extension":".pdf","description":"PDF documents"},{"extension":".md"}]}`))
	}))
	defer srv.Close()

	c := api.New(srv.URL)
	formats, err := c.Formats(context.Background())
	require.NoError(t, err)
	require.Len(t, formats, 2)
	assert.Equal(t, ".pdf", formats[0].Extension)
	assert.Equal(t, "PDF documents", formats[0].Description)
}
