package api_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/databot-ai/databot-go/internal/api"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestValidateUploadSet(t *testing.T) {
	good := writeTempFile(t, "notes.md", "# notes")

	t.Run("accepts a valid batch", func(t *testing.T) {
		assert.NoError(t, api.ValidateUploadSet([]string{good}))
	})

	t.Run("rejects empty batch", func(t *testing.T) {
		assert.Error(t, api.ValidateUploadSet(nil))
	})

	t.Run("rejects too many files", func(t *testing.T) {
		paths := make([]string, api.MaxUploadFiles+1)
		for i := range paths {
			paths[i] = good
		}
		err := api.ValidateUploadSet(paths)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "too many files")
	})

	t.Run("rejects unsupported extension", func(t *testing.T) {
		bad := writeTempFile(t, "photo.png", "not text")
		err := api.ValidateUploadSet([]string{bad})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported file type")
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		big := writeTempFile(t, "big.txt", strings.Repeat("a", api.MaxUploadFileSize+1))
		err := api.ValidateUploadSet([]string{big})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "per-file limit")
	})

	t.Run("rejects missing file", func(t *testing.T) {
		assert.Error(t, api.ValidateUploadSet([]string{filepath.Join(t.TempDir(), "absent.txt")}))
	})
}

func TestUploadSendsMultipartBatch(t *testing.T) {
	var gotNames []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(32<<20))
		for _, fh := range r.MultipartForm.File["files"] {
			gotNames = append(gotNames, fh.Filename)
		}
		w.Write([]byte(`{
			"success": true,
			"results": [
				{"filename":"a.md","sectionId":"sec-a","chunkCount":2},
				{"filename":"b.txt","sectionId":"sec-b","chunkCount":1}
			],
			"uploaded": 2,
			"failed": 0
		}`))
	}))
	defer srv.Close()

	a := writeTempFile(t, "a.md", "# a")
	b := writeTempFile(t, "b.txt", "b")

	c := api.New(srv.URL)
	result, err := c.Upload(context.Background(), []string{a, b}, nil)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"a.md", "b.txt"}, gotNames)
	assert.Equal(t, 2, result.Uploaded)
	assert.Zero(t, result.Failed)
	require.Len(t, result.Results, 2)
	assert.Equal(t, "sec-a", result.Results[0].SectionID)
}

func TestUploadReportsPartialFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// One file in, one file out: per-file failure, whole-batch success.
		w.Write([]byte(`{
			"success": true,
			"results": [{"filename":"good.md","sectionId":"sec-1","chunkCount":1}],
			"errors": [{"filename":"bad.pdf","error":"could not extract text"}],
			"uploaded": 1,
			"failed": 1
		}`))
	}))
	defer srv.Close()

	good := writeTempFile(t, "good.md", "ok")
	bad := writeTempFile(t, "bad.pdf", "binary-ish")

	c := api.New(srv.URL)
	result, err := c.Upload(context.Background(), []string{good, bad}, nil)
	require.NoError(t, err, "a failed file must not fail the batch")

	assert.Equal(t, 1, result.Uploaded)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "bad.pdf", result.Errors[0].Filename)
	assert.Contains(t, result.Errors[0].Error, "extract text")
}

func TestUploadReportsProgress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Consume the whole body so every byte passes the progress reader.
		io.Copy(io.Discard, r.Body)
		w.Write([]byte(`{"success":true,"uploaded":1,"failed":0}`))
	}))
	defer srv.Close()

	path := writeTempFile(t, "doc.txt", strings.Repeat("x", 64<<10))

	var seen []int
	c := api.New(srv.URL)
	_, err := c.Upload(context.Background(), []string{path}, func(pct int) {
		seen = append(seen, pct)
	})
	require.NoError(t, err)

	require.NotEmpty(t, seen, "no progress reported")
	assert.Equal(t, 100, seen[len(seen)-1])
	for i := 1; i < len(seen); i++ {
		assert.GreaterOrEqual(t, seen[i], seen[i-1], "progress went backwards at %d", i)
		assert.NotEqual(t, seen[i], seen[i-1], "duplicate progress value %d", seen[i])
	}
	for _, pct := range seen {
		assert.LessOrEqual(t, pct, 100)
		assert.GreaterOrEqual(t, pct, 0)
	}
}

func TestUploadValidationErrorMentionsFile(t *testing.T) {
	bad := writeTempFile(t, "movie.mp4", "nope")
	c := api.New("http://unused.invalid")
	_, err := c.Upload(context.Background(), []string{bad}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "movie.mp4")
	assert.Contains(t, err.Error(), "unsupported")
}
