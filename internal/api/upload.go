package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Client-side upload pre-filters. These mirror the backend's own limits but
// do not replace its validation.
const (
	MaxUploadFiles    = 10
	MaxUploadFileSize = 10 << 20 // 10 MiB per file
)

var allowedUploadExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
	".md":   true,
}

// FileResult is one successfully processed file, matched by filename.
type FileResult struct {
	Filename   string `json:"filename"`
	SectionID  string `json:"sectionId,omitempty"`
	Title      string `json:"title,omitempty"`
	ChunkCount int    `json:"chunkCount,omitempty"`
}

// FileError is one failed file, matched by filename. A failed file never
// escalates to a whole-batch failure.
type FileError struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// UploadResult reports per-file outcomes of one upload batch.
type UploadResult struct {
	Results  []FileResult
	Errors   []FileError
	Uploaded int
	Failed   int
}

// ValidateUploadSet applies the client-side pre-filters before anything is
// sent: batch size, per-file size, and accepted extensions.
func ValidateUploadSet(paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("no files to upload")
	}
	if len(paths) > MaxUploadFiles {
		return fmt.Errorf("too many files: %d (max %d per batch)", len(paths), MaxUploadFiles)
	}
	for _, p := range paths {
		ext := strings.ToLower(filepath.Ext(p))
		if !allowedUploadExtensions[ext] {
			return fmt.Errorf("unsupported file type %q: accepted formats are pdf, doc, docx, txt, md", filepath.Base(p))
		}
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("stat %s: %w", p, err)
		}
		if info.Size() > MaxUploadFileSize {
			return fmt.Errorf("%s is %d bytes, over the %d byte per-file limit", filepath.Base(p), info.Size(), int64(MaxUploadFileSize))
		}
	}
	return nil
}

// Upload sends the files as one multipart batch. onProgress, if non-nil,
// receives integer percentages 0-100 as the request body goes out on the
// wire. Per-file failures are reported in the result, not as an error.
func (c *Client) Upload(ctx context.Context, paths []string, onProgress func(percent int)) (*UploadResult, error) {
	if err := ValidateUploadSet(paths); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, p := range paths {
		if err := appendFilePart(writer, p); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	body := &progressReader{
		r:        bytes.NewReader(buf.Bytes()),
		total:    int64(buf.Len()),
		onChange: onProgress,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/data/upload", body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.ContentLength = int64(buf.Len())
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}

	env, err := c.decode(resp)
	if err != nil {
		return nil, err
	}

	result := &UploadResult{
		Uploaded: env.Uploaded,
		Failed:   env.Failed,
	}
	if err := unmarshal(env.Results, &result.Results); err != nil {
		return nil, err
	}
	if err := unmarshal(env.Errors, &result.Errors); err != nil {
		return nil, err
	}
	return result, nil
}

func appendFilePart(writer *multipart.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	part, err := writer.CreateFormFile("files", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

// progressReader reports the percentage of the body consumed by the
// transport. Percentages are monotonic and only emitted on change.
type progressReader struct {
	r        io.Reader
	total    int64
	read     int64
	last     int
	onChange func(int)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)
	if p.onChange != nil && p.total > 0 {
		pct := int(p.read * 100 / p.total)
		if pct > 100 {
			pct = 100
		}
		if pct != p.last {
			p.last = pct
			p.onChange(pct)
		}
	}
	return n, err
}
