package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/databot-ai/databot-go/internal/api"
)

var dataUploadCmd = &cobra.Command{
	Use:   "upload <file>...",
	Short: "Upload documents into the knowledge base",
	Long: `Upload documents into the knowledge base as one batch.

Accepted formats: pdf, doc, docx, txt, md. At most 10 files per batch,
10 MiB each. A file the backend rejects fails on its own; the rest of
the batch still goes through.

Examples:
  databot data upload handbook.pdf
  databot data upload docs/*.md`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDataUpload,
}

func runDataUpload(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	// Reject bad batches before the progress UI starts.
	if err := api.ValidateUploadSet(args); err != nil {
		return err
	}

	result, err := RunUploadProgress(backend, args)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}

	// The cache cannot tell which page the new documents landed on, so
	// re-fetch the current page whether or not every file made it.
	items, total, listErr := backend.ListData(context.Background(), dataSt.Page(), dataSt.PageSize())
	if listErr != nil {
		logger.Debug("post-upload refresh failed", "error", listErr)
	} else {
		dataSt.SetItems(items, total)
	}

	if result.Failed > 0 && result.Uploaded == 0 {
		return fmt.Errorf("no files were uploaded")
	}
	return nil
}
