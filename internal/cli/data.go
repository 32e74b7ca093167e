package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/databot-ai/databot-go/internal/api"
	"github.com/databot-ai/databot-go/internal/models"
)

var (
	listPage   int
	listSearch string

	addTitle        string
	addContent      string
	addFile         string
	addMetadata     string
	addMetadataFile string

	updateTitle    string
	updateContent  string
	updateMetadata string

	deleteForce bool
)

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Manage the knowledge base",
	Long: `Manage the content your bot is trained on.

Text items are registered directly; documents go through 'data upload'.
Either way the backend chunks and embeds the content so chat answers can
cite it.`,
}

var dataListCmd = &cobra.Command{
	Use:   "list",
	Short: "List knowledge base items, one page at a time",
	Long: `List knowledge base items, one page at a time.

--search filters the loaded page by title and content. It does not search
the whole registry.`,
	RunE: runDataList,
}

var dataGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one item in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runDataGet,
}

var dataAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a text item",
	Long: `Register a text item. The backend chunks and embeds it; the chunk
count in the output tells you how it was split.

Metadata must be a JSON object; anything else is rejected before the
request is sent.

Examples:
  databot data add --title "Refund policy" --content "Refunds are..."
  databot data add --title "FAQ" --file faq.md --metadata '{"source":"faq"}'`,
	RunE: runDataAdd,
}

var dataUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a text item",
	Long: `Update a text item. Only the flags you pass change; omitted fields
keep their current values. Updated content is re-chunked and re-embedded
by the backend.`,
	Args: cobra.ExactArgs(1),
	RunE: runDataUpdate,
}

var dataDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an item from the knowledge base",
	Long: `Delete an item and its chunks from the knowledge base.

Requires confirmation unless --force is used.`,
	Args: cobra.ExactArgs(1),
	RunE: runDataDelete,
}

var dataBulkCmd = &cobra.Command{
	Use:   "bulk <file>",
	Short: "Register a batch of text items from a YAML or JSON file",
	Long: `Register a batch of text items in one call.

The file holds a list of items, each with title, content, and optional
metadata:

  - title: Refund policy
    content: Refunds are processed within 14 days.
  - title: Shipping
    content: We ship worldwide.
    metadata:
      source: handbook`,
	Args: cobra.ExactArgs(1),
	RunE: runDataBulk,
}

var dataFormatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the document formats accepted by upload",
	RunE:  runDataFormats,
}

func init() {
	dataListCmd.Flags().IntVar(&listPage, "page", 1, "page number")
	dataListCmd.Flags().StringVar(&listSearch, "search", "", "filter the loaded page by title/content")

	dataAddCmd.Flags().StringVar(&addTitle, "title", "", "item title (required)")
	dataAddCmd.Flags().StringVar(&addContent, "content", "", "item content")
	dataAddCmd.Flags().StringVar(&addFile, "file", "", "read content from this file instead of --content")
	dataAddCmd.Flags().StringVar(&addMetadata, "metadata", "", "metadata as a JSON object")
	dataAddCmd.Flags().StringVar(&addMetadataFile, "metadata-file", "", "read metadata from this JSON file instead of --metadata")
	dataAddCmd.MarkFlagRequired("title")

	dataUpdateCmd.Flags().StringVar(&updateTitle, "title", "", "new title")
	dataUpdateCmd.Flags().StringVar(&updateContent, "content", "", "new content")
	dataUpdateCmd.Flags().StringVar(&updateMetadata, "metadata", "", "new metadata as a JSON object")

	dataDeleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "skip confirmation")

	dataCmd.AddCommand(dataListCmd)
	dataCmd.AddCommand(dataGetCmd)
	dataCmd.AddCommand(dataAddCmd)
	dataCmd.AddCommand(dataUpdateCmd)
	dataCmd.AddCommand(dataDeleteCmd)
	dataCmd.AddCommand(dataBulkCmd)
	dataCmd.AddCommand(dataUploadCmd)
	dataCmd.AddCommand(dataFormatsCmd)
}

func runDataList(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	dataSt.SetPage(listPage)
	items, total, err := backend.ListData(context.Background(), dataSt.Page(), dataSt.PageSize())
	if err != nil {
		return fmt.Errorf("list data: %w", err)
	}
	dataSt.SetItems(items, total)

	shown := dataSt.Filter(listSearch)
	if len(shown) == 0 {
		if listSearch != "" {
			fmt.Printf("No items on this page match %q.\n", listSearch)
		} else {
			fmt.Println("No items yet. Add one with 'databot data add'.")
		}
		return nil
	}

	for _, item := range shown {
		kind := item.Type
		if kind == "" {
			kind = models.DataItemText
		}
		when := ""
		if !item.CreatedAt.IsZero() {
			when = item.CreatedAt.Format("2006-01-02")
		}
		fmt.Printf("%s  %-40s %-8s %2d chunks  %s\n", item.ID, truncate(item.Title, 40), kind, item.ChunkCount, when)
	}

	pages := (dataSt.Total() + dataSt.PageSize() - 1) / dataSt.PageSize()
	if pages < 1 {
		pages = 1
	}
	fmt.Printf("\nPage %d of %d (%d items total)\n", dataSt.Page(), pages, dataSt.Total())
	return nil
}

func runDataGet(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	item, err := backend.GetData(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("get item: %w", err)
	}
	dataSt.Select(item)

	fmt.Printf("Title:   %s\n", item.Title)
	fmt.Printf("ID:      %s\n", item.ID)
	fmt.Printf("Type:    %s\n", item.Type)
	fmt.Printf("Chunks:  %d\n", item.ChunkCount)
	if !item.CreatedAt.IsZero() {
		fmt.Printf("Created: %s\n", item.CreatedAt.Format("2006-01-02 15:04"))
	}
	if len(item.Metadata) > 0 {
		fmt.Printf("Metadata:\n")
		for k, v := range item.Metadata {
			fmt.Printf("  %s: %v\n", k, v)
		}
	}
	fmt.Printf("\n%s\n", item.Content)
	return nil
}

func runDataAdd(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	content := addContent
	if addFile != "" {
		b, err := os.ReadFile(addFile)
		if err != nil {
			return fmt.Errorf("read content file: %w", err)
		}
		content = string(b)
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("content is empty: pass --content or --file")
	}

	metadata := addMetadata
	if addMetadataFile != "" {
		b, err := os.ReadFile(addMetadataFile)
		if err != nil {
			return fmt.Errorf("read metadata file: %w", err)
		}
		metadata = string(b)
	}

	// Validate metadata before anything goes over the wire.
	meta, err := models.ParseMetadata(metadata)
	if err != nil {
		return err
	}

	item, err := backend.RegisterData(context.Background(), api.RegisterDataInput{
		Title:    addTitle,
		Content:  content,
		Metadata: meta,
	})
	if err != nil {
		return fmt.Errorf("register data: %w", err)
	}
	dataSt.AddItem(*item)

	fmt.Printf("Registered %q (%s), split into %d chunks.\n", item.Title, item.ID, item.ChunkCount)
	return nil
}

func runDataUpdate(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	if updateTitle == "" && updateContent == "" && updateMetadata == "" {
		fmt.Println("No updates specified.")
		return nil
	}

	input := api.UpdateDataInput{}
	if updateTitle != "" {
		input.Title = &updateTitle
	}
	if updateContent != "" {
		input.Content = &updateContent
	}
	if updateMetadata != "" {
		meta, err := models.ParseMetadata(updateMetadata)
		if err != nil {
			return err
		}
		input.Metadata = meta
	}

	item, err := backend.UpdateData(context.Background(), args[0], input)
	if err != nil {
		return fmt.Errorf("update data: %w", err)
	}
	dataSt.UpdateItem(item.ID, *item)

	fmt.Printf("Updated %q (%s), now %d chunks.\n", item.Title, item.ID, item.ChunkCount)
	return nil
}

func runDataDelete(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	id := args[0]

	if !deleteForce {
		fmt.Printf("About to delete item %s and its chunks.\n", id)
		fmt.Print("\nContinue? [y/N]: ")

		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		response = strings.TrimSpace(strings.ToLower(response))

		if response != "y" && response != "yes" {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := backend.DeleteData(context.Background(), id); err != nil {
		return fmt.Errorf("delete data: %w", err)
	}
	dataSt.RemoveItem(id)

	fmt.Printf("Deleted: %s\n", id)
	return nil
}

func runDataBulk(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	b, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read batch file: %w", err)
	}

	var items []api.RegisterDataInput
	if err := yaml.Unmarshal(b, &items); err != nil {
		return fmt.Errorf("parse batch file: %w", err)
	}
	if len(items) == 0 {
		return fmt.Errorf("batch file holds no items")
	}
	for i, item := range items {
		if strings.TrimSpace(item.Title) == "" || strings.TrimSpace(item.Content) == "" {
			return fmt.Errorf("item %d: title and content are required", i+1)
		}
	}

	if err := backend.BulkRegister(context.Background(), items); err != nil {
		return fmt.Errorf("bulk register: %w", err)
	}

	fmt.Printf("Registered %d items.\n", len(items))

	// The bulk endpoint does not echo the created items back, so re-fetch
	// the current page instead of patching the cache blind.
	listed, total, err := backend.ListData(context.Background(), dataSt.Page(), dataSt.PageSize())
	if err != nil {
		logger.Debug("post-bulk refresh failed", "error", err)
		return nil
	}
	dataSt.SetItems(listed, total)
	return nil
}

func runDataFormats(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	formats, err := backend.Formats(context.Background())
	if err != nil {
		return fmt.Errorf("list formats: %w", err)
	}

	fmt.Println("Accepted document formats:")
	for _, f := range formats {
		if f.Description != "" {
			fmt.Printf("  %-6s %s\n", f.Extension, f.Description)
		} else {
			fmt.Printf("  %s\n", f.Extension)
		}
	}
	fmt.Printf("\nLimits: %d files per batch, %d MiB per file.\n",
		api.MaxUploadFiles, api.MaxUploadFileSize>>20)
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
