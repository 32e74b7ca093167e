package cli

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"

	"github.com/databot-ai/databot-go/internal/api"
)

// uploadProgressMsg carries the percentage of the request body sent.
type uploadProgressMsg int

// uploadDoneMsg carries the batch outcome once the backend has answered.
type uploadDoneMsg struct {
	result *api.UploadResult
	err    error
}

// uploadModel is the bubbletea model for the upload progress display.
type uploadModel struct {
	fileCount int
	percent   int
	progress  progress.Model
	theme     Theme
	result    *api.UploadResult
	err       error
	done      bool
	quitting  bool
	cancel    context.CancelFunc
}

func newUploadModel(fileCount int, cancel context.CancelFunc) uploadModel {
	prog := progress.New(
		progress.WithDefaultBlend(),
		progress.WithWidth(40),
	)

	return uploadModel{
		fileCount: fileCount,
		progress:  prog,
		theme:     defaultTheme,
		cancel:    cancel,
	}
}

func (m uploadModel) Init() tea.Cmd {
	return m.progress.Init()
}

func (m uploadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		}

	case uploadProgressMsg:
		m.percent = int(msg)
		return m, nil

	case uploadDoneMsg:
		m.result = msg.result
		m.err = msg.err
		m.done = true
		return m, tea.Quit

	case progress.FrameMsg:
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m uploadModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

func (m uploadModel) renderContent() string {
	if m.done || m.quitting {
		return m.finalView()
	}

	status := m.theme.accentStyle().Render("[uploading]")
	bar := m.progress.ViewAs(float64(m.percent) / 100)
	counts := fmt.Sprintf("%d%% of %d files", m.percent, m.fileCount)
	hint := m.theme.hintStyle().Render("Press Ctrl+C to cancel")

	return fmt.Sprintf("%s %s %s\n%s\n", status, bar, counts, hint)
}

func (m uploadModel) finalView() string {
	if m.quitting {
		return m.theme.hintStyle().Render("\nUpload cancelled.\n")
	}

	if m.err != nil {
		return m.theme.errorStyle().Render(fmt.Sprintf("\n✗ Upload failed: %s\n", m.err))
	}

	if m.result == nil {
		return m.theme.successStyle().Render("✓ Done\n")
	}

	r := m.result
	var output string
	output += m.theme.successStyle().Render("✓ Upload complete") + "\n\n"
	output += fmt.Sprintf("  Uploaded: %d\n", r.Uploaded)
	if r.Failed > 0 {
		output += fmt.Sprintf("  Failed:   %d\n", r.Failed)
	}
	for _, f := range r.Results {
		output += fmt.Sprintf("  ✓ %s (%d chunks)\n", f.Filename, f.ChunkCount)
	}
	if len(r.Errors) > 0 {
		output += m.theme.errorStyle().Render(fmt.Sprintf("\nFailed files (%d):\n", len(r.Errors)))
		for _, e := range r.Errors {
			output += fmt.Sprintf("  ✗ %s: %s\n", e.Filename, e.Error)
		}
	}
	return output
}

// RunUploadProgress uploads the files with an interactive progress bar and
// returns the per-file outcomes. Ctrl+C cancels the request.
func RunUploadProgress(c *api.Client, paths []string) (*api.UploadResult, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := newUploadModel(len(paths), cancel)
	p := tea.NewProgram(model)

	go func() {
		result, err := c.Upload(ctx, paths, func(pct int) {
			p.Send(uploadProgressMsg(pct))
		})
		p.Send(uploadDoneMsg{result: result, err: err})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("progress UI error: %w", err)
	}

	if m, ok := finalModel.(uploadModel); ok {
		if m.quitting {
			return nil, fmt.Errorf("upload cancelled")
		}
		if m.err != nil {
			return nil, m.err
		}
		return m.result, nil
	}

	return nil, nil
}
