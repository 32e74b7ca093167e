package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/databot-ai/databot-go/internal/models"
)

var (
	chatSession        string
	sessionDeleteForce bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the bot trained on your data",
	Long: `Start an interactive conversation with your bot.

Answers are grounded in your knowledge base and cite their sources. The
first message opens a session on the backend; --session resumes an
existing one.

Inside the chat:
  /new   start a fresh conversation
  /quit  leave`,
	RunE: runChat,
}

var chatSessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List past conversations",
	RunE:  runChatSessions,
}

var chatSessionsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Replay one conversation",
	Args:  cobra.ExactArgs(1),
	RunE:  runChatSessionsShow,
}

var chatSessionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one conversation",
	Args:  cobra.ExactArgs(1),
	RunE:  runChatSessionsDelete,
}

func init() {
	chatCmd.Flags().StringVar(&chatSession, "session", "", "resume this session id")
	chatSessionsDeleteCmd.Flags().BoolVarP(&sessionDeleteForce, "force", "f", false, "skip confirmation")

	chatSessionsCmd.AddCommand(chatSessionsShowCmd)
	chatSessionsCmd.AddCommand(chatSessionsDeleteCmd)
	chatCmd.AddCommand(chatSessionsCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	ctx := context.Background()
	theme := defaultTheme

	if chatSession != "" {
		history, err := backend.GetSession(ctx, chatSession)
		if err != nil {
			return fmt.Errorf("load session: %w", err)
		}
		chatSt.SetSession(chatSession)
		chatSt.SetMessages(history)
		for _, msg := range history {
			printMessage(theme, msg)
		}
	} else {
		fmt.Println(theme.accentStyle().Render("Ask me anything about your data."))
	}
	fmt.Println(theme.hintStyle().Render("/new starts over, /quit leaves."))
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())

		switch {
		case input == "":
			// Blank input sends nothing.
			continue
		case input == "/quit" || input == "/exit":
			return scanner.Err()
		case input == "/new":
			chatSt.NewSession()
			fmt.Println(theme.hintStyle().Render("Started a new conversation."))
			continue
		}

		// Show the user message right away; it stays in the transcript
		// even if the request fails.
		userMsg := models.NewUserMessage(input)
		chatSt.Append(userMsg)

		answer, err := backend.SendMessage(ctx, input, chatSt.SessionID())
		if err != nil {
			fmt.Println(theme.errorStyle().Render(fmt.Sprintf("✗ %v", err)))
			continue
		}
		if answer.SessionID != "" {
			chatSt.SetSession(answer.SessionID)
		}

		botMsg := models.NewAssistantMessage(answer.Answer, answer.Sources)
		chatSt.Append(botMsg)
		printMessage(theme, botMsg)
	}
	return scanner.Err()
}

func printMessage(theme Theme, msg models.ChatMessage) {
	switch msg.Role {
	case models.RoleUser:
		fmt.Printf("> %s\n", msg.Content)
	default:
		fmt.Printf("\n%s\n", msg.Content)
		if len(msg.Sources) > 0 {
			fmt.Println()
			for _, src := range msg.Sources {
				fmt.Printf("  %s\n", theme.hintStyle().Render("• "+models.FormatSourceBadge(src)))
			}
		}
		fmt.Println()
	}
}

func runChatSessions(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	sessions, err := backend.ListSessions(context.Background())
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Println("No conversations yet. Start one with 'databot chat'.")
		return nil
	}

	fmt.Printf("Conversations (%d):\n\n", len(sessions))
	for _, s := range sessions {
		when := ""
		if !s.UpdatedAt.IsZero() {
			when = s.UpdatedAt.Format("2006-01-02 15:04")
		} else if !s.CreatedAt.IsZero() {
			when = s.CreatedAt.Format("2006-01-02 15:04")
		}
		fmt.Printf("  %s  %s  %d messages\n", s.ID, when, len(s.Messages))
	}
	fmt.Println("\nResume one with 'databot chat --session <id>'.")
	return nil
}

func runChatSessionsShow(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	messages, err := backend.GetSession(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}

	theme := defaultTheme
	for _, msg := range messages {
		printMessage(theme, msg)
	}
	return nil
}

func runChatSessionsDelete(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}
	id := args[0]

	if !sessionDeleteForce {
		fmt.Printf("About to delete conversation %s and its messages.\n", id)
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

	if err := backend.DeleteSession(context.Background(), id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if chatSt.SessionID() == id {
		chatSt.Clear()
	}

	fmt.Printf("Deleted conversation %s.\n", id)
	return nil
}
