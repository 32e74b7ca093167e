package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "What DataBot is and how to get started",
	Long:  "Product overview, plans, and the getting-started path. Needs no account.",
	Run:   runInfo,
}

func runInfo(cmd *cobra.Command, args []string) {
	theme := defaultTheme

	fmt.Println(theme.accentStyle().Render("DataBot — a chatbot trained on your data"))
	fmt.Println()
	fmt.Println(`Feed it your docs, FAQs, and notes; it answers questions grounded in
that content and cites where each answer came from.

How it works:
  1. Register text or upload documents (pdf, doc, docx, txt, md).
  2. The platform chunks and embeds your content automatically.
  3. Chat with your bot here, or embed it on your site with an API key.

Plans:
  free        try it out with a small knowledge base
  pro         more messages, more data, faster rate limits
  enterprise  custom limits

Get started:
  databot register you@example.com
  databot data add --title "FAQ" --file faq.md
  databot chat`)
	fmt.Println()
	fmt.Println(theme.hintStyle().Render("Already signed up? 'databot login' restores your session."))
}
