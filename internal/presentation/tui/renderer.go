package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/atendebot/atende/pkg/dialog"
)

// NewRenderer returns a function that renders markdown using glamour.
// It auto-detects the terminal background for the style.
func NewRenderer() func(string) (string, error) {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// ActivityMarkdown flattens a bot activity into markdown for terminal
// rendering: choices become a numbered list, hero cards a small section.
func ActivityMarkdown(a dialog.Activity) string {
	var b strings.Builder

	if a.Text != "" {
		b.WriteString(a.Text)
		b.WriteString("\n")
	}
	if a.Card != nil {
		fmt.Fprintf(&b, "### %s\n", a.Card.Title)
		if a.Card.Subtitle != "" {
			fmt.Fprintf(&b, "**%s**\n\n", a.Card.Subtitle)
		}
		if a.Card.Text != "" {
			b.WriteString(a.Card.Text)
			b.WriteString("\n")
		}
		for _, btn := range a.Card.Buttons {
			fmt.Fprintf(&b, "- %s\n", btn.Title)
		}
	}
	for i, c := range a.Choices {
		fmt.Fprintf(&b, "%d. %s\n", i+1, c.Title)
	}
	return b.String()
}
