package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/atendebot/atende/internal/config"
	"github.com/atendebot/atende/internal/presentation/tui"
	"github.com/atendebot/atende/pkg/dialog"
)

// ChatOptions configures the interactive terminal chat.
type ChatOptions struct {
	Config         config.Config
	Debug          bool
	ConversationID string
	UserID         string
}

// RunChat drives an interactive conversation with the assistant on the
// terminal. It exits on "sair", Ctrl+D or a cancelled context.
func RunChat(ctx context.Context, opts ChatOptions) error {
	logger := NewLogger(opts.Config.Log, opts.Debug)

	app, err := BuildApp(ctx, opts.Config, logger, nil)
	if err != nil {
		return err
	}
	defer app.Close()

	conversationID := opts.ConversationID
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	tui.PrintBanner()
	render := tui.NewRenderer()
	fmt.Printf(">>> Conversa '%s'. Digite 'sair' para encerrar.\n", conversationID)

	// An empty first turn starts the root menu.
	if err := runTurn(ctx, app, render, conversationID, dialog.Input{UserID: opts.UserID}); err != nil {
		return err
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		text := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(text, "sair") {
			fmt.Println(">>> Até logo!")
			return nil
		}
		if text == "" {
			continue
		}

		if err := runTurn(ctx, app, render, conversationID, dialog.Input{UserID: opts.UserID, Text: text}); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

func runTurn(ctx context.Context, app *App, render func(string) (string, error), conversationID string, input dialog.Input) error {
	activities, err := app.Bot.ProcessTurn(ctx, conversationID, input)
	if err != nil {
		return fmt.Errorf("process turn: %w", err)
	}
	for _, a := range activities {
		md := tui.ActivityMarkdown(a)
		if out, err := render(md); err == nil {
			fmt.Print(out)
		} else {
			fmt.Println(md)
		}
	}
	return nil
}
