package atende_test

import (
	"context"
	"fmt"

	"github.com/atendebot/atende"
	"github.com/atendebot/atende/pkg/adapters/memory"
	"github.com/atendebot/atende/pkg/dialog"
)

// Example shows the minimal wiring: one dialog, an in-memory store, and two
// turns of conversation.
func Example() {
	reg := dialog.NewRegistry()
	_ = reg.Register(&dialog.Definition{
		Name: "saudacao",
		Steps: []dialog.StepFunc{
			func(ctx context.Context, tc *dialog.TurnContext, state map[string]any, result any) (dialog.StepOutcome, error) {
				return dialog.Prompt(dialog.PromptRequest{
					Kind: dialog.PromptText,
					Text: "Qual é o seu nome?",
				}), nil
			},
			func(ctx context.Context, tc *dialog.TurnContext, state map[string]any, result any) (dialog.StepOutcome, error) {
				tc.SendText(fmt.Sprintf("Olá, %v! Como posso ajudar?", result))
				return dialog.End(nil), nil
			},
		},
	})

	bot, err := atende.New(reg, memory.NewStore(), "saudacao")
	if err != nil {
		fmt.Println(err)
		return
	}

	ctx := context.Background()
	for _, text := range []string{"", "Maria"} {
		activities, err := bot.ProcessTurn(ctx, "conv-1", dialog.Input{Text: text})
		if err != nil {
			fmt.Println(err)
			return
		}
		for _, a := range activities {
			fmt.Println(a.Text)
		}
	}

	// Output:
	// Qual é o seu nome?
	// Olá, Maria! Como posso ajudar?
}
