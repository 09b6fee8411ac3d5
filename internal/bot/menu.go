package bot

import (
	"context"
	"fmt"

	"github.com/atendebot/atende/pkg/dialog"
)

// menuDialog is the conversation's root: it offers the service areas and hands
// control to the chosen child dialog.
func menuDialog() *dialog.Definition {
	return &dialog.Definition{
		Name: DialogMenu,
		Uses: []string{DialogPedidos, DialogProdutos, DialogExtrato},
		Steps: []dialog.StepFunc{
			promptOptionStep,
			processOptionStep,
		},
	}
}

func promptOptionStep(ctx context.Context, tc *dialog.TurnContext, state map[string]any, result any) (dialog.StepOutcome, error) {
	return dialog.Prompt(dialog.PromptRequest{
		Kind:      dialog.PromptChoice,
		Text:      "Escolha a opção desejada:",
		RetryText: "Não entendi. Escolha uma das opções abaixo:",
		Choices: []dialog.Choice{
			dialog.NewChoice(OptionPedidos, "pedidos", "meus pedidos"),
			dialog.NewChoice(OptionProdutos, "produtos"),
			dialog.NewChoice(OptionExtrato, "extrato"),
		},
	}), nil
}

func processOptionStep(ctx context.Context, tc *dialog.TurnContext, state map[string]any, result any) (dialog.StepOutcome, error) {
	option, _ := result.(string)
	switch option {
	case OptionPedidos:
		return dialog.Begin(DialogPedidos, nil), nil
	case OptionProdutos:
		return dialog.Begin(DialogProdutos, nil), nil
	case OptionExtrato:
		return dialog.Begin(DialogExtrato, nil), nil
	}
	return dialog.StepOutcome{}, fmt.Errorf("opção desconhecida: %q", option)
}
