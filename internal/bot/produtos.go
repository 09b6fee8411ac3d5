package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/atendebot/atende/internal/orders"
	"github.com/atendebot/atende/pkg/dialog"
)

// produtosDialog looks up a catalog product and renders it as a hero card.
// Its last step can re-begin the dialog itself, nesting a fresh lookup.
func produtosDialog(store orders.Store) *dialog.Definition {
	return &dialog.Definition{
		Name: DialogProdutos,
		Uses: []string{DialogProdutos},
		Steps: []dialog.StepFunc{
			func(ctx context.Context, tc *dialog.TurnContext, state map[string]any, result any) (dialog.StepOutcome, error) {
				return dialog.Prompt(dialog.PromptRequest{
					Kind:      dialog.PromptText,
					Text:      "Qual produto você deseja consultar?",
					RetryText: "Não consegui ler o nome. Qual produto você deseja consultar?",
				}), nil
			},
			func(ctx context.Context, tc *dialog.TurnContext, state map[string]any, result any) (dialog.StepOutcome, error) {
				name, _ := result.(string)
				p, err := store.ProductByName(ctx, name)
				switch {
				case errors.Is(err, orders.ErrNotFound):
					tc.SendText(fmt.Sprintf("Não encontrei o produto %q em nosso catálogo.", name))
				case err != nil:
					return dialog.StepOutcome{}, fmt.Errorf("consultar produto %q: %w", name, err)
				default:
					tc.SendActivity(dialog.Activity{Card: productCard(p)})
				}

				return dialog.Prompt(dialog.PromptRequest{
					Kind: dialog.PromptConfirm,
					Text: "Deseja consultar outro produto? (sim/não)",
				}), nil
			},
			func(ctx context.Context, tc *dialog.TurnContext, state map[string]any, result any) (dialog.StepOutcome, error) {
				if again, _ := result.(bool); again {
					return dialog.Begin(DialogProdutos, nil), nil
				}
				return dialog.End(nil), nil
			},
		},
	}
}

func productCard(p orders.Product) *dialog.HeroCard {
	card := &dialog.HeroCard{
		Title:    p.Name,
		Subtitle: fmt.Sprintf("R$ %.2f", p.Price),
		Text:     p.Description,
		Buttons: []dialog.CardAction{
			{Title: "Comprar", Value: fmt.Sprintf("comprar:%d", p.ID)},
		},
	}
	if p.ImageURL != "" {
		card.Images = []string{p.ImageURL}
	}
	return card
}
