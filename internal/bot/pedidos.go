package bot

import (
	"context"
	"fmt"

	"github.com/atendebot/atende/internal/orders"
	"github.com/atendebot/atende/pkg/dialog"
)

// pedidosDialog looks up a client's orders.
func pedidosDialog(store orders.Store) *dialog.Definition {
	return &dialog.Definition{
		Name: DialogPedidos,
		Steps: []dialog.StepFunc{
			func(ctx context.Context, tc *dialog.TurnContext, state map[string]any, result any) (dialog.StepOutcome, error) {
				return dialog.Prompt(dialog.PromptRequest{
					Kind:      dialog.PromptText,
					Text:      "Qual o nome do cliente para a consulta?",
					RetryText: "Preciso de um nome para consultar. Qual o nome do cliente?",
				}), nil
			},
			func(ctx context.Context, tc *dialog.TurnContext, state map[string]any, result any) (dialog.StepOutcome, error) {
				name, _ := result.(string)
				list, err := store.OrdersByClient(ctx, name)
				if err != nil {
					return dialog.StepOutcome{}, fmt.Errorf("consultar pedidos de %q: %w", name, err)
				}
				if len(list) == 0 {
					tc.SendText(fmt.Sprintf("Nenhum pedido encontrado para %s.", name))
					return dialog.End(0), nil
				}

				tc.SendText(fmt.Sprintf("Encontrei %d pedido(s) para %s:", len(list), name))
				for _, o := range list {
					tc.SendText(fmt.Sprintf("Pedido #%d — %s — R$ %.2f — %s (%s)",
						o.ID, o.ProductName, o.Total, o.Status, o.OrderDate))
				}
				return dialog.End(len(list)), nil
			},
		},
	}
}
