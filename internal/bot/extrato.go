package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/atendebot/atende/internal/orders"
	"github.com/atendebot/atende/pkg/dialog"
)

// statementOptions is the typed view of the extrato dialog's local state.
type statementOptions struct {
	Cliente string  `mapstructure:"cliente"`
	Ano     float64 `mapstructure:"ano"`
}

func float64Ptr(v float64) *float64 { return &v }

// extratoDialog builds a purchase statement: client name, year, then the sum
// of that client's orders within the year.
func extratoDialog(store orders.Store) *dialog.Definition {
	return &dialog.Definition{
		Name: DialogExtrato,
		Steps: []dialog.StepFunc{
			func(ctx context.Context, tc *dialog.TurnContext, state map[string]any, result any) (dialog.StepOutcome, error) {
				return dialog.Prompt(dialog.PromptRequest{
					Kind:      dialog.PromptText,
					Text:      "Qual o nome do cliente para o extrato?",
					RetryText: "Preciso de um nome. Qual o nome do cliente para o extrato?",
				}), nil
			},
			func(ctx context.Context, tc *dialog.TurnContext, state map[string]any, result any) (dialog.StepOutcome, error) {
				state["cliente"] = result
				return dialog.Prompt(dialog.PromptRequest{
					Kind:      dialog.PromptNumber,
					Text:      "Qual o ano do extrato? (ex: 2026)",
					RetryText: "Informe um ano válido entre 2000 e 2100.",
					Min:       float64Ptr(2000),
					Max:       float64Ptr(2100),
				}), nil
			},
			func(ctx context.Context, tc *dialog.TurnContext, state map[string]any, result any) (dialog.StepOutcome, error) {
				state["ano"] = result

				var opts statementOptions
				if err := dialog.DecodeOptions(state, &opts); err != nil {
					return dialog.StepOutcome{}, fmt.Errorf("decode statement options: %w", err)
				}
				year := int(opts.Ano)

				list, err := store.OrdersByClient(ctx, opts.Cliente)
				if err != nil {
					return dialog.StepOutcome{}, fmt.Errorf("extrato de %q: %w", opts.Cliente, err)
				}

				var total float64
				var count int
				prefix := fmt.Sprintf("%04d-", year)
				for _, o := range list {
					if strings.HasPrefix(o.OrderDate, prefix) {
						total += o.Total
						count++
					}
				}

				if count == 0 {
					tc.SendText(fmt.Sprintf("Nenhuma compra de %s em %d.", opts.Cliente, year))
					return dialog.End(0.0), nil
				}
				tc.SendText(fmt.Sprintf("Extrato de %s em %d: %d compra(s), total R$ %.2f.",
					opts.Cliente, year, count, total))
				return dialog.End(total), nil
			},
		},
	}
}
