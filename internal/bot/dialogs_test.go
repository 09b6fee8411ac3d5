package bot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atendebot/atende/internal/orders"
	"github.com/atendebot/atende/internal/runtime"
	"github.com/atendebot/atende/pkg/adapters/memory"
	"github.com/atendebot/atende/pkg/dialog"
	"github.com/atendebot/atende/pkg/ports"
)

type fixture struct {
	manager *runtime.Manager
	stacks  ports.StackStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := orders.NewMemoryStore()
	orders.SeedMemory(store)

	reg, err := NewRegistry(store)
	require.NoError(t, err)

	stacks := memory.NewStore()
	manager, err := runtime.NewManager(reg, stacks, DialogMenu)
	require.NoError(t, err)

	return &fixture{manager: manager, stacks: stacks}
}

func (f *fixture) turn(t *testing.T, conv, text string) []dialog.Activity {
	t.Helper()
	activities, err := f.manager.ProcessTurn(context.Background(), conv, dialog.Input{Text: text})
	require.NoError(t, err)
	return activities
}

func (f *fixture) depth(t *testing.T, conv string) int {
	t.Helper()
	stack, err := f.stacks.Load(context.Background(), conv)
	require.NoError(t, err)
	return stack.Depth()
}

func TestMenuOffersAllOptions(t *testing.T) {
	f := newFixture(t)

	activities := f.turn(t, "conv", "")
	require.Len(t, activities, 1)
	assert.Equal(t, "Escolha a opção desejada:", activities[0].Text)

	var labels []string
	for _, c := range activities[0].Choices {
		labels = append(labels, c.Label)
	}
	assert.Equal(t, []string{OptionPedidos, OptionProdutos, OptionExtrato}, labels)
}

func TestConsultarPedidosFlow(t *testing.T) {
	f := newFixture(t)
	conv := "conv-pedidos"

	f.turn(t, conv, "")
	activities := f.turn(t, conv, "Consultar Pedidos")
	require.Len(t, activities, 1)
	assert.Equal(t, "Qual o nome do cliente para a consulta?", activities[0].Text)
	assert.Equal(t, 2, f.depth(t, conv), "menu waits below the child dialog")

	activities = f.turn(t, conv, "Maria Silva")
	texts := activityTexts(activities)
	require.Len(t, texts, 3)
	assert.Equal(t, "Encontrei 2 pedido(s) para Maria Silva:", texts[0])
	assert.Contains(t, texts[1], "Notebook Gamer")
	assert.Contains(t, texts[2], "Fone Bluetooth")

	assert.Equal(t, 0, f.depth(t, conv), "conversation drains after the lookup")
}

func TestConsultarPedidosUnknownClient(t *testing.T) {
	f := newFixture(t)
	conv := "conv-nobody"

	f.turn(t, conv, "")
	f.turn(t, conv, "pedidos") // synonym
	activities := f.turn(t, conv, "Cliente Inexistente")

	texts := activityTexts(activities)
	require.Len(t, texts, 1)
	assert.Equal(t, "Nenhum pedido encontrado para Cliente Inexistente.", texts[0])
}

func TestConsultarProdutosFlowWithCardAndRepeat(t *testing.T) {
	f := newFixture(t)
	conv := "conv-produtos"

	f.turn(t, conv, "")
	activities := f.turn(t, conv, "2") // ordinal pick
	require.Len(t, activities, 1)
	assert.Equal(t, "Qual produto você deseja consultar?", activities[0].Text)

	activities = f.turn(t, conv, "Notebook Gamer")
	require.Len(t, activities, 2)
	require.NotNil(t, activities[0].Card)
	assert.Equal(t, "Notebook Gamer", activities[0].Card.Title)
	assert.Equal(t, "R$ 5499.90", activities[0].Card.Subtitle)
	require.NotEmpty(t, activities[0].Card.Buttons)
	assert.Equal(t, "Comprar", activities[0].Card.Buttons[0].Title)
	assert.Equal(t, "Deseja consultar outro produto? (sim/não)", activities[1].Text)

	// "sim" nests a fresh lookup.
	activities = f.turn(t, conv, "sim")
	require.Len(t, activities, 1)
	assert.Equal(t, "Qual produto você deseja consultar?", activities[0].Text)

	activities = f.turn(t, conv, "fone")
	require.NotNil(t, activities[0].Card)
	assert.Equal(t, "Fone Bluetooth", activities[0].Card.Title)

	// "não" unwinds everything.
	f.turn(t, conv, "não")
	assert.Equal(t, 0, f.depth(t, conv))
}

func TestConsultarProdutosNotFound(t *testing.T) {
	f := newFixture(t)
	conv := "conv-miss"

	f.turn(t, conv, "")
	f.turn(t, conv, "produtos")
	activities := f.turn(t, conv, "Geladeira")

	texts := activityTexts(activities)
	require.Len(t, texts, 2)
	assert.Contains(t, texts[0], "Não encontrei o produto")
	assert.Contains(t, texts[0], "Geladeira")
}

func TestExtratoComprasFlow(t *testing.T) {
	f := newFixture(t)
	conv := "conv-extrato"

	f.turn(t, conv, "")
	activities := f.turn(t, conv, "Extrato de Compras")
	require.Len(t, activities, 1)
	assert.Equal(t, "Qual o nome do cliente para o extrato?", activities[0].Text)

	activities = f.turn(t, conv, "Maria Silva")
	require.Len(t, activities, 1)
	assert.Contains(t, activities[0].Text, "Qual o ano do extrato?")

	activities = f.turn(t, conv, "2026")
	texts := activityTexts(activities)
	require.Len(t, texts, 1)
	assert.Equal(t, "Extrato de Maria Silva em 2026: 2 compra(s), total R$ 5849.80.", texts[0])

	assert.Equal(t, 0, f.depth(t, conv))
}

func TestExtratoComprasEmptyYear(t *testing.T) {
	f := newFixture(t)
	conv := "conv-vazio"

	f.turn(t, conv, "")
	f.turn(t, conv, "extrato")
	f.turn(t, conv, "Maria Silva")
	activities := f.turn(t, conv, "2020")

	texts := activityTexts(activities)
	require.Len(t, texts, 1)
	assert.Equal(t, "Nenhuma compra de Maria Silva em 2020.", texts[0])
}

func TestExtratoYearValidation(t *testing.T) {
	f := newFixture(t)
	conv := "conv-ano"

	f.turn(t, conv, "")
	f.turn(t, conv, "extrato")
	f.turn(t, conv, "Maria Silva")

	activities := f.turn(t, conv, "1850")
	require.Len(t, activities, 1)
	assert.Equal(t, "Informe um ano válido entre 2000 e 2100.", activities[0].Text)

	activities = f.turn(t, conv, "2026")
	assert.Contains(t, activities[0].Text, "Extrato de Maria Silva")
}

func TestMenuRetriesThenCancels(t *testing.T) {
	f := newFixture(t)
	conv := "conv-retry"

	f.turn(t, conv, "")

	for i := 0; i < 2; i++ {
		activities := f.turn(t, conv, "xyzzy")
		require.Len(t, activities, 1)
		assert.Equal(t, "Não entendi. Escolha uma das opções abaixo:", activities[0].Text)
	}

	activities := f.turn(t, conv, "xyzzy")
	require.Len(t, activities, 1)
	assert.Equal(t, "Tudo bem, operação cancelada.", activities[0].Text)
	assert.Equal(t, 0, f.depth(t, conv))

	// The next message starts a fresh menu.
	activities = f.turn(t, conv, "oi")
	assert.Equal(t, "Escolha a opção desejada:", activities[0].Text)
}

func TestMenuUnknownOptionAfterValidation(t *testing.T) {
	// The validator guards the menu, so processOptionStep only sees canonical
	// values; a direct call with garbage must still fail safe.
	out, err := processOptionStep(context.Background(), dialog.NewTurnContext("conv", dialog.Input{}), map[string]any{}, "qualquer coisa")
	assert.Error(t, err)
	assert.Zero(t, out)
}

func activityTexts(activities []dialog.Activity) []string {
	out := make([]string, 0, len(activities))
	for _, a := range activities {
		out = append(out, a.Text)
	}
	return out
}
