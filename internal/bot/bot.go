// Package bot defines the assistant's dialogs. Each dialog is a plain
// waterfall participant: the orchestration semantics live in the engine, the
// steps here only hold the shop's domain logic.
package bot

import (
	"github.com/atendebot/atende/internal/orders"
	"github.com/atendebot/atende/pkg/dialog"
)

// Registered dialog names.
const (
	DialogMenu     = "menu"
	DialogPedidos  = "consultar_pedidos"
	DialogProdutos = "consultar_produtos"
	DialogExtrato  = "extrato_compras"
)

// Menu options, offered as a choice prompt by the root dialog.
const (
	OptionPedidos  = "Consultar Pedidos"
	OptionProdutos = "Consultar Produtos"
	OptionExtrato  = "Extrato de Compras"
)

// NewRegistry registers all dialogs against the given order store. The
// returned registry is validated by the engine at startup.
func NewRegistry(store orders.Store) (*dialog.Registry, error) {
	reg := dialog.NewRegistry()
	for _, def := range []*dialog.Definition{
		menuDialog(),
		pedidosDialog(store),
		produtosDialog(store),
		extratoDialog(store),
	} {
		if err := reg.Register(def); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
