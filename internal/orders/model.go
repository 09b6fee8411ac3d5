// Package orders is the order-management collaborator: plain
// persistence-backed records consulted and mutated by the REST API and by the
// bot's dialogs. It has no engine-level invariants beyond basic validation.
package orders

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Order mirrors the order resource of the management API. Dates use the
// YYYY-MM-DD wire format.
type Order struct {
	ID          int64   `json:"id_pedido"`
	ClientName  string  `json:"nome_cliente"`
	ProductName string  `json:"nome_produto"`
	OrderDate   string  `json:"data_pedido"`
	Total       float64 `json:"valor_total"`
	Status      string  `json:"status"`
	UserID      int64   `json:"id_usuario"`
}

// Validate checks the required order fields.
func (o Order) Validate() error {
	if o.ClientName == "" || o.ProductName == "" || o.Total <= 0 {
		return fmt.Errorf("nome do cliente, nome do produto e valor total são obrigatórios")
	}
	return nil
}

// Product is a catalog entry consulted by the product dialog.
type Product struct {
	ID          int64   `json:"id_produto"`
	Name        string  `json:"nome"`
	Price       float64 `json:"preco"`
	Description string  `json:"descricao,omitempty"`
	ImageURL    string  `json:"imagem,omitempty"`
}
