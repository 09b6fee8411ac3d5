package orders

import "context"

// Store is the persistence boundary for orders and the product catalog.
// Dialog steps treat any failure here as step-local: the engine converts it
// to a failed dialog end instead of a stack-level fault.
type Store interface {
	ListOrders(ctx context.Context) ([]Order, error)
	GetOrder(ctx context.Context, id int64) (Order, error)
	CreateOrder(ctx context.Context, o Order) (Order, error)
	UpdateOrder(ctx context.Context, o Order) (Order, error)
	DeleteOrder(ctx context.Context, id int64) error

	// OrdersByClient lists orders whose client name contains the given text,
	// case-insensitively.
	OrdersByClient(ctx context.Context, name string) ([]Order, error)

	ListProducts(ctx context.Context) ([]Product, error)

	// ProductByName finds a product by exact or partial name match,
	// case-insensitively. Ambiguous partial matches return ErrNotFound.
	ProductByName(ctx context.Context, name string) (Product, error)
}
