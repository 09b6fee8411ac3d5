package orders

import "context"

// SampleProducts is the demo catalog loaded when the store is empty.
var SampleProducts = []Product{
	{Name: "Notebook Gamer", Price: 5499.90, Description: "Notebook com placa de vídeo dedicada e 16GB de RAM.", ImageURL: "https://example.com/img/notebook-gamer.png"},
	{Name: "Smartphone X", Price: 2899.00, Description: "Tela de 6.5\", câmera tripla e 256GB de armazenamento.", ImageURL: "https://example.com/img/smartphone-x.png"},
	{Name: "Fone Bluetooth", Price: 349.90, Description: "Fone sem fio com cancelamento de ruído ativo.", ImageURL: "https://example.com/img/fone-bluetooth.png"},
}

// SampleOrders is the demo order book loaded when the store is empty.
var SampleOrders = []Order{
	{ClientName: "Maria Silva", ProductName: "Notebook Gamer", OrderDate: "2026-03-14", Total: 5499.90, Status: "entregue", UserID: 1},
	{ClientName: "Maria Silva", ProductName: "Fone Bluetooth", OrderDate: "2026-05-02", Total: 349.90, Status: "em transporte", UserID: 1},
	{ClientName: "João Souza", ProductName: "Smartphone X", OrderDate: "2026-04-20", Total: 2899.00, Status: "processando", UserID: 2},
}

// SeedMemory fills an in-memory store with the demo records.
func SeedMemory(store *MemoryStore) {
	for _, p := range SampleProducts {
		store.AddProduct(p)
	}
	ctx := context.Background()
	for _, o := range SampleOrders {
		_, _ = store.CreateOrder(ctx, o)
	}
}

// SeedRedis fills a Redis store with the demo records if it is empty.
func SeedRedis(ctx context.Context, store *RedisStore) error {
	products, err := store.ListProducts(ctx)
	if err != nil {
		return err
	}
	if len(products) > 0 {
		return nil
	}
	for _, p := range SampleProducts {
		if _, err := store.AddProduct(ctx, p); err != nil {
			return err
		}
	}
	for _, o := range SampleOrders {
		if _, err := store.CreateOrder(ctx, o); err != nil {
			return err
		}
	}
	return nil
}
