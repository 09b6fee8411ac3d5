package orders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryOrderCRUD(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	created, err := store.CreateOrder(ctx, Order{
		ClientName: "Ana Costa", ProductName: "Fone Bluetooth", Total: 349.90,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := store.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	got.Status = "cancelado"
	_, err = store.UpdateOrder(ctx, got)
	require.NoError(t, err)
	got, err = store.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelado", got.Status)

	require.NoError(t, store.DeleteOrder(ctx, created.ID))
	_, err = store.GetOrder(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateOrderValidatesFields(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.CreateOrder(context.Background(), Order{ClientName: "Ana"})
	assert.Error(t, err)
}

func TestOrdersByClientMatchesSubstring(t *testing.T) {
	store := NewMemoryStore()
	SeedMemory(store)
	ctx := context.Background()

	list, err := store.OrdersByClient(ctx, "silva")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = store.OrdersByClient(ctx, "JOÃO")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Smartphone X", list[0].ProductName)

	list, err = store.OrdersByClient(ctx, "ninguém")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMatchProduct(t *testing.T) {
	products := []Product{
		{ID: 1, Name: "Notebook Gamer"},
		{ID: 2, Name: "Notebook Básico"},
		{ID: 3, Name: "Smartphone X"},
	}

	p, err := matchProduct(products, "notebook gamer")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)

	// Unambiguous partial match.
	p, err = matchProduct(products, "smart")
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.ID)

	// Ambiguous partial match is rejected.
	_, err = matchProduct(products, "notebook")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = matchProduct(products, "")
	assert.ErrorIs(t, err, ErrNotFound)
}
