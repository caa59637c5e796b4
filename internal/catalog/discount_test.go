package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infinity-realms-shop/internal/model"
)

func TestDiscountStore_ApplyAndResolve(t *testing.T) {
	store := NewDiscountStore()

	_, ok := store.Resolve("vip")
	assert.False(t, ok)

	require.NoError(t, store.ApplyProduct("vip", 25))
	pct, ok := store.Resolve("vip")
	require.True(t, ok)
	assert.Equal(t, 25, pct)

	// re-applying overwrites
	require.NoError(t, store.ApplyProduct("vip", 40))
	pct, _ = store.Resolve("vip")
	assert.Equal(t, 40, pct)

	store.RemoveProduct("vip")
	_, ok = store.Resolve("vip")
	assert.False(t, ok)
}

func TestDiscountStore_Global(t *testing.T) {
	store := NewDiscountStore()

	require.NoError(t, store.ApplyGlobal(10))
	pct, ok := store.Resolve("anything")
	require.True(t, ok)
	assert.Equal(t, 10, pct)
	require.NotNil(t, store.GlobalSale())
	assert.Equal(t, 10, store.GlobalSale().Percentage)

	store.RemoveGlobal()
	_, ok = store.Resolve("anything")
	assert.False(t, ok)
	assert.Nil(t, store.GlobalSale())
}

func TestDiscountStore_PerProductOverridesGlobal(t *testing.T) {
	store := NewDiscountStore()
	require.NoError(t, store.ApplyGlobal(50))
	require.NoError(t, store.ApplyProduct("vip", 20))

	pct, ok := store.Resolve("vip")
	require.True(t, ok)
	assert.Equal(t, 20, pct)

	pct, ok = store.Resolve("mvp")
	require.True(t, ok)
	assert.Equal(t, 50, pct)
}

func TestDiscountStore_RejectsBadPercentage(t *testing.T) {
	store := NewDiscountStore()
	for _, pct := range []int{-5, 91, 150} {
		assert.ErrorIs(t, store.ApplyProduct("vip", pct), model.ErrValidation)
		assert.ErrorIs(t, store.ApplyGlobal(pct), model.ErrValidation)
	}
	assert.ErrorIs(t, store.ApplyProduct("", 10), model.ErrValidation)
}

func TestDiscountStore_ProductSalesReturnsCopy(t *testing.T) {
	store := NewDiscountStore()
	require.NoError(t, store.ApplyProduct("vip", 15))

	sales := store.ProductSales()
	require.Len(t, sales, 1)
	delete(sales, "vip")

	// mutating the copy must not touch the store
	pct, ok := store.Resolve("vip")
	require.True(t, ok)
	assert.Equal(t, 15, pct)
}
