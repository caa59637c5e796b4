package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infinity-realms-shop/internal/model"
)

func TestEffectivePrice(t *testing.T) {
	tests := []struct {
		name string
		base int64
		pct  int
		want int64
	}{
		{"no discount", 100, 0, 100},
		{"twenty percent", 100, 20, 80},
		{"max discount", 100, 90, 10},
		{"rounds half up", 350, 33, 235}, // 234.5
		{"rounds down", 30, 33, 20},      // 20.1
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EffectivePrice(tt.base, tt.pct)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEffectivePrice_RejectsOutOfRange(t *testing.T) {
	for _, pct := range []int{-1, 91, 100, 200} {
		_, err := EffectivePrice(100, pct)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrValidation)
	}
}

func TestEffectivePrice_MonotonicallyNonIncreasing(t *testing.T) {
	for _, base := range []int64{30, 100, 350, 1000} {
		prev := base
		for pct := 0; pct <= 90; pct++ {
			price, err := EffectivePrice(base, pct)
			require.NoError(t, err)
			assert.LessOrEqual(t, price, prev, "base %d pct %d", base, pct)
			prev = price
		}
	}
}

func TestTotal_NoDiscounts(t *testing.T) {
	store := NewDiscountStore()
	total, lines, err := Total(store, []CartLine{
		{ItemID: "vip", Quantity: 1},
		{ItemID: "manaslu-key", Quantity: 2},
	})
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(160)), "got %s", total)
	require.Len(t, lines, 2)
	assert.False(t, lines[0].Invalid)
	assert.True(t, lines[1].Subtotal.Equal(decimal.NewFromInt(60)))
}

func TestTotal_ReflectsDiscountAtCallTime(t *testing.T) {
	store := NewDiscountStore()
	cart := []CartLine{{ItemID: "vip", Quantity: 3}}

	total, _, err := Total(store, cart)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(300)))

	require.NoError(t, store.ApplyProduct("vip", 20))

	total, _, err = Total(store, cart)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(240)), "got %s", total)
}

func TestTotal_UnknownItemPricesAtZero(t *testing.T) {
	store := NewDiscountStore()
	total, lines, err := Total(store, []CartLine{
		{ItemID: "removed-item", Quantity: 2},
		{ItemID: "vip", Quantity: 1},
	})
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(100)))
	require.Len(t, lines, 2)
	assert.True(t, lines[0].Invalid)
	assert.True(t, lines[0].UnitPrice.IsZero())
	assert.False(t, lines[1].Invalid)
}

func TestTotal_RejectsBadQuantity(t *testing.T) {
	store := NewDiscountStore()
	_, _, err := Total(store, []CartLine{{ItemID: "vip", Quantity: 0}})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestPriceOf_PerItemOverridesGlobal(t *testing.T) {
	store := NewDiscountStore()
	require.NoError(t, store.ApplyGlobal(50))
	require.NoError(t, store.ApplyProduct("vip", 20))

	vip, ok := Find("vip")
	require.True(t, ok)
	assert.Equal(t, int64(80), PriceOf(vip, store))

	// item without its own sale falls back to the global one
	mvp, ok := Find("mvp")
	require.True(t, ok)
	assert.Equal(t, int64(100), PriceOf(mvp, store))
}
