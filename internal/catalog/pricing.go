package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"

	"infinity-realms-shop/internal/model"
)

// CartLine is one (item, quantity) pair from a client-held cart.
type CartLine struct {
	ItemID   string `json:"id"`
	Quantity int    `json:"quantity"`
}

// LineResult is a cart line priced against the current catalog and overlay.
// Lines whose item no longer exists price at zero and are flagged invalid
// rather than failing the whole cart.
type LineResult struct {
	ItemID    string          `json:"id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Invalid   bool            `json:"invalid,omitempty"`
}

// EffectivePrice applies a percentage discount to a base NPR price,
// rounding half away from zero. Percentages outside [0,90] are rejected.
func EffectivePrice(basePriceNPR int64, pct int) (int64, error) {
	if err := validatePercentage(pct); err != nil {
		return 0, err
	}
	price := decimal.NewFromInt(basePriceNPR).
		Mul(decimal.NewFromInt(int64(100 - pct))).
		Div(decimal.NewFromInt(100)).
		Round(0)
	return price.IntPart(), nil
}

// PriceOf resolves an item's unit price under the current overlay.
func PriceOf(item Item, store *DiscountStore) int64 {
	pct, ok := store.Resolve(item.ID)
	if !ok {
		return item.PriceNPR
	}
	price, err := EffectivePrice(item.PriceNPR, pct)
	if err != nil {
		// the store never holds an out-of-range percentage
		return item.PriceNPR
	}
	return price
}

// Total prices a cart against the live catalog and discount overlay.
// It is a pure read: totals always reflect the discount state at call time.
func Total(store *DiscountStore, lines []CartLine) (decimal.Decimal, []LineResult, error) {
	total := decimal.Zero
	results := make([]LineResult, 0, len(lines))
	for _, line := range lines {
		if line.Quantity < 1 {
			return decimal.Zero, nil, fmt.Errorf("%w: quantity must be at least 1 for item %q", model.ErrValidation, line.ItemID)
		}
		item, ok := Find(line.ItemID)
		if !ok {
			results = append(results, LineResult{
				ItemID:    line.ItemID,
				Quantity:  line.Quantity,
				UnitPrice: decimal.Zero,
				Subtotal:  decimal.Zero,
				Invalid:   true,
			})
			continue
		}
		unit := decimal.NewFromInt(PriceOf(item, store))
		subtotal := unit.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(subtotal)
		results = append(results, LineResult{
			ItemID:    item.ID,
			Name:      item.Name,
			Quantity:  line.Quantity,
			UnitPrice: unit,
			Subtotal:  subtotal,
		})
	}
	return total, results, nil
}
