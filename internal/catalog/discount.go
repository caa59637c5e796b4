package catalog

import (
	"fmt"
	"sync"
	"time"

	"infinity-realms-shop/internal/model"
)

// Sale is one percentage discount, either attached to a product or global.
type Sale struct {
	Percentage int       `json:"percentage"`
	AppliedAt  time.Time `json:"appliedAt"`
}

// DiscountStore holds the mutable discount overlay on top of the fixed
// catalog. It lives in process memory only; per-item and global sales are
// lost on restart. Concurrent admin writes to the same entry are
// last-write-wins, the mutex only keeps the map itself race-free.
type DiscountStore struct {
	mu       sync.RWMutex
	products map[string]Sale
	global   *Sale
}

func NewDiscountStore() *DiscountStore {
	return &DiscountStore{
		products: make(map[string]Sale),
	}
}

func validatePercentage(pct int) error {
	if pct < 0 || pct > 90 {
		return fmt.Errorf("%w: percentage must be between 0 and 90, got %d", model.ErrValidation, pct)
	}
	return nil
}

func (s *DiscountStore) ApplyProduct(productID string, pct int) error {
	if productID == "" {
		return fmt.Errorf("%w: product id required", model.ErrValidation)
	}
	if err := validatePercentage(pct); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[productID] = Sale{Percentage: pct, AppliedAt: time.Now()}
	return nil
}

func (s *DiscountStore) RemoveProduct(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, productID)
}

func (s *DiscountStore) ApplyGlobal(pct int) error {
	if err := validatePercentage(pct); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.global = &Sale{Percentage: pct, AppliedAt: time.Now()}
	return nil
}

func (s *DiscountStore) RemoveGlobal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.global = nil
}

// Resolve returns the discount percentage in effect for a product.
// A per-product sale overrides the global one when both are set.
func (s *DiscountStore) Resolve(productID string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sale, ok := s.products[productID]; ok {
		return sale.Percentage, true
	}
	if s.global != nil {
		return s.global.Percentage, true
	}
	return 0, false
}

// ProductSales returns a copy of the per-product sale map for the admin panel.
func (s *DiscountStore) ProductSales() map[string]Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]Sale, len(s.products))
	for id, sale := range s.products {
		out[id] = sale
	}
	return out
}

func (s *DiscountStore) GlobalSale() *Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.global == nil {
		return nil
	}
	sale := *s.global
	return &sale
}
