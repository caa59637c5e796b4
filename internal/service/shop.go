package service

import (
	"context"

	"github.com/shopspring/decimal"

	"infinity-realms-shop/internal/catalog"
	"infinity-realms-shop/internal/client"
	"infinity-realms-shop/internal/dto"
	"infinity-realms-shop/internal/logger"
)

type ShopService interface {
	// Products returns the catalog with the current discount overlay applied.
	Products() []dto.ProductView
	// CartTotal prices a cart fresh against the catalog and overlay, so the
	// result always reflects the discount state at call time.
	CartTotal(lines []catalog.CartLine) (decimal.Decimal, []catalog.LineResult, error)
	USDRate(ctx context.Context) (float64, error)
}

type shopServiceImpl struct {
	log            *logger.Logger
	discounts      *catalog.DiscountStore
	exchangeClient client.ExchangeClient
}

func NewShopService(
	log *logger.Logger,
	discounts *catalog.DiscountStore,
	exchangeClient client.ExchangeClient,
) ShopService {
	return &shopServiceImpl{
		log:            log.With("service", "shop"),
		discounts:      discounts,
		exchangeClient: exchangeClient,
	}
}

func (s *shopServiceImpl) Products() []dto.ProductView {
	items := catalog.All()
	views := make([]dto.ProductView, len(items))
	for i, item := range items {
		view := dto.ProductView{Item: item, PriceNPR: item.PriceNPR}
		if pct, ok := s.discounts.Resolve(item.ID); ok {
			effective, err := catalog.EffectivePrice(item.PriceNPR, pct)
			if err == nil {
				original := item.PriceNPR
				view.PriceNPR = effective
				view.OriginalPrice = &original
				view.SalePercentage = &pct
			}
		}
		views[i] = view
	}
	return views
}

func (s *shopServiceImpl) CartTotal(lines []catalog.CartLine) (decimal.Decimal, []catalog.LineResult, error) {
	return catalog.Total(s.discounts, lines)
}

func (s *shopServiceImpl) USDRate(ctx context.Context) (float64, error) {
	rate, err := s.exchangeClient.USDRate(ctx)
	if err != nil {
		s.log.Warnw("exchange rate fetch failed", "error", err)
		return 0, err
	}
	return rate, nil
}
