package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"infinity-realms-shop/internal/dto"
	"infinity-realms-shop/internal/middleware"
	"infinity-realms-shop/internal/model"
	"infinity-realms-shop/internal/service"
)

type ShopHandler struct {
	shopService     service.ShopService
	purchaseService service.PurchaseService
}

func NewShopHandler(shopService service.ShopService, purchaseService service.PurchaseService) *ShopHandler {
	return &ShopHandler{
		shopService:     shopService,
		purchaseService: purchaseService,
	}
}

func (h *ShopHandler) GetProducts(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": h.shopService.Products(),
	})
}

func (h *ShopHandler) CartTotal(c echo.Context) error {
	var req dto.CartTotalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	total, lines, err := h.shopService.CartTotal(req.Items)
	if err != nil {
		if errors.Is(err, model.ErrValidation) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to compute cart total"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"total": total,
		"items": lines,
	})
}

// GetExchangeRate reports NPR per USD for display prices. A zero rate tells
// the client to show a placeholder instead of a USD figure.
func (h *ShopHandler) GetExchangeRate(c echo.Context) error {
	rate, err := h.shopService.USDRate(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusOK, map[string]float64{"rate": 0})
	}
	return c.JSON(http.StatusOK, map[string]float64{"rate": rate})
}

func (h *ShopHandler) ProcessPayment(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ProcessPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	_, err := h.purchaseService.Submit(ctx, &req, c.RealIP())
	if err != nil {
		if errors.Is(err, model.ErrValidation) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing required payment fields"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to process payment"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Payment submitted successfully. Awaiting verification.",
	})
}

func (h *ShopHandler) GetPurchaseHistory(c echo.Context) error {
	ctx := c.Request().Context()

	username, _ := c.Get(middleware.UsernameKey).(string)
	purchases, err := h.purchaseService.HistoryFor(ctx, username)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get purchase history"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"purchases": purchases,
	})
}

func (h *ShopHandler) GetPopularItems(c echo.Context) error {
	ctx := c.Request().Context()

	popular, err := h.purchaseService.PopularItems(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get popular items"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"popular": popular,
	})
}
