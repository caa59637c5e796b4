package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"infinity-realms-shop/internal/dto"
	"infinity-realms-shop/internal/model"
	"infinity-realms-shop/internal/service"
)

type AdminHandler struct {
	adminService    service.AdminService
	userService     service.UserService
	purchaseService service.PurchaseService
	shopService     service.ShopService
}

func NewAdminHandler(
	adminService service.AdminService,
	userService service.UserService,
	purchaseService service.PurchaseService,
	shopService service.ShopService,
) *AdminHandler {
	return &AdminHandler{
		adminService:    adminService,
		userService:     userService,
		purchaseService: purchaseService,
		shopService:     shopService,
	}
}

func adminFail(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]interface{}{"ok": false, "error": message})
}

func (h *AdminHandler) Login(c echo.Context) error {
	var req dto.AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		return adminFail(c, http.StatusBadRequest, "invalid request body")
	}

	token, err := h.adminService.Login(req.Password)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]interface{}{"ok": false})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"ok": true, "token": token})
}

func (h *AdminHandler) GetUsers(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return adminFail(c, http.StatusInternalServerError, "Failed to get users")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"ok": true, "users": users})
}

func (h *AdminHandler) GetPurchases(c echo.Context) error {
	purchases, err := h.purchaseService.List(c.Request().Context())
	if err != nil {
		return adminFail(c, http.StatusInternalServerError, "Failed to get purchases")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"ok": true, "purchases": purchases})
}

func (h *AdminHandler) GetProducts(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"ok":       true,
		"products": h.shopService.Products(),
	})
}

func (h *AdminHandler) GetProductSales(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"ok":    true,
		"sales": h.adminService.ProductSales(),
	})
}

func (h *AdminHandler) VerifyPurchase(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.VerifyPurchaseRequest
	if err := c.Bind(&req); err != nil {
		return adminFail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.PurchaseID == "" {
		return adminFail(c, http.StatusBadRequest, "missing purchaseId")
	}

	if err := h.purchaseService.Verify(ctx, req.PurchaseID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return adminFail(c, http.StatusNotFound, "purchase not found")
		}
		return adminFail(c, http.StatusInternalServerError, "Failed to verify purchase")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"ok": true})
}

func (h *AdminHandler) ApplyGlobalSale(c echo.Context) error {
	var req dto.ApplyGlobalSaleRequest
	if err := c.Bind(&req); err != nil {
		return adminFail(c, http.StatusBadRequest, "invalid request body")
	}

	if err := h.adminService.ApplyGlobalSale(req.Percentage); err != nil {
		return adminFail(c, http.StatusBadRequest, "Invalid percentage")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"ok":      true,
		"message": fmt.Sprintf("Applied %d%% sale to all products", req.Percentage),
	})
}

func (h *AdminHandler) RemoveGlobalSale(c echo.Context) error {
	h.adminService.RemoveGlobalSale()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"ok":      true,
		"message": "Removed sale from all products",
	})
}

func (h *AdminHandler) ApplyProductSale(c echo.Context) error {
	var req dto.ApplyProductSaleRequest
	if err := c.Bind(&req); err != nil {
		return adminFail(c, http.StatusBadRequest, "invalid request body")
	}

	if err := h.adminService.ApplyProductSale(req.ProductID, req.Percentage); err != nil {
		return adminFail(c, http.StatusBadRequest, "Invalid product ID or percentage")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"ok":      true,
		"message": fmt.Sprintf("Applied %d%% sale to product", req.Percentage),
	})
}

func (h *AdminHandler) RemoveProductSale(c echo.Context) error {
	var req dto.RemoveProductSaleRequest
	if err := c.Bind(&req); err != nil {
		return adminFail(c, http.StatusBadRequest, "invalid request body")
	}

	if err := h.adminService.RemoveProductSale(req.ProductID); err != nil {
		return adminFail(c, http.StatusBadRequest, "Product ID required")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"ok":      true,
		"message": "Removed sale from product",
	})
}

func (h *AdminHandler) ClearDatabase(c echo.Context) error {
	if err := h.adminService.ClearDatabase(c.Request().Context()); err != nil {
		return adminFail(c, http.StatusInternalServerError, "Failed to clear database")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"ok":      true,
		"message": "Database cleared successfully",
	})
}

func (h *AdminHandler) Announce(c echo.Context) error {
	var req dto.AnnounceRequest
	if err := c.Bind(&req); err != nil {
		return adminFail(c, http.StatusBadRequest, "invalid request body")
	}

	if err := h.adminService.Announce(req.Message); err != nil {
		return adminFail(c, http.StatusBadRequest, "missing message")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"ok": true})
}
