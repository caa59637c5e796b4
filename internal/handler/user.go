package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"infinity-realms-shop/internal/dto"
	"infinity-realms-shop/internal/model"
	"infinity-realms-shop/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	token, err := h.userService.Register(ctx, req.Username, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrValidation):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, model.ErrConflict):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Username or email already exists"})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to register user"})
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Registration successful",
		"token":   token,
	})
}

func (h *UserHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	user, err := h.userService.Login(ctx, req.Username, req.Email, req.Token)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrValidation):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, model.ErrUnauthorized):
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token"})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Login failed"})
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

func (h *UserHandler) LoginAlternative(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginAlternativeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	user, err := h.userService.LoginAlternative(ctx, req.Username, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrValidation) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Login failed. Please try again."})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}
