package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"infinity-realms-shop/internal/service"
)

const UsernameKey = "username"

// UserIdentity resolves who is asking for purchase history. A valid Bearer
// token wins; otherwise the alternative-login headers (or query params) are
// accepted as-is, matching the credential-less login path.
func UserIdentity(userService service.UserService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var username string

			authorization := c.Request().Header.Get("Authorization")
			if strings.HasPrefix(authorization, "Bearer ") {
				token := strings.TrimPrefix(authorization, "Bearer ")
				if info, err := userService.VerifyToken(token); err == nil {
					username = info.Username
				}
			}

			if username == "" {
				altUsername := c.Request().Header.Get("x-username")
				altEmail := c.Request().Header.Get("x-email")
				if altUsername == "" {
					altUsername = c.QueryParam("username")
					altEmail = c.QueryParam("email")
				}
				if altUsername != "" && altEmail != "" {
					username = altUsername
				}
			}

			if username == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "Please login to view your purchase history",
				})
			}

			c.Set(UsernameKey, username)
			return next(c)
		}
	}
}

// AdminAuth requires the short-lived token issued by the admin login on
// every admin route.
func AdminAuth(adminService service.AdminService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authorization := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(authorization, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"ok": false, "error": "admin token required",
				})
			}
			token := strings.TrimPrefix(authorization, "Bearer ")
			if err := adminService.VerifyAdminToken(token); err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"ok": false, "error": "invalid admin token",
				})
			}
			return next(c)
		}
	}
}
