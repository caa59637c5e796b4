package server

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"infinity-realms-shop/internal/handler"
	"infinity-realms-shop/internal/middleware"
	"infinity-realms-shop/internal/service"
)

type Server struct {
	echo         *echo.Echo
	userHandler  *handler.UserHandler
	shopHandler  *handler.ShopHandler
	adminHandler *handler.AdminHandler
	userService  service.UserService
	adminService service.AdminService
}

func NewServer(
	userService service.UserService,
	shopService service.ShopService,
	purchaseService service.PurchaseService,
	adminService service.AdminService,
) *Server {
	e := echo.New()

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	s := &Server{
		echo:         e,
		userHandler:  handler.NewUserHandler(userService),
		shopHandler:  handler.NewShopHandler(shopService, purchaseService),
		adminHandler: handler.NewAdminHandler(adminService, userService, purchaseService, shopService),
		userService:  userService,
		adminService: adminService,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- storefront --------
	api.POST("/register", s.userHandler.Register)
	api.POST("/login", s.userHandler.Login)
	api.POST("/login-alternative", s.userHandler.LoginAlternative)
	api.GET("/products", s.shopHandler.GetProducts)
	api.GET("/exchange-rate", s.shopHandler.GetExchangeRate)
	api.POST("/cart-total", s.shopHandler.CartTotal)
	api.POST("/process-payment", s.shopHandler.ProcessPayment)
	api.GET("/popular-items", s.shopHandler.GetPopularItems)
	api.GET("/purchase-history", s.shopHandler.GetPurchaseHistory,
		middleware.UserIdentity(s.userService))

	// -------- admin --------
	admin := api.Group("/admin")
	admin.POST("/login", s.adminHandler.Login)

	gated := admin.Group("", middleware.AdminAuth(s.adminService))
	gated.GET("/users", s.adminHandler.GetUsers)
	gated.GET("/purchases", s.adminHandler.GetPurchases)
	gated.GET("/products", s.adminHandler.GetProducts)
	gated.GET("/product-sales", s.adminHandler.GetProductSales)
	gated.POST("/verify-purchase", s.adminHandler.VerifyPurchase)
	gated.POST("/apply-global-sale", s.adminHandler.ApplyGlobalSale)
	gated.POST("/remove-global-sale", s.adminHandler.RemoveGlobalSale)
	gated.POST("/apply-product-sale", s.adminHandler.ApplyProductSale)
	gated.POST("/remove-product-sale", s.adminHandler.RemoveProductSale)
	gated.POST("/clear-database", s.adminHandler.ClearDatabase)
	gated.POST("/announce", s.adminHandler.Announce)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
