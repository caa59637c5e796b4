package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"infinity-realms-shop/internal/catalog"
	"infinity-realms-shop/internal/client"
	"infinity-realms-shop/internal/config"
	"infinity-realms-shop/internal/logger"
	"infinity-realms-shop/internal/repository"
	"infinity-realms-shop/internal/server"
	"infinity-realms-shop/internal/service"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Environment.Name)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db := client.InitDBClient(cfg.DatabaseURL)
	discordClient := client.NewDiscordClient(&cfg.Discord)
	exchangeClient := client.NewExchangeClient(cfg.Exchange.BaseAPIURL)

	userRepo := repository.NewUserRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)

	discounts := catalog.NewDiscountStore()

	userService := service.NewUserService(log, userRepo, cfg.JWTSecret)
	shopService := service.NewShopService(log, discounts, exchangeClient)
	purchaseService := service.NewPurchaseService(log, purchaseRepo, discordClient)
	adminService := service.NewAdminService(log, userRepo, purchaseRepo, discounts, cfg.AdminPassword, cfg.JWTSecret)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	srv := server.NewServer(userService, shopService, purchaseService, adminService)

	log.Infow("starting HTTP server", "addr", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalw("HTTP server error", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Infow("signal received, starting graceful shutdown")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		log.Fatalw("HTTP server shutdown error", "error", err)
	}
}
