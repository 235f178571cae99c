package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"phonemall-payments/internal/client"
	"phonemall-payments/internal/config"
	"phonemall-payments/internal/handler"
	"phonemall-payments/internal/payment"
	"phonemall-payments/internal/repository"
	"phonemall-payments/internal/server"
	"phonemall-payments/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
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

	db := client.InitDB(cfg.DatabaseURL)

	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	webhookEventRepo := repository.NewWebhookEventRepository(db)

	if err := productRepo.Seed(context.Background()); err != nil {
		log.Fatal("seed product catalog:", err)
	}

	provider := payment.SelectProvider(cfg)
	log.Println("Active payment provider:", provider.Name())

	checkoutService := service.NewCheckoutService(db, provider, productRepo, orderRepo, webhookEventRepo)
	invoiceService := service.NewInvoiceService(service.LogMailer{})
	productHandler := handler.NewProductHandler(productRepo)

	srv := server.NewServer(checkoutService, invoiceService, productHandler, cfg.Auth.JWTSecret)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}
