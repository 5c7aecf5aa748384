package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"license-store/internal/client"
	"license-store/internal/config"
	"license-store/internal/logger"
	"license-store/internal/repository"
	"license-store/internal/secrets"
	"license-store/internal/server"
	"license-store/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
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

	if err := logger.Initialize(cfg.Log.Level, cfg.Environment.Name); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Log.Sync()

	cipher, err := secrets.NewCipher(cfg.Amazon.CredentialsKey)
	if err != nil {
		logger.Log.Fatal("credentials cipher", zap.Error(err))
	}

	db := client.InitMysqlClient(cfg.DatabaseURL)
	razorpayClient := client.NewRazorpayClient(&cfg.Razorpay)
	spapiClient := client.NewSpapiClient(&cfg.Amazon)
	mailClient := client.NewMailClient(&cfg.Mailgun)

	orderRepo := repository.NewAmazonOrderRepository(db)
	licenseKeyRepo := repository.NewLicenseKeyRepository(db)
	stateDelayRepo := repository.NewStateDelayRepository(db)
	sellerAccountRepo := repository.NewSellerAccountRepository(db)
	productRepo := repository.NewProductRepository(db)
	warrantyRepo := repository.NewWarrantyRepository(db)
	replacementRepo := repository.NewReplacementRepository(db)
	checkoutRepo := repository.NewCheckoutRepository(db)

	codeGen := service.NewSecretCodeGenerator(orderRepo.ExistsByOrderID)
	redemptionService := service.NewRedemptionService(stateDelayRepo)
	sellerAccountService := service.NewSellerAccountService(
		sellerAccountRepo, orderRepo, spapiClient, cipher, cfg.Amazon.DefaultMarketplaceID,
	)

	services := server.Services{
		Order:         service.NewOrderService(orderRepo, licenseKeyRepo, codeGen),
		StateDelay:    service.NewStateDelayService(stateDelayRepo),
		Activation:    service.NewActivationService(orderRepo, licenseKeyRepo, productRepo, redemptionService),
		LicenseKey:    service.NewLicenseKeyService(licenseKeyRepo),
		SellerAccount: sellerAccountService,
		Sync:          service.NewSyncService(sellerAccountService, sellerAccountRepo, orderRepo, spapiClient),
		Checkout:      service.NewCheckoutService(checkoutRepo, productRepo, licenseKeyRepo, razorpayClient, mailClient),
		Warranty:      service.NewWarrantyService(warrantyRepo, orderRepo, mailClient),
		Replacement:   service.NewReplacementService(replacementRepo, orderRepo, licenseKeyRepo),
		Product:       service.NewProductService(productRepo),
	}

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	srv := server.NewServer(cfg, services)

	logger.Log.Info("starting HTTP server", zap.String("addr", serverAddr))
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	logger.Log.Info("signal received, starting graceful shutdown")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		logger.Log.Fatal("HTTP server shutdown error", zap.Error(err))
	}
}
