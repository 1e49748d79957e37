package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"blandselv-backend/internal/auth"
	"blandselv-backend/internal/config"
	"blandselv-backend/internal/dawa"
	"blandselv-backend/internal/db"
	"blandselv-backend/internal/httpserver"
	"blandselv-backend/internal/mail"
	"blandselv-backend/internal/postnord"
	"blandselv-backend/internal/quickpay"
	catalogrepo "blandselv-backend/internal/repository/catalog"
	orderrepo "blandselv-backend/internal/repository/order"
	sessionrepo "blandselv-backend/internal/repository/session"
	basketsvc "blandselv-backend/internal/service/basket"
	checkoutsvc "blandselv-backend/internal/service/checkout"
	confirmationsvc "blandselv-backend/internal/service/confirmation"
	pricingsvc "blandselv-backend/internal/service/pricing"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	sessionRepo := sessionrepo.NewPostgres(dbpool)
	catalogRepo := catalogrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool)

	gateway := quickpay.New(cfg.QuickPayBaseURL, cfg.QuickPayAPIKey, cfg.QuickPayPrivateKey)
	addressClient := dawa.New(cfg.DAWABaseURL)
	pickupClient := postnord.New(cfg.PostNordBaseURL, cfg.PostNordAPIKey)

	var mailer mail.Mailer
	if cfg.MailAPIKey != "" {
		apiMailer, err := mail.NewAPIMailer(cfg.MailBaseURL, cfg.MailAPIKey, cfg.MailFrom)
		if err != nil {
			logger.Fatalf("init mailer: %v", err)
		}
		mailer = apiMailer
	} else {
		logger.Printf("MAIL_API_KEY not set, confirmation mails go to the log")
		mailer = mail.NewLogMailer(logger)
	}

	basketService := basketsvc.New(sessionRepo, catalogRepo)
	pricingService := pricingsvc.New(catalogRepo)
	confirmationService := confirmationsvc.New(mailer, logger)
	checkoutService := checkoutsvc.New(gateway, orderRepo, sessionRepo, confirmationService, logger, checkoutsvc.Options{
		Currency:    cfg.Currency,
		ContinueURL: cfg.ContinueURL,
		CancelURL:   cfg.CancelURL,
		CallbackURL: cfg.CallbackURL,
	})
	authManager := auth.NewManager(cfg.JWTSecret, cfg.AdminEmail, cfg.AdminPasswordHash, cfg.SessionCookieTTL)

	srv, err := httpserver.New(cfg, logger, dbpool, httpserver.Deps{
		Basket:   basketService,
		Pricing:  pricingService,
		Checkout: checkoutService,
		Address:  addressClient,
		Pickup:   pickupClient,
		Catalog:  catalogRepo,
		Auth:     authManager,
		Cleaner:  sessionRepo,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
