package httpserver

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"blandselv-backend/internal/config"
	"blandselv-backend/internal/dawa"
	"blandselv-backend/internal/domain"
	"blandselv-backend/internal/postnord"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps holds the collaborators the handlers need. Everything is an
// interface so handler tests can substitute stubs.
type Deps struct {
	Basket   BasketService
	Pricing  PricingService
	Checkout CheckoutService
	Address  AddressValidator
	Pickup   PickupLocator
	Catalog  CatalogReader
	Auth     AuthManager
	Cleaner  SessionCleaner
}

type BasketService interface {
	GetOrCreate(ctx context.Context, consentID string) (*domain.Session, error)
	UpdateBasket(ctx context.Context, consentID string, items []domain.BasketItem) (*domain.Session, error)
	SaveCustomerDetails(ctx context.Context, consentID string, details domain.CustomerDetails) error
	SetAllowCookies(ctx context.Context, consentID string, allow bool) error
	RevokeConsent(ctx context.Context, consentID string) error
}

type PricingService interface {
	PackagePrice(ctx context.Context, slug string, selectedSize int, selectedProducts map[string]int) (int64, error)
}

type CheckoutService interface {
	StartPayment(ctx context.Context, orderID string, totalPriceOre int64, consentID string) (string, error)
	HandleCallback(ctx context.Context, body []byte, checksum string) error
	Status(ctx context.Context, orderID string) (*domain.Order, error)
}

type AddressValidator interface {
	Wash(ctx context.Context, address, city, postalCode string) (*dawa.Result, error)
}

type PickupLocator interface {
	FindServicePoints(ctx context.Context, q postnord.Query) (json.RawMessage, error)
}

type CatalogReader interface {
	GetDrink(ctx context.Context, slug string) (*domain.Drink, error)
	ListDrinks(ctx context.Context) ([]domain.Drink, error)
	GetPackage(ctx context.Context, slug string) (*domain.MixPackage, error)
	ListPackages(ctx context.Context) ([]domain.MixPackage, error)
}

type AuthManager interface {
	Login(email, password string) (string, error)
	Verify(token string) (string, error)
	TTL() time.Duration
}

type SessionCleaner interface {
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// buildRouter wires routes for the storefront API.
func buildRouter(cfg config.Config, logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.GET("/drinks", listDrinksHandler(deps.Catalog))
	router.GET("/drinks/:slug", getDrinkHandler(deps.Catalog))
	router.GET("/packages", listPackagesHandler(deps.Catalog))
	router.GET("/packages/:slug", getPackageHandler(deps.Catalog))

	router.GET("/getBasket", getBasketHandler(deps.Basket))
	router.POST("/updateBasket", updateBasketHandler(deps.Basket, logger))
	router.POST("/updateConsent", updateConsentHandler(deps.Basket))
	router.DELETE("/revokeConsent", revokeConsentHandler(deps.Basket))

	router.POST("/getPackagePrice", packagePriceHandler(deps.Pricing, logger))

	router.POST("/dawa/datavask", addressWashHandler(deps.Address, deps.Basket))
	router.GET("/postnord/servicepoints", servicePointsHandler(deps.Pickup))

	router.POST("/createPayment", createPaymentHandler(deps.Checkout))
	router.GET("/payment-status", paymentStatusHandler(deps.Checkout))
	router.POST("/quickpay/callback", paymentCallbackHandler(deps.Checkout, logger))

	router.GET("/checkAuth", checkAuthHandler(deps.Auth))
	router.POST("/login", loginHandler(deps.Auth, cfg.CookieSecure))
	router.POST("/logout", logoutHandler(cfg.CookieSecure))

	router.POST("/cleanupSessions", cleanupHandler(deps.Cleaner, cfg.CronSecret, cfg.SessionRetention, logger))

	return router, nil
}
