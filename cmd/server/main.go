package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	accountapp "github.com/healclinics/storefront/internal/application/account"
	addressapp "github.com/healclinics/storefront/internal/application/address"
	cartapp "github.com/healclinics/storefront/internal/application/cart"
	catalogapp "github.com/healclinics/storefront/internal/application/catalog"
	checkoutapp "github.com/healclinics/storefront/internal/application/checkout"
	"github.com/healclinics/storefront/internal/infrastructure/backend"
	"github.com/healclinics/storefront/internal/infrastructure/cartstore"
	"github.com/healclinics/storefront/internal/infrastructure/config"
	"github.com/healclinics/storefront/internal/infrastructure/logger"
	"github.com/healclinics/storefront/internal/infrastructure/payment"
	"github.com/healclinics/storefront/internal/infrastructure/pdok"
	"github.com/healclinics/storefront/internal/infrastructure/session"
	"github.com/healclinics/storefront/internal/infrastructure/telemetry"
	"github.com/healclinics/storefront/internal/interfaces/http/handler"
	"github.com/healclinics/storefront/internal/interfaces/http/middleware"
	"github.com/healclinics/storefront/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	providers, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("failed to initialize telemetry", zap.Error(err))
	}

	metrics, err := telemetry.NewStoreMetrics(otel.Meter(cfg.Telemetry.ServiceName))
	if err != nil {
		log.Fatal("failed to initialize metrics", zap.Error(err))
	}

	store, err := cartstore.NewRedisStore(cartstore.RedisConfig{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TTL:      cfg.Session.TTL,
	})
	if err != nil {
		log.Fatal("failed to connect to cart store", zap.Error(err))
	}
	defer func() { _ = store.Close() }()

	shopAPI := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	directory := pdok.NewClient(pdok.Config{
		BaseURL: cfg.AddressAPI.BaseURL,
		Timeout: cfg.AddressAPI.Timeout,
	})
	gateway := payment.NewSimulatedGateway(cfg.Payment.RedirectURL, cfg.Payment.SettleDelay)
	sessions := session.NewManager(cfg.Session)

	catalogService := catalogapp.NewService(shopAPI)
	cartService := cartapp.NewService(store, catalogService, metrics, log)
	addressService := addressapp.NewService(directory, cfg.AddressAPI.SuggestLimit, metrics, log)
	autofillSessions := addressapp.NewAutofillRegistry(addressapp.DefaultAutofillIdleTTL)
	checkoutService := checkoutapp.NewService(cartService, shopAPI, gateway, cfg.Payment.RedirectURL, metrics, log)
	accountService := accountapp.NewService(shopAPI)

	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	rateLimit := 0
	if cfg.HTTP.RateLimitEnabled {
		rateLimit = cfg.HTTP.RateLimitRequests
	}

	engine := router.New(router.Config{
		Logger:           log,
		ServiceName:      cfg.Telemetry.ServiceName,
		SessionManager:   sessions,
		SessionCookie:    cfg.Session.CookieName,
		SecureCookies:    cfg.Session.Secure,
		CORS:             cors,
		RateLimit:        rateLimit,
		RateWindow:       cfg.HTTP.RateLimitWindow,
		SuggestRateLimit: cfg.HTTP.SuggestRateRequests,
		SuggestWindow:    cfg.HTTP.SuggestRateWindow,
		System:           handler.NewSystemHandler(store, version),
		Cart:             handler.NewCartHandler(cartService),
		Catalog:          handler.NewCatalogHandler(catalogService),
		Address:          handler.NewAddressHandler(addressService, autofillSessions),
		Checkout:         handler.NewCheckoutHandler(checkoutService),
		Account:          handler.NewAccountHandler(accountService),
	})

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("invalid trusted proxies", zap.Error(err))
		}
	}

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("storefront listening",
			zap.String("port", cfg.App.Port),
			zap.String("env", cfg.App.Env),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Error("telemetry shutdown failed", zap.Error(err))
	}

	log.Info("stopped")
}
