package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/healclinics/storefront/internal/infrastructure/logger"
	"github.com/healclinics/storefront/internal/infrastructure/session"
	"github.com/healclinics/storefront/internal/interfaces/http/handler"
	"github.com/healclinics/storefront/internal/interfaces/http/middleware"
)

// Config holds everything the router needs to assemble the HTTP surface.
type Config struct {
	Logger         *zap.Logger
	ServiceName    string
	SessionManager *session.Manager
	SessionCookie  string
	SecureCookies  bool
	CORS           middleware.CORSConfig

	RateLimit        int
	RateWindow       time.Duration
	SuggestRateLimit int
	SuggestWindow    time.Duration

	System   *handler.SystemHandler
	Cart     *handler.CartHandler
	Catalog  *handler.CatalogHandler
	Address  *handler.AddressHandler
	Checkout *handler.CheckoutHandler
	Account  *handler.AccountHandler
}

// New assembles the gin engine: middleware chain, probes, and the versioned
// API routes.
func New(cfg Config) *gin.Engine {
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(cfg.Logger),
		logger.Recovery(cfg.Logger),
		otelgin.Middleware(cfg.ServiceName),
		middleware.CORSWithConfig(cfg.CORS),
	)

	engine.GET("/health", cfg.System.Health)
	engine.GET("/ready", cfg.System.Ready)

	api := engine.Group("/api/v1")
	api.Use(middleware.Session(middleware.SessionConfig{
		Manager:    cfg.SessionManager,
		CookieName: cfg.SessionCookie,
		Secure:     cfg.SecureCookies,
		Logger:     cfg.Logger,
	}))
	if cfg.RateLimit > 0 {
		api.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)))
	}

	products := api.Group("/products")
	{
		products.GET("", cfg.Catalog.List)
		products.GET("/:productID", cfg.Catalog.Get)
	}

	cart := api.Group("/cart")
	{
		cart.GET("", cfg.Cart.Get)
		cart.DELETE("", cfg.Cart.Clear)
		cart.PUT("/open", cfg.Cart.SetOpen)
		cart.POST("/items", cfg.Cart.AddItem)
		cart.PUT("/items/:productID", cfg.Cart.UpdateItem)
		cart.DELETE("/items/:productID", cfg.Cart.RemoveItem)
	}

	address := api.Group("/address")
	{
		address.GET("/lookup", cfg.Address.Lookup)
		address.POST("/fields/:field/touch", cfg.Address.TouchField)

		suggest := address.Group("/suggest")
		if cfg.SuggestRateLimit > 0 {
			suggest.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.SuggestRateLimit, cfg.SuggestWindow)))
		}
		suggest.GET("", cfg.Address.Suggest)
	}

	checkout := api.Group("/checkout")
	{
		checkout.POST("", cfg.Checkout.Start)
		checkout.GET("/payments/:paymentID", cfg.Checkout.Status)
	}

	auth := api.Group("/auth")
	{
		auth.POST("/login", cfg.Account.Login)
		auth.POST("/register", cfg.Account.Register)
	}

	account := api.Group("/account")
	{
		account.GET("", cfg.Account.Profile)
		account.GET("/addresses", cfg.Account.Addresses)
		account.POST("/addresses", cfg.Account.SaveAddress)
		account.DELETE("/addresses/:addressID", cfg.Account.RemoveAddress)
	}

	return engine
}
