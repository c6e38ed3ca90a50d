package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/localmart/storefront-gateway/internal/api/handler"
	"github.com/localmart/storefront-gateway/internal/api/middleware"
	"github.com/localmart/storefront-gateway/internal/core/domain"
	"github.com/localmart/storefront-gateway/internal/core/ports"
)

// SessionSource is what the session middleware needs from the session
// layer: token parsing plus store lookup.
type SessionSource = middleware.SessionSource

// Dependencies collects everything the router wires into handlers.
type Dependencies struct {
	Sessions   ports.SessionService
	TokenAuth  SessionSource
	Catalog    ports.CatalogService
	Cart       ports.CartService
	Customers  ports.CustomerService
	Vendors    ports.VendorService
	Admin      ports.AdminService
	Dispatcher handler.ActivityDispatcher

	Mongo    *mongo.Database
	Redis    *redis.Client
	Upstream handler.UpstreamPinger

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("storefront"))
	// Session restore is optimistic: a bad or missing token just leaves the
	// request unauthenticated, guards decide what that means per route.
	e.Use(middleware.Session(deps.TokenAuth))

	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Sessions, deps.Dispatcher)
	catalogHandler := handler.NewCatalogHandler(deps.Catalog)
	cartHandler := handler.NewCartHandler(deps.Cart, deps.Dispatcher)
	customerHandler := handler.NewCustomerHandler(deps.Customers)
	vendorHandler := handler.NewVendorHandler(deps.Vendors)
	adminHandler := handler.NewAdminHandler(deps.Admin)
	activityHandler := handler.NewActivityHandler(deps.Dispatcher)

	// --- Public routes ---
	e.POST("/auth/login", authHandler.Login, middleware.LoginRateLimit())
	e.POST("/auth/forgot-password", authHandler.ForgotPassword)

	e.GET("/shops", catalogHandler.ListShops)
	e.GET("/shops/:id", catalogHandler.GetShop)
	e.GET("/products", catalogHandler.ListProducts)
	e.GET("/products/:id", catalogHandler.GetProduct)
	e.GET("/categories", catalogHandler.ListCategories)
	e.GET("/offers", catalogHandler.ListOffers)

	// --- Authenticated routes (any role) ---
	authed := e.Group("", middleware.RequireSession())
	authed.GET("/auth/me", authHandler.Me)
	authed.POST("/auth/logout", authHandler.Logout)

	authed.GET("/cart", cartHandler.Get)
	authed.POST("/cart/items", cartHandler.AddItem)
	authed.PATCH("/cart/items/:productId", cartHandler.UpdateQuantity)
	authed.DELETE("/cart/items/:productId", cartHandler.RemoveItem)
	authed.DELETE("/cart", cartHandler.Clear)
	authed.POST("/cart/checkout", cartHandler.Checkout)

	authed.GET("/favorites", customerHandler.ListFavorites)
	authed.DELETE("/favorites/:productId", customerHandler.RemoveFavorite)
	authed.GET("/orders", customerHandler.ListOrders)
	authed.GET("/orders/:id", customerHandler.GetOrder)

	authed.POST("/events", activityHandler.Receive)
	authed.POST("/events/batch", activityHandler.ReceiveBatch)

	// --- Vendor dashboard ---
	vendor := e.Group("/vendor", middleware.Guard(domain.RoleVendor))
	vendor.GET("/products", vendorHandler.ListProducts)
	vendor.POST("/products", vendorHandler.CreateProduct)
	vendor.PATCH("/products/:id", vendorHandler.UpdateProduct)
	vendor.DELETE("/products/:id", vendorHandler.DeleteProduct)

	// --- Admin dashboard ---
	admin := e.Group("/admin", middleware.Guard(domain.RoleAdmin))
	admin.GET("/stats", adminHandler.Stats)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis, deps.Upstream)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	return e
}
