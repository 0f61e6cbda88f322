package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/amir01mn/parking-space-reservation/internal/config"
	"github.com/amir01mn/parking-space-reservation/internal/handler"    // import the handlers that implement business logic
	"github.com/amir01mn/parking-space-reservation/internal/middleware" // import middleware for JWT authentication and caching
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// The /healthz endpoint can be used by load balancers or monitoring
	// systems to verify that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the admin login endpoint.  There is exactly one
// principal in this system, so login is the whole authentication surface.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
}

// RegisterBookings registers the booking lifecycle routes.  Reads are
// public and sit behind the Redis response cache; mutations require the
// admin access token.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, jwtSecret string, cacheCfg config.CacheConfig, rdb *redis.Client) {
	cache := middleware.NewRedisCache(cacheCfg, rdb)

	// Read-only queries: lookup, overlap scan and the last allocated ID.
	e.GET("/v1/bookings/last-id", b.LastID, cache)
	e.GET("/v1/bookings/overlapping", b.Overlapping, cache)
	e.GET("/v1/bookings/:id", b.Get, cache)

	// Mutations are guarded by the single-admin check.
	admin := e.Group("/v1/bookings")
	admin.Use(middleware.AdminAuth(jwtSecret))
	admin.POST("", b.Create)
	admin.POST("/:id/deposit", b.PayDeposit)
	admin.POST("/:id/extend", b.Extend)
	admin.POST("/:id/cancel", b.Cancel)
	admin.POST("/:id/checkout", b.Checkout)
}
