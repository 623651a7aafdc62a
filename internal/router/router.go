package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/nashcab/car-rental-service/internal/config"
	"github.com/nashcab/car-rental-service/internal/handler"
	"github.com/nashcab/car-rental-service/internal/middleware"
	"github.com/nashcab/car-rental-service/internal/model"
)

// Handlers collects every handler the API mounts.
type Handlers struct {
	Auth     *handler.AuthHandler
	Booking  *handler.BookingHandler
	Payment  *handler.PaymentHandler
	Invoice  *handler.InvoiceHandler
	Fleet    *handler.FleetHandler
	Feedback *handler.FeedbackHandler
	Stats    *handler.StatsHandler
}

// Register mounts all routes.  Public endpoints carry no middleware,
// customer endpoints require the CUSTOMER role and admin endpoints the
// ADMIN role.  The Redis-backed cache and rate limiter degrade to
// no-ops when rdb is nil.
func Register(e *echo.Echo, h Handlers, cfg config.Config, rdb *redis.Client) {
	limiter := middleware.RateLimit(rdb, config.LoadRateLimitConfig())
	cache := middleware.Cache(rdb, config.LoadCacheConfig())

	// ---- Public ----
	e.GET("/healthz", handler.Health)
	e.GET("/v1/booking-options", handler.BookingOptions, cache)

	auth := e.Group("/v1/auth", limiter)
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/admin/login", h.Auth.AdminLogin)
	auth.POST("/reset-password", h.Auth.ResetPassword)

	// ---- Customer ----
	cust := e.Group(
		"/v1",
		middleware.JWTAuth(cfg.JWTSecret),
		middleware.RequireRole(model.RoleCustomer),
		limiter,
	)
	cust.POST("/bookings", h.Booking.Create)
	cust.GET("/my-bookings", h.Booking.MyBookings)
	cust.POST("/payments/card", h.Payment.PayCard)
	cust.POST("/payments/netbanking", h.Payment.PayNetBanking)
	cust.POST("/feedback", h.Feedback.Create)
	cust.GET("/my-logins", h.Auth.LoginHistory)

	// Invoices are visible to the paying customer and to admins; the
	// handler enforces ownership.
	inv := e.Group(
		"/v1",
		middleware.JWTAuth(cfg.JWTSecret),
		middleware.RequireRole(model.RoleCustomer, model.RoleAdmin),
		limiter,
	)
	inv.GET("/invoices/:id", h.Invoice.Get)
	inv.GET("/invoices/:id/pdf", h.Invoice.GetPDF)

	// ---- Admin ----
	admin := e.Group(
		"/v1/admin",
		middleware.JWTAuth(cfg.JWTSecret),
		middleware.RequireRole(model.RoleAdmin),
	)
	admin.POST("/cars", h.Fleet.AddCar)
	admin.GET("/cars", h.Fleet.ListCars)
	admin.DELETE("/cars/:id", h.Fleet.DeleteCar)
	admin.PATCH("/cars/:id/status", h.Fleet.SetCarStatus)
	admin.POST("/drivers", h.Fleet.AddDriver)
	admin.GET("/drivers", h.Fleet.ListDrivers)
	admin.DELETE("/drivers/:id", h.Fleet.DeleteDriver)
	admin.PATCH("/drivers/:id/status", h.Fleet.SetDriverStatus)
	admin.GET("/bookings", h.Booking.ListAll)
	admin.POST("/bookings/:id/release", h.Booking.Release)
	admin.GET("/feedback", h.Feedback.List)
	admin.GET("/stats", h.Stats.Overview)
	admin.POST("/admins", h.Auth.CreateAdmin)
	admin.DELETE("/admins/:id", h.Auth.DeleteAdmin)
	admin.DELETE("/customers/:id", h.Auth.DeleteCustomer)
}
