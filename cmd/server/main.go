package main // entry point: wires config, storage, services and the HTTP server

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/nashcab/car-rental-service/internal/config"
	"github.com/nashcab/car-rental-service/internal/database"
	"github.com/nashcab/car-rental-service/internal/handler"
	"github.com/nashcab/car-rental-service/internal/notifier"
	"github.com/nashcab/car-rental-service/internal/queue"
	"github.com/nashcab/car-rental-service/internal/repository"
	"github.com/nashcab/car-rental-service/internal/router"
	"github.com/nashcab/car-rental-service/internal/service"
)

func main() {
	// Local development reads .env; in production the variables come
	// from the process environment and the file is simply absent.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	cancel()

	// Optional Redis for caching and rate limiting; nil disables both.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, cache and rate limiting disabled")
	}

	notifier.SetBrokerURL(cfg.AMQPURL)

	customers := repository.NewCustomerRepo(db)
	admins := repository.NewAdminRepo(db)
	cars := repository.NewCarRepo(db)
	drivers := repository.NewDriverRepo(db)
	bookings := repository.NewBookingRepo(db)
	payments := repository.NewPaymentRepo(db)
	feedback := repository.NewFeedbackRepo(db)
	history := repository.NewLoginHistoryRepo(db)

	allocator := service.NewAllocator(db, cars, drivers, bookings, customers)
	paySvc := service.NewPayments(db, bookings, cars, payments)
	invoices := service.NewInvoices(bookings, payments, cars, drivers, customers)
	fleet := service.NewFleet(db, cars, drivers, bookings)
	stats := service.NewStats(customers, cars, drivers, bookings, payments)

	h := router.Handlers{
		Auth:     handler.NewAuthHandler(cfg, customers, admins, history),
		Booking:  handler.NewBookingHandler(allocator, bookings),
		Payment:  handler.NewPaymentHandler(paySvc),
		Invoice:  handler.NewInvoiceHandler(invoices),
		Fleet:    handler.NewFleetHandler(fleet, cars, drivers),
		Feedback: handler.NewFeedbackHandler(feedback, customers),
		Stats:    handler.NewStatsHandler(stats),
	}

	// Confirmation log consumer runs for the life of the process and
	// reconnects on its own.
	go func() {
		if err := queue.StartBookingConsumer(cfg.AMQPURL); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	router.Register(e, h, cfg, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
