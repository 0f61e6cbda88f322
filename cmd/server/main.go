package main // Entry point package

import (
	"context"
	"log"

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/amir01mn/parking-space-reservation/internal/booking"
	"github.com/amir01mn/parking-space-reservation/internal/config"
	"github.com/amir01mn/parking-space-reservation/internal/handler"
	"github.com/amir01mn/parking-space-reservation/internal/pricing"
	"github.com/amir01mn/parking-space-reservation/internal/queue"
	"github.com/amir01mn/parking-space-reservation/internal/router"
	queue_publisher "github.com/amir01mn/parking-space-reservation/internal/service"
	"github.com/amir01mn/parking-space-reservation/internal/store"
	"github.com/amir01mn/parking-space-reservation/internal/userdir"
	"github.com/amir01mn/parking-space-reservation/internal/worker"
)

func main() {
	cfg := config.Load() // Load environment config

	// Flat-file stores for bookings and payments.
	bookings, err := store.NewBookingStore(cfg.BookingCSV)
	if err != nil {
		log.Fatalf("open booking store: %v", err)
	}
	payments, err := store.NewPaymentStore(cfg.PaymentCSV)
	if err != nil {
		log.Fatalf("open payment store: %v", err)
	}
	ids := store.NewIDAllocator(bookings, cfg.IDPrefix)

	// User directory: MySQL when configured, otherwise the legacy user file.
	var users pricing.CategoryLookup
	if cfg.UserDBHost != "" {
		dir, err := userdir.OpenMySQLDirectory(cfg.UserDBUser, cfg.UserDBPass, cfg.UserDBHost, cfg.UserDBPort, cfg.UserDBName)
		if err != nil {
			log.Fatalf("open user directory: %v", err)
		}
		defer dir.Close()
		users = dir
		log.Printf("user directory: mysql (%s)", cfg.UserDBHost)
	} else {
		users = userdir.NewCSVDirectory(cfg.UserCSV)
		log.Printf("user directory: csv (%s)", cfg.UserCSV)
	}

	engine := pricing.NewEngine(users)
	svc := booking.NewService(bookings, payments, ids, engine, users, booking.LoggingGateway{}, queue_publisher.Publisher{})
	overlaps := booking.NewOverlapIndex(bookings)

	// Background notification consumer for lifecycle events.
	go func() {
		if err := queue.StartNotificationConsumer(); err != nil {
			log.Printf("notify-consumer: %v", err)
		}
	}()

	// Timer-driven auto checkout of ended, paid bookings.
	go worker.NewAutoCheckout(bookings, svc, cfg.CheckoutInterval).Run(context.Background())

	e := echo.New() // Create Echo instance
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg.AdminEmail, cfg.AdminPasswordHash, cfg.JWTSecret, cfg.AccessTTLMin))
	router.RegisterBookings(e, handler.NewBookingHandler(svc, overlaps), cfg.JWTSecret, config.LoadCacheConfig(), config.NewRedisClient())

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err)
	}
}
