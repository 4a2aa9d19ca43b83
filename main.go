package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/colleco/booking-engine/config"
	"github.com/colleco/booking-engine/internal/clock"
	"github.com/colleco/booking-engine/internal/handler"
	"github.com/colleco/booking-engine/internal/middleware"
	"github.com/colleco/booking-engine/internal/pricing"
	"github.com/colleco/booking-engine/internal/repository"
	"github.com/colleco/booking-engine/internal/schema"
	"github.com/colleco/booking-engine/internal/service"
	"github.com/colleco/booking-engine/pkg/database"
	"github.com/colleco/booking-engine/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	clk := clock.NewSystem()

	// Repositories
	invRepo := repository.NewInventoryRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	// Services
	inventorySvc := service.NewInventoryService(invRepo, clk)
	holdSvc := service.NewHoldService(invRepo, inventorySvc, clk)
	bookingSvc := service.NewBookingService(
		bookingRepo, invRepo, inventorySvc, holdSvc,
		pricing.New(), schema.NewValidator(),
		publisher, publisher, clk, cfg.CheckoutBaseURL,
	)
	paymentSvc := service.NewPaymentService(bookingRepo, inventorySvc, publisher, clk)

	// Expired holds are swept in the background for the process lifetime.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweeper := service.NewSweeper(invRepo, clk, time.Duration(cfg.SweepIntervalSec)*time.Second)
	sweeper.Start(ctx)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "booking-engine"})
	})

	handler.NewInventoryHandler(inventorySvc, holdSvc).RegisterRoutes(e)
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e)
	handler.NewPaymentHandler(paymentSvc).RegisterRoutes(e)

	go func() {
		<-ctx.Done()
		sweeper.Wait()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("Booking Engine starting on :%s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Printf("server stopped: %v", err)
	}
}
