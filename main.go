package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-storefront/config"
	"hotel-storefront/controllers"
	"hotel-storefront/logger"
	"hotel-storefront/models"
	"hotel-storefront/routes"
	"hotel-storefront/services"
	"hotel-storefront/storage"
)

func main() {
	cfg, dotenv := config.Load()
	ginMode, ginModeOK := config.ParseGinMode(cfg.GinMode)
	lg, err := logger.New(logger.Options{
		Engine:  cfg.LogEngine,
		Level:   logger.ParseLevel(cfg.LogLevel),
		AppName: "hotel-storefront",
		Env:     ginMode,
		File:    cfg.LogFile,
	})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	if !dotenv {
		lg.Info(".env not found; continuing with environment variables")
	}
	if !ginModeOK {
		lg.Warn("unknown GIN_MODE %q, using %s", cfg.GinMode, ginMode)
	}
	gin.SetMode(ginMode)

	store, closeStore, err := openStore(cfg, lg)
	if err != nil {
		log.Fatalf("storage (%s): %v", cfg.StorageDriver, err)
	}
	defer closeStore()

	mode, ok := models.ParseFilterMode(cfg.FilterMode)
	if !ok {
		lg.Warn("unknown FILTER_MODE %q, using %s", cfg.FilterMode, models.FilterLastWins)
	}

	feed := services.NewNotificationFeed(cfg.NotificationBuffer)
	notifier := services.MultiNotifier{services.LogNotifier{Log: lg}, feed}

	var publisher services.EventPublisher = services.NopPublisher{}
	if cfg.AMQPURL != "" {
		publisher = services.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPQueue, lg)
		lg.Info("publishing events to queue %s", cfg.AMQPQueue)
	}

	api := services.NewHotelAPI(services.APIBaseURL, cfg.HTTPTimeout)
	lg.Info("hotel API at %s", services.APIBaseURL)

	catalog := services.NewCatalogStore(api, mode, lg)
	session := services.NewSessionStore(api, store, notifier, lg)
	reservations := services.NewReservationService(api, catalog, session, notifier, publisher, lg)
	dashboard := services.NewDashboardService(api, catalog, session, notifier, publisher, lg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// the router answers 503 on /api until this finishes
	go session.Hydrate(ctx)
	go func() {
		loadCtx, cancel := context.WithTimeout(ctx, cfg.HTTPTimeout)
		defer cancel()
		// failure leaves an empty catalog; already logged by the store
		_ = catalog.Load(loadCtx)
	}()

	router := routes.SetupRouter(cfg.CORSOrigins, lg, session, routes.Controllers{
		Rooms:         controllers.NewRoomController(catalog, api, session, lg),
		Auth:          controllers.NewAuthController(session),
		Bookings:      controllers.NewBookingController(reservations, dashboard),
		Notifications: controllers.NewNotificationController(feed),
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      2*cfg.HTTPTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		lg.Info("storefront listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	<-ctx.Done()
	lg.Info("shutdown signal received, stopping server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("server forced to shutdown: %v", err)
		return
	}
	lg.Info("server stopped gracefully")
}

// openStore builds the durable storage driver STORAGE_DRIVER names. The
// returned func releases whatever connection the driver holds.
func openStore(cfg config.Config, lg logger.Logger) (storage.Store, func(), error) {
	noop := func() {}
	switch cfg.StorageDriver {
	case "file", "":
		fs, err := storage.NewFileStore(cfg.StorageDir)
		if err != nil {
			return nil, noop, err
		}
		lg.Info("token storage: files under %s", cfg.StorageDir)
		return fs, noop, nil

	case "redis":
		rdb, err := config.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		lg.Info("token storage: redis %s", cfg.Redis.Addr)
		return storage.NewRedisStore(rdb, cfg.Redis.Prefix), func() { _ = rdb.Close() }, nil

	case "mysql", "sqlite":
		db, err := config.OpenStorageDB(cfg)
		if err != nil {
			return nil, noop, err
		}
		st, err := storage.NewSQLStore(db)
		if err != nil {
			return nil, noop, err
		}
		closeDB := noop
		if sqlDB, err := db.DB(); err == nil {
			closeDB = func() { _ = sqlDB.Close() }
		}
		lg.Info("token storage: %s table storage_records", cfg.StorageDriver)
		return st, closeDB, nil
	}
	return nil, noop, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
