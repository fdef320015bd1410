// Package main initializes and starts the FleetKeeper API server,
// setting up configuration, logging, the database pool, repositories,
// services, handlers, and optional TLS.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	nethttp "net/http"

	"github.com/atinyakov/FleetKeeper/internal/auth"
	"github.com/atinyakov/FleetKeeper/internal/config"
	"github.com/atinyakov/FleetKeeper/internal/db"
	"github.com/atinyakov/FleetKeeper/internal/logger"
	"github.com/atinyakov/FleetKeeper/internal/models"
	"github.com/atinyakov/FleetKeeper/internal/repository"
	"github.com/atinyakov/FleetKeeper/internal/server/handler/http"
	"github.com/atinyakov/FleetKeeper/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse flags, config file and environment.
	options, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(2)
	}
	zapLogger := log.Log
	defer func() { _ = zapLogger.Sync() }()

	// Stop on SIGINT or SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the pool and apply migrations.
	postgresDB, err := db.InitPostgres(ctx, options.DatabaseDSN, db.PoolOptions{
		MaxOpenConns: options.MaxOpenConns,
		MaxIdleConns: options.MaxIdleConns,
	})
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	defer postgresDB.Close()

	// Ping the database in the background.
	db.StartHealthMonitor(ctx, postgresDB, options.MonitorInterval, zapLogger)

	// Password hashing and token signing.
	hasher, err := auth.NewPasswordHasher(options.BcryptCost)
	if err != nil {
		zapLogger.Fatal("cannot init password hasher", zap.Error(err))
	}
	tokens := auth.NewTokenManager([]byte(options.SecretKey), nil)

	// Initialize repositories and business-logic services.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	authService := service.NewAuthService(userRepo, tokens, hasher, options.AccessTokenTTL)
	userService := service.NewUserService(userRepo, hasher)

	// Create HTTP handlers. Auction listings page by 100.
	v := http.NewValidator()
	auctionHandler := http.NewResourceHandler[models.AuctionVehicle, models.AuctionVehicle, models.AuctionVehiclePatch]("auction vehicle",
		repository.NewPostgresAuctionRepository(postgresDB), v, zapLogger)
	auctionHandler.DefaultLimit = 100

	// Build the router with middleware and routes.
	router := http.NewRouter(http.Handlers{
		Auth:     &http.AuthHandler{AuthService: authService, Log: zapLogger},
		Users:    http.NewResourceHandler[models.User, models.UserCreate, models.UserPatch]("user", userService, v, zapLogger),
		Vehicles: http.NewResourceHandler[models.Vehicle, models.Vehicle, models.VehiclePatch]("vehicle", repository.NewPostgresVehicleRepository(postgresDB), v, zapLogger),
		Drivers: &http.DriverHandler{
			Store: repository.NewPostgresDriverRepository(postgresDB), Validate: v, Log: zapLogger,
		},
		Maintenance: http.NewResourceHandler[models.MaintenanceRequest, models.MaintenanceRequest, models.MaintenanceRequestPatch]("maintenance request",
			repository.NewPostgresMaintenanceRepository(postgresDB), v, zapLogger),
		Fueling: http.NewResourceHandler[models.FuelingRequest, models.FuelingRequest, models.FuelingRequestPatch]("fueling request",
			repository.NewPostgresFuelingRepository(postgresDB), v, zapLogger),
		Tasks:   http.NewResourceHandler[models.Task, models.Task, models.TaskPatch]("task", repository.NewPostgresTaskRepository(postgresDB), v, zapLogger),
		Auction: auctionHandler,
	}, http.RouterOptions{
		Resolver:       authService,
		Logger:         zapLogger,
		CORSOrigins:    options.CORSOrigins,
		ProtectAuction: options.ProtectAuction,
		Health:         postgresDB.PingContext,
	})

	// Create and start the server, with TLS when a certificate is configured.
	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		zapLogger.Info("starting server",
			zap.String("addr", options.Addr),
			zap.Bool("tls", options.TLSCert != ""),
			zap.Bool("protect_auction", options.ProtectAuction),
		)
		if options.TLSCert != "" {
			serveErr <- server.ListenAndServeTLS(options.TLSCert, options.TLSKey)
			return
		}
		serveErr <- server.ListenAndServe()
	}()

	// Wait for a signal or a listener failure.
	select {
	case err := <-serveErr:
		if !errors.Is(err, nethttp.ErrServerClosed) {
			zapLogger.Fatal("server failed", zap.Error(err))
		}
	case <-ctx.Done():
		zapLogger.Info("shutting down")
	}

	// Drain in-flight requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), options.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
