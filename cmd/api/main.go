package main

import (
	"context"
	"log"
	"time"

	"linehaul-dispatch/internal/core/cache"
	"linehaul-dispatch/internal/core/config"
	"linehaul-dispatch/internal/core/db"
	"linehaul-dispatch/internal/core/logger"
	"linehaul-dispatch/internal/core/server"
	dispatchadapter "linehaul-dispatch/internal/features/dispatch/adapters"
	dispatchhandler "linehaul-dispatch/internal/features/dispatch/handler"
	dispatchservice "linehaul-dispatch/internal/features/dispatch/service"
	dispositionadapter "linehaul-dispatch/internal/features/disposition/adapters"
	dispositionhandler "linehaul-dispatch/internal/features/disposition/handler"
	dispositionservice "linehaul-dispatch/internal/features/disposition/service"
	etaadapter "linehaul-dispatch/internal/features/eta/adapters"
	etahandler "linehaul-dispatch/internal/features/eta/handler"
	"linehaul-dispatch/internal/features/eta/ports"
	etaservice "linehaul-dispatch/internal/features/eta/service"
	laneadapter "linehaul-dispatch/internal/features/lanes/adapters"
	lanehandler "linehaul-dispatch/internal/features/lanes/handler"
	laneservice "linehaul-dispatch/internal/features/lanes/service"

	"go.uber.org/zap"
)

// @title Linehaul Dispatch API
// @version 1.0
// @description Linehaul trip dispatch and performance engine for an LTL carrier: dispatch board, ETA resolution, lane routing and bulk late-departure dispositions.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	ctx := context.Background()

	// Initialize Redis cache and verify connectivity
	redisCache, err := cache.NewRedisAdapter(cfg.Cache.RedisURL)
	if err != nil {
		l.Fatal("Failed to create Redis adapter", zap.Error(err))
	}
	defer redisCache.Close()
	if err := redisCache.Ping(ctx); err != nil {
		l.Fatal("Redis Health Check Failed", zap.Error(err))
	}
	l.Info("Redis connection verified")

	// Initialize Postgres and the lane schema
	pool, err := db.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		l.Fatal("Failed to connect to Postgres", zap.Error(err))
	}
	defer pool.Close()
	l.Info("Postgres connection verified")

	laneRepo := laneadapter.NewPostgresLaneRepository(pool)
	if err := laneRepo.InitSchema(ctx); err != nil {
		l.Fatal("Failed to initialize lane schema", zap.Error(err))
	}

	// Initialize Lane Service & Handler behind the cache decorator
	laneTTL := time.Duration(cfg.Cache.LaneTTLSeconds) * time.Second
	cachedLaneRepo := laneadapter.NewCachedLaneRepository(laneRepo, redisCache, laneTTL)
	laneService := laneservice.NewLaneService(cachedLaneRepo)
	laneHandler := lanehandler.NewLaneHandler(laneService)

	// Initialize Dispatch Service & Handler
	tmsAdapter := dispatchadapter.NewTMSAdapter(cfg.TMS)
	dispatchService := dispatchservice.NewDispatchService(tmsAdapter)
	dispatchHandler := dispatchhandler.NewDispatchHandler(dispatchService)

	// Initialize ETA sources: GPS first, profile schedule as fallback
	locationAdapter := etaadapter.NewLocationAdapter(cfg.Location)
	etaResolvers := []ports.Resolver{
		etaadapter.NewGPSSource(locationAdapter),
		etaadapter.NewProfileSource(),
	}
	etaService := etaservice.NewEtaService(etaResolvers, tmsAdapter)
	etaHandler := etahandler.NewEtaHandler(etaService, locationAdapter)

	// Initialize Disposition Service & Handler
	dispositionAdapter := dispositionadapter.NewTMSDispositionAdapter(cfg.TMS)
	dispositionService := dispositionservice.NewDispositionService(dispositionAdapter)
	dispositionHandler := dispositionhandler.NewDispositionHandler(dispositionService)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Get("/dispatch/board", dispatchHandler.GetBoard)
	srv.App.Post("/linehaul-trips/eta/batch", etaHandler.ResolveBatch)
	srv.App.Get("/vehicle-location/:vehicleId", etaHandler.GetVehicleLocation)
	srv.App.Get("/linehaul-lanes", laneHandler.List)
	srv.App.Post("/linehaul-lanes", laneHandler.Create)
	srv.App.Get("/linehaul-lanes/:id", laneHandler.Get)
	srv.App.Put("/linehaul-lanes/:id", laneHandler.Update)
	srv.App.Delete("/linehaul-lanes/:id", laneHandler.Delete)
	srv.App.Post("/dispositions/bulk", dispositionHandler.SubmitBulk)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
