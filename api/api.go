package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpcserver "leaguestats/api/grpc"
	"leaguestats/api/modules"
	"leaguestats/api/routes"
	"leaguestats/fetcher/pipeline"
	"leaguestats/pkg/config"
	"leaguestats/pkg/database"
	"leaguestats/pkg/logger"
	"leaguestats/pkg/redis"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Couldn't initialize the configuration: %v", err)
	}

	if cfg.Environment == "docker" {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger, err := logger.CreateLogger(cfg.Bucket)
	if err != nil {
		log.Fatalf("Couldn't create the logger: %v", err)
	}
	defer appLogger.Close()

	db, err := database.NewConnection(cfg.Database.DSN)
	if err != nil {
		log.Fatal(err)
	}

	// Runs the migrations.
	rawDb, err := db.DB()
	if err != nil {
		log.Fatalf("Couldn't get raw db connection: %v", err)
	}
	defer rawDb.Close()

	if err := database.RunMigrations(cfg, rawDb); err != nil {
		log.Fatal(err)
	}

	redisClient := redis.NewClient(cfg.Redis)
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()); err != nil {
		appLogger.Warnf("Redis unavailable, details will be served from the database: %v", err)
	}

	p := pipeline.NewPipeline(&pipeline.PipelineDeps{
		Config: cfg,
		DB:     db,
		Cache:  redisClient,
		Logger: appLogger,
	})

	// Create a module with all necessary handlers.
	module, err := modules.NewModule(&modules.ModuleDependencies{Pipeline: p})
	if err != nil {
		log.Fatal(err)
	}

	// Create a new router with the routes setup.
	router := routes.NewRouter(module.Router)
	router.SetupRoutes(
		module.MatchHandler,
	)

	httpServer := &http.Server{
		Addr:              cfg.Server.HttpAddr,
		Handler:           router.Handler(appLogger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	healthServer, err := startGRPCServer(cfg.Server.GrpcAddr, appLogger)
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		appLogger.Infof("Running HTTP server on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	handleShutdown(httpServer, healthServer, appLogger)
}

// Start the grpc health server.
func startGRPCServer(addr string, appLogger *logger.NewLogger) (*grpcserver.HealthServer, error) {
	list, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("couldn't start the tcp server: %w", err)
	}

	healthServer := grpcserver.NewHealthServer(appLogger)

	go func() {
		if err := healthServer.Serve(list); err != nil {
			appLogger.Errorf("Failed to serve grpc: %v", err)
		}
	}()

	return healthServer, nil
}

// Handle the shutdown of the whole server.
func handleShutdown(httpServer *http.Server, healthServer *grpcserver.HealthServer, appLogger *logger.NewLogger) {
	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, os.Interrupt, syscall.SIGTERM)
	<-signalChannel

	appLogger.Infof("Shutting down...")
	healthServer.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		appLogger.Errorf("Couldn't shutdown the HTTP server: %v", err)
	}

	key := fmt.Sprintf("api/%s.log", time.Now().UTC().Format(time.RFC3339))
	if err := appLogger.UploadToS3Bucket(ctx, key); err != nil {
		appLogger.Errorf("Couldn't upload the log: %v", err)
	}
}
