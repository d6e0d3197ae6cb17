// cmd/crypto-gateway-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/MGTheTrain/crypto-gateway/internal/api/rest/v1"
	"github.com/MGTheTrain/crypto-gateway/internal/app"
	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
	"github.com/MGTheTrain/crypto-gateway/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/crypto-gateway/internal/infrastructure/persistence"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/config"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/logger"
	"github.com/gin-contrib/cors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	sessionSweepInterval = 30 * time.Second
	auditPruneInterval   = time.Hour
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	deps, err := initializeDependencies(restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.close(log)

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	gateway  gateway.GatewayService
	sessions *app.SessionRegistry
	audit    gateway.AuditService
	db       *gorm.DB
}

func (d *appDependencies) close(log logger.Logger) {
	if d.db == nil {
		return
	}
	if err := persistence.CloseDB(d.db); err != nil {
		log.Warn("Failed to close database: ", err)
	}
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.RestConfig, log logger.Logger) (*appDependencies, error) {
	// Initialize cryptographic processors
	processors, err := cryptography.NewProcessors(cfg.Gateway, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize processors: %w", err)
	}
	log.Info("Cryptographic processors initialized successfully")

	gatewayService, err := app.NewGatewayService(processors, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway service: %w", err)
	}

	sessionRegistry, err := app.NewSessionRegistry(gatewayService, cfg.Gateway.Sessions, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create session registry: %w", err)
	}

	deps := &appDependencies{
		gateway:  gatewayService,
		sessions: sessionRegistry,
	}
	if !cfg.Gateway.Audit.Enabled {
		log.Info("Operation audit trail disabled")
		return deps, nil
	}

	// Initialize database; migrations run on connect
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}
	deps.db = db
	log.Info("Database migrations completed successfully")

	operationRepo, err := persistence.NewGormOperationRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation repository: %w", err)
	}

	deps.audit, err = app.NewAuditService(operationRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create audit service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return deps, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	background, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	go deps.sessions.Run(background, sessionSweepInterval)
	if deps.audit != nil {
		go pruneAuditTrail(background, deps.audit, cfg.Gateway.Audit.Retention, log)
	}

	// Setup router
	r := gin.Default()

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup API routes
	v1.SetupRoutes(r, deps.gateway, deps.sessions, deps.audit, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server on port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal ", sig, ", initiating graceful shutdown")
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

// pruneAuditTrail drops records older than retention once at startup and then
// every auditPruneInterval until ctx is cancelled.
func pruneAuditTrail(ctx context.Context, audit gateway.AuditService, retention time.Duration, log logger.Logger) {
	ticker := time.NewTicker(auditPruneInterval)
	defer ticker.Stop()
	for {
		if _, err := audit.Prune(ctx, retention); err != nil {
			log.Warn("Failed to prune audit trail: ", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
