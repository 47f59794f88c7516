package entrypoint

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

	"github.com/shelflife/shelflife/internal/auth"
	"github.com/shelflife/shelflife/internal/circulation"
	"github.com/shelflife/shelflife/internal/config"
	"github.com/shelflife/shelflife/internal/database"
	"github.com/shelflife/shelflife/internal/database/transactions"
	http_controllers "github.com/shelflife/shelflife/internal/http"
	"github.com/shelflife/shelflife/internal/scheduler"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	if cfg.Auth.TokenSecret == "" {
		// Tokens won't survive a restart without a configured secret.
		generated, err := auth.GenerateTokenSecret()
		if err != nil {
			log.Fatalf("Failed to generate token secret: %v", err)
		}
		cfg.Auth.TokenSecret = generated
		log.Printf("Generated token secret (set JWT_SECRET to persist across restarts)")
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	authService := auth.NewService(db.DB, cfg.Auth)
	if err := authService.EnsureAdmin(); err != nil {
		log.Fatalf("Failed to seed administrator: %v", err)
	}

	circulationService := circulation.NewService(db.DB, cfg.Circulation)

	var sweeper *scheduler.OverdueSweeper
	if cfg.Overdue.SweepEnabled {
		sweeper = scheduler.NewOverdueSweeper(transactions.NewRepository(db.DB), cfg.Overdue.SweepSchedule)
		if err := sweeper.Start(context.Background()); err != nil {
			log.Fatalf("Failed to start overdue sweeper: %v", err)
		}
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:    db,
		AuthService: authService,
		Circulation: circulationService,
		AuthConfig:  cfg.Auth,
		ClientURL:   cfg.HTTP.ClientURL,
		Version:     version,
	})

	onShutdown := func(ctx context.Context) {
		if sweeper != nil {
			sweeper.Stop()
		}
	}

	Serve(router, cfg, onShutdown)
}
