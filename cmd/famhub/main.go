package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/skoefer/famhub/internal/agenda"
	"github.com/skoefer/famhub/internal/database"
	"github.com/skoefer/famhub/internal/logging"
	"github.com/skoefer/famhub/internal/server"
)

const sessionSweepInterval = time.Hour

func main() {
	// Missing .env is fine; the environment may be set directly.
	godotenv.Load()

	logger := logging.Setup(os.Getenv("FAMHUB_LOG_LEVEL"), os.Getenv("FAMHUB_LOG_FORMAT"))

	port := os.Getenv("FAMHUB_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("FAMHUB_DB_PATH")
	if dbPath == "" {
		dbPath = "famhub.db"
	}

	weekStart := agenda.ParseWeekStart(os.Getenv("FAMHUB_WEEK_START"))

	db, err := database.Open(dbPath)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	srv := server.New(db, weekStart, logger)

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Background sweeps for expired sessions and stale rate-limit entries.
	stopSweep := make(chan struct{})
	go func() {
		ticker := time.NewTicker(sessionSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := srv.SessionStore().DeleteExpired(); err != nil {
					logger.Warn("session sweep", "error", err)
				}
				srv.RateLimiter().Cleanup()
			case <-stopSweep:
				return
			}
		}
	}()

	go func() {
		fmt.Printf("Famhub running at http://localhost:%s\n", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	close(stopSweep)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
