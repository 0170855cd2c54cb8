package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"portaria-backend/config"
	"portaria-backend/internal/api"
	"portaria-backend/internal/db"
	"portaria-backend/internal/notification"
	"portaria-backend/internal/reminder"
	"portaria-backend/internal/service"
	"portaria-backend/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "portaria-backend ", log.LstdFlags)

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	if len(cfg.Notify.Channels) == 0 {
		logger.Fatalf("at least one notification channel must be configured")
	}

	// Initialize the remote (authoritative) database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("remote store initialized successfully")

	// Open the local delivery cache
	localCache, err := store.OpenSqliteCache(cfg.Cache.Path)
	if err != nil {
		logger.Fatalf("failed to open local delivery cache: %v", err)
	}
	logger.Printf("local delivery cache opened at %s", cfg.Cache.Path)

	remote := store.NewGormRemote(gormDB)
	adapter := store.NewAdapter(remote, localCache)

	// Build the ordered notification chain: configured webhooks first,
	// then web push as the best-effort tail when VAPID keys are present.
	var channels []notification.Channel
	for _, ch := range cfg.Notify.Channels {
		channels = append(channels, notification.NewWebhookChannel(ch.Name, ch.URL))
		logger.Printf("notification channel registered: %s", ch.Name)
	}

	var webpushOptions *webpush.Options
	if cfg.Push.PublicKey != "" && cfg.Push.PrivateKey != "" {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		channels = append(channels, notification.NewWebPushChannel(gormDB, webpushOptions))
		logger.Println("notification channel registered: webpush")
	}

	dispatcher := notification.NewDispatcher(cfg.Notify.AttemptTimeout, channels...)

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Worker pool for asynchronous notices (registration, reminders)
	workerPool := notification.NewWorkerPool(cfg.WorkerPool.Size, dispatcher)
	workerPool.Start(ctx)

	// Reminder loop for overdue pickups
	reminderSvc := reminder.NewService(cfg.Reminder, remote, workerPool)
	go reminderSvc.Run(ctx)

	registration := service.NewRegistration(adapter, workerPool, cfg.Code.Length)

	// Initialize router
	handler := api.NewHandler(adapter, registration, dispatcher, gormDB, webpushOptions, cfg.Code.Length)
	router := api.NewRouter(handler, cfg.Server.RateLimitPerSec, time.Duration(cfg.Server.CacheTTLSeconds)*time.Second)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
