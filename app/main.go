package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dreamlabs/dreams-server/app/account"
	"github.com/dreamlabs/dreams-server/app/api"
	"github.com/dreamlabs/dreams-server/app/cache"
	"github.com/dreamlabs/dreams-server/app/cfg"
	"github.com/dreamlabs/dreams-server/app/content"
	"github.com/dreamlabs/dreams-server/app/database"
	"github.com/dreamlabs/dreams-server/app/feed"
	"github.com/dreamlabs/dreams-server/app/media"
	"github.com/dreamlabs/dreams-server/app/tasks"
	"github.com/dreamlabs/dreams-server/app/wallet"
)

func main() {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Dream$ server", "version", appCfg.Version)

	db, err := database.NewConnection(
		appCfg.DBHost, appCfg.DBPort, appCfg.DBUser,
		appCfg.DBPassword, appCfg.DBName)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "migration_version", version, "dirty", dirty)

	redisCache, err := cache.NewCache(appCfg.RedisAddr)
	if err != nil {
		slog.Error("Failed to connect to Redis", "addr", appCfg.RedisAddr, "error", err)
		os.Exit(1)
	}
	defer redisCache.Close()
	slog.Info("Connected to Redis", "addr", appCfg.RedisAddr)

	catalogCache := content.NewCatalogCache(appCfg.ContentDir)
	if err := catalogCache.Run(); err != nil {
		slog.Error("Failed to load content catalog", "dir", appCfg.ContentDir, "error", err)
		os.Exit(1)
	}
	slog.Info("Content catalog loaded", "entries", catalogCache.GetEntryCount())

	userRepo := database.NewUserRepository(db)
	postRepo := database.NewPostRepository(db)
	engagementRepo := database.NewEngagementRepository(db)
	walletRepo := database.NewWalletRepository(db)
	messageRepo := database.NewMessageRepository(db)

	sessionTTL := time.Duration(appCfg.SessionTTLHours) * time.Hour
	accountService := account.NewService(userRepo, postRepo, engagementRepo, messageRepo, redisCache, sessionTTL)
	walletService := wallet.NewService(walletRepo, appCfg.MinWithdrawal, appCfg.HistoryLimit)
	feedService := feed.NewService(postRepo)
	tracker := feed.NewTracker(walletService)

	mediaStore := media.NewDiskStore(appCfg.MediaDir, appCfg.BaseUrl)

	scheduler := tasks.NewScheduler(catalogCache, userRepo, postRepo, walletRepo)
	scheduler.Start()
	defer scheduler.Stop()
	slog.Info("Background scheduler started", "workers", appCfg.WorkerCount, "interval_seconds", appCfg.SchedulerInterval)

	handler := api.NewHandler(accountService, feedService, tracker, walletService,
		mediaStore, redisCache, catalogCache, userRepo, postRepo)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port, "base_url", appCfg.BaseUrl)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received shutdown signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("Shutdown complete")
}
