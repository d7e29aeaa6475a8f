package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"campaignmanager/config"
	"campaignmanager/handlers/api"
	"campaignmanager/middleware"
	"campaignmanager/storage"
	"campaignmanager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config.toml")
	if err != nil {
		utils.Log.Error("Failed to load config: %v", err)
		os.Exit(1)
	}

	// The store loggers copy the level when they are created
	utils.Log.SetLevel(utils.ParseLevel(cfg.Log.Level))
	utils.Log.Info("Initializing CampaignManager...")

	// Initialize i18n system
	if err := utils.InitI18n(); err != nil {
		utils.Log.Error("Failed to initialize i18n: %v", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		utils.Log.Error("Failed to open storage: %v", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			utils.Log.Error("Failed to close storage: %v", err)
		}
	}()

	app := fiber.New(fiber.Config{
		AppName:      "CampaignManager",
		ErrorHandler: api.ErrorHandler,
		BodyLimit:    int(cfg.Storage.QuotaBytes) + 1024*1024,
	})

	// Add global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(helmet.New(helmet.Config{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "SAMEORIGIN",
		ReferrerPolicy:     "no-referrer",
	}))
	app.Use(middleware.LocaleMiddleware())
	if cfg.Server.RateLimit > 0 {
		app.Use(middleware.RateLimiter(cfg.Server.RateLimit, time.Minute))
	}
	if cfg.Server.CSRF {
		app.Use(middleware.CSRFProtection())
	}

	api.RegisterRoutes(app, store)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		utils.Log.Info("Shutting down...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			utils.Log.Error("Error during shutdown: %v", err)
		}
	}()

	// Start server
	utils.Log.Info("Starting server on port %d...", cfg.Server.Port)
	if err := app.Listen(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		utils.Log.Error("Error starting server: %v", err)
	}
}

// openStore opens the primary medium and the session replica and seeds
// the defaults
func openStore(cfg *config.Config) (*storage.Store, error) {
	shared := storage.BackendOptions{
		RedisAddr:     cfg.Redis.Addr,
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DB,
	}

	primaryOpts := shared
	primaryOpts.Path = cfg.Storage.Path
	primaryOpts.RedisPrefix = cfg.Redis.Prefix
	primary, err := storage.OpenBackend(cfg.Storage.Driver, primaryOpts)
	if err != nil {
		return nil, fmt.Errorf("primary %s: %w", cfg.Storage.Driver, err)
	}

	// The replica lives next to the primary without sharing its file or keys
	secondaryOpts := shared
	secondaryOpts.Path = filepath.Join(cfg.Storage.Path, "session")
	secondaryOpts.RedisPrefix = cfg.Redis.SessionPrefix()
	secondaryOpts.TTL = cfg.Session.TTL.Duration
	secondary, err := storage.OpenBackend(cfg.Session.Secondary, secondaryOpts)
	if err != nil {
		primary.Close()
		return nil, fmt.Errorf("session %s: %w", cfg.Session.Secondary, err)
	}

	opts := []storage.Option{storage.WithQuota(cfg.Storage.QuotaBytes)}
	if cfg.Seed.Enabled {
		opts = append(opts, storage.WithSeed(cfg.Seed.Username, cfg.Seed.Password))
	} else {
		opts = append(opts, storage.WithSeed("", ""))
	}

	store := storage.New(primary, secondary, opts...)
	store.Init()

	utils.Log.WithFields(map[string]interface{}{
		"driver":    cfg.Storage.Driver,
		"secondary": cfg.Session.Secondary,
	}).Info("Storage ready")
	return store, nil
}
