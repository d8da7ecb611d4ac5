package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trolley/core/config"
	"trolley/core/database"
	"trolley/core/loader"
	"trolley/core/logger"
	"trolley/core/metrics"
	"trolley/core/middleware/auth"
	"trolley/core/middleware/rayid"
	"trolley/core/notify"
	"trolley/core/storage"
	"trolley/feature/item"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "trolley/docs/swagger"
)

// @title Trolley API
// @version 1.0
// @description API for reconciling items against override batches.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the trolley server",
	Long:  `Starts the HTTP server, resumes pending recomputes and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database (Optional, the collection stays in memory without it)
		var repo *item.Repository
		if db, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed, items are kept in memory", zap.Error(err))
		} else {
			repo = item.NewRepository(db)
			logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
		}

		// 4. Initialize Storage
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		// 5. Initialize Notifications
		publisher, err := notify.New(cfg.Notify, logg)
		if err != nil {
			logg.Warn("Redis notifications unavailable, logging events instead", zap.Error(err))
			publisher = notify.NewLogPublisher(logg)
		}

		// 6. Initialize Features
		items := item.NewFeature(repo, store, cfg.Storage.Bucket, publisher, cfg.Reconcile, logg)
		if err := items.Service().Init(context.Background()); err != nil {
			logg.Fatal("Failed to load items", zap.Error(err))
		}

		mgr := loader.NewManager(logg)
		mgr.Register(items)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Request logging with the ray id attached
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Public endpoints
		metrics.RegisterMetrics()
		app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 4. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 5. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("address", cfg.Server.Address()))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := items.Service().Close(ctx); err != nil {
			logg.Warn("Failed to close item service", zap.Error(err))
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
