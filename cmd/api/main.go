package main

import (
	"context"
	"log"
	stdsync "sync"

	common_api "notion-mirror/internal/common/api"
	"notion-mirror/internal/config"
	"notion-mirror/internal/database"
	"notion-mirror/internal/features/schema"
	sync_feature "notion-mirror/internal/features/sync"
	"notion-mirror/internal/features/system"
	"notion-mirror/internal/logger"
	"notion-mirror/internal/notion"

	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),    // Cast to Interface
		fx.ResultTags(`group:"routes"`), // Add to Group
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
	log.Printf("Registered %d routes\n", len(routes))
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := app.Listen(":8080"); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// ScheduleSyncCycles runs a sync cycle every five minutes, carrying the
// returned state in memory between invocations. A cycle that still has
// pages left is driven to completion within one scheduler tick.
func ScheduleSyncCycles(lc fx.Lifecycle, syncService sync_feature.SyncService, zapLogger *zap.Logger) {
	scheduler := cron.New()

	var mu stdsync.Mutex
	var carried *sync_feature.State

	_, err := scheduler.AddFunc("@every 5m", func() {
		mu.Lock()
		defer mu.Unlock()

		for {
			result, err := syncService.RunCycle(context.Background(), carried)
			if err != nil {
				zapLogger.Error("scheduled sync cycle failed", zap.Error(err))
				return
			}
			// An empty fetch returns no next state; keep the old one.
			if result.NextState != nil {
				carried = result.NextState
			}
			if !result.HasMore {
				return
			}
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule sync cycles: %v", err)
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			scheduler.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			scheduler.Stop()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Remote capabilities
			notion.NewClient,
			notion.NewMarkdownConverter,

			// Interface Adapters to satisfy the feature capabilities
			func(c *notion.Client) schema.MetadataClient { return c },
			func(c *notion.Client) sync_feature.QueryClient { return c },
			func(m *notion.MarkdownConverter) sync_feature.Flattener { return m },
			func(p *database.Postgres) schema.Relational { return p },
			func(p *database.Postgres) sync_feature.Execer { return p },

			// Initialize Services
			schema.NewSchemaService,
			sync_feature.NewUpsertWriter,
			sync_feature.NewSyncService,

			// Initialize Controllers
			schema.NewSchemaController,
			sync_feature.NewSyncController,

			// Initialize API Routes
			AsRoute(schema.NewSchemaApi),
			AsRoute(sync_feature.NewSyncApi),
			AsRoute(system.NewHealthApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
			ScheduleSyncCycles,
		),
	)

	app.Run()
}
