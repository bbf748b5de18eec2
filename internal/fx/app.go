package fx

import (
	"context"
	"net/http"
	"time"

	"lpsimplex/internal/api"
	"lpsimplex/internal/config"
	"lpsimplex/internal/database"
	"lpsimplex/internal/middleware"
	"lpsimplex/internal/scheduler"
	"lpsimplex/internal/store"
	"lpsimplex/internal/ws"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AppModule wires the solve API and scheduler into the running server.
var AppModule = fx.Module("app",
	fx.Provide(
		store.NewRepository,
		api.NewHandler,
		ws.NewHandler,
		NewScheduler,
	),
	fx.Invoke(
		RunMigrations,
		RegisterRoutes,
		StartScheduler,
		StartServer,
	),
)

// NewScheduler wires the batch solve-job drain from config.
func NewScheduler(repo *store.Repository, cfg *config.Config, logger *zap.Logger) *scheduler.Scheduler {
	return scheduler.New(repo, logger, cfg.Scheduler.CronExpr, cfg.Scheduler.BatchSize, cfg.Scheduler.WorkerCount)
}

// RegisterRoutes wires the solve API, streaming and health routes.
func RegisterRoutes(
	router *gin.Engine,
	solveH *api.Handler,
	streamH *ws.Handler,
	authMiddleware *middleware.Middleware,
	logger *zap.Logger,
) {
	logger.Info("registering routes")

	solveH.RegisterRoutes(router, authMiddleware)
	streamH.RegisterRoutes(router, authMiddleware)

	logger.Info("all routes registered")
}

// RunMigrations runs the database schema migration before the server
// starts accepting traffic.
func RunMigrations(db *gorm.DB, logger *zap.Logger) {
	logger.Info("running database migrations")
	if err := database.AutoMigrate(db, logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}
}

// StartScheduler starts and stops the batch solve-job drain alongside
// the server's own lifecycle.
func StartScheduler(lc fx.Lifecycle, sched *scheduler.Scheduler, cfg *config.Config, logger *zap.Logger) {
	if !cfg.Scheduler.Enabled {
		logger.Info("solve job scheduler disabled")
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			sched.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			sched.Stop()
			return nil
		},
	})
}

// StartServer starts the HTTP server with graceful shutdown.
func StartServer(lc fx.Lifecycle, router *gin.Engine, cfg *config.Config, logger *zap.Logger) {
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info("starting HTTP server",
					zap.String("addr", server.Addr),
				)
				logger.Info("server URLs",
					zap.String("base", "http://"+cfg.Server.Host+":"+cfg.Server.Port),
					zap.String("swagger", "http://"+cfg.Server.Host+":"+cfg.Server.Port+"/swagger/index.html"),
					zap.String("health", "http://"+cfg.Server.Host+":"+cfg.Server.Port+"/health"),
				)

				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal("failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("shutting down HTTP server...")
			shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Error("server forced to shutdown", zap.Error(err))
				return err
			}

			logger.Info("server gracefully stopped")
			return nil
		},
	})
}
