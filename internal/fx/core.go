package fx

import (
	"fmt"
	"net/http"
	"time"

	"lpsimplex/internal/auth"
	"lpsimplex/internal/cache"
	"lpsimplex/internal/config"
	"lpsimplex/internal/middleware"
	"lpsimplex/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// CoreModule provides core application dependencies.
var CoreModule = fx.Module("core",
	fx.Provide(
		config.Load,

		NewLogger,
		NewDatabase,
		NewRedis,
		NewCache,
		NewAuthService,

		NewGinRouter,

		middleware.NewMiddleware,
		middleware.NewCORS,
	),
)

// NewLogger builds a zap logger whose encoding and level follow config.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.Logging.Format == "console" {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Logging.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zcfg.Level = level

	log, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	log.Info("Logger initialized",
		zap.String("level", cfg.Logging.Level),
		zap.String("format", cfg.Logging.Format),
	)
	return log, nil
}

// NewDatabase opens the gorm/postgres connection pool.
func NewDatabase(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	log.Info("Connecting to database...",
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.String("database", cfg.Database.Name),
	)

	dsn := cfg.Database.URL
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Pass, cfg.Database.Name,
		)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		log.Error("Failed to connect to database", zap.Error(err))
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Error("Failed to get database instance", zap.Error(err))
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info("Successfully connected to database")
	return db, nil
}

// NewRedis wraps config.NewRedisClient for fx injection.
func NewRedis(cfg *config.Config, log *zap.Logger) *redis.Client {
	return config.NewRedisClient(cfg, log)
}

// NewCache wires the solve-result memoization layer over Redis.
func NewCache(rdb *redis.Client, log *zap.Logger, cfg *config.Config) *cache.Cache {
	ttl, err := time.ParseDuration(cfg.Redis.CacheTTL)
	if err != nil {
		ttl = time.Hour
	}
	return cache.New(rdb, log, ttl)
}

// NewAuthService wires the JWT issuance/validation service.
func NewAuthService(cfg *config.Config) *auth.Service {
	ttl, err := time.ParseDuration(cfg.Auth.JWTExpiration)
	if err != nil {
		ttl = 24 * time.Hour
	}
	return auth.NewService(cfg.Auth.JWTSecret, ttl)
}

// NewGinRouter creates a new Gin router with the standard middleware
// chain and health/swagger endpoints.
func NewGinRouter(cfg *config.Config, log *zap.Logger) *gin.Engine {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.ErrorHandlerMiddleware())
	r.Use(middleware.NewCORS(cfg.CORS.Origins))
	r.Use(middleware.IPRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Requests*2))

	if config.IsDevelopment() {
		r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("[%s] %s %s %d %s \"%s\" %s\n",
				param.TimeStamp.Format("2006/01/02 - 15:04:05"),
				param.ClientIP, param.Method, param.StatusCode, param.Latency, param.Path, param.ErrorMessage,
			)
		}))
	}

	r.GET("/health", func(c *gin.Context) {
		shared.RespondWithSuccess(c, http.StatusOK, "Service is healthy", gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	r.StaticFile("/openapi/swagger.yaml", "./docs/swagger.yaml")

	url := ginSwagger.URL("/openapi/swagger.yaml")
	swaggerHandler := ginSwagger.WrapHandler(swaggerFiles.Handler, url,
		ginSwagger.PersistAuthorization(true),
		ginSwagger.DocExpansion("list"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	)
	r.GET("/swagger/*any", swaggerHandler)
	r.GET("/swagger-ui/*any", swaggerHandler)

	return r
}
