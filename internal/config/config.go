package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	CORS      CORSConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Logging   LoggingConfig
	Solver    SolverConfig
	Scheduler SchedulerConfig
}

type ServerConfig struct {
	Port string
	Host string
}

type DatabaseConfig struct {
	URL  string
	Host string
	Port int
	User string
	Pass string
	Name string
}

type AuthConfig struct {
	JWTSecret      string
	JWTExpiration  string
	CookieDomain   string
	CookieSecure   bool
	CookieSameSite string // "strict", "lax", "none"
	CookieHTTPOnly bool
	CookieMaxAge   int // in seconds
}

type CORSConfig struct {
	Origins []string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	CacheTTL string
}

type RateLimitConfig struct {
	Requests int
	Window   string
}

type LoggingConfig struct {
	Level  string
	Format string
}

// SolverConfig bounds the numerical engine's default behavior when a
// request doesn't override it explicitly.
type SolverConfig struct {
	DefaultPivotRule string
	MaxIterations    int
	RefCheckEnabled  bool // cross-check against the optional golp backend
}

// SchedulerConfig drives the cron-based batch worker that picks up
// queued jobs.
type SchedulerConfig struct {
	Enabled     bool
	CronExpr    string
	BatchSize   int
	WorkerCount int
}

// Load initializes and loads configuration using Viper
func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./server")
	viper.AddConfigPath("../")

	viper.AutomaticEnv()
	viper.SetEnvPrefix("")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("Warning: .env file not found, using environment variables and defaults")
		} else {
			log.Printf("Error reading config file: %v", err)
		}
	} else {
		log.Printf("Using config file: %s", viper.ConfigFileUsed())
	}

	config := &Config{
		Server: ServerConfig{
			Port: viper.GetString("PORT"),
			Host: viper.GetString("HOST"),
		},
		Database: DatabaseConfig{
			URL:  viper.GetString("DATABASE_URL"),
			Host: viper.GetString("DB_HOST"),
			Port: viper.GetInt("DB_PORT"),
			User: viper.GetString("DB_USER"),
			Pass: viper.GetString("DB_PASSWORD"),
			Name: viper.GetString("DB_NAME"),
		},
		Auth: AuthConfig{
			JWTSecret:      viper.GetString("JWT_SECRET"),
			JWTExpiration:  viper.GetString("JWT_EXPIRATION"),
			CookieDomain:   viper.GetString("COOKIE_DOMAIN"),
			CookieSecure:   viper.GetBool("COOKIE_SECURE"),
			CookieSameSite: viper.GetString("COOKIE_SAME_SITE"),
			CookieHTTPOnly: viper.GetBool("COOKIE_HTTP_ONLY"),
			CookieMaxAge:   viper.GetInt("COOKIE_MAX_AGE"),
		},
		CORS: CORSConfig{
			Origins: viper.GetStringSlice("CORS_ORIGINS"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			CacheTTL: viper.GetString("REDIS_CACHE_TTL"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Window:   viper.GetString("RATE_LIMIT_WINDOW"),
		},
		Logging: LoggingConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
		Solver: SolverConfig{
			DefaultPivotRule: viper.GetString("SOLVER_DEFAULT_PIVOT_RULE"),
			MaxIterations:    viper.GetInt("SOLVER_MAX_ITERATIONS"),
			RefCheckEnabled:  viper.GetBool("SOLVER_REF_CHECK_ENABLED"),
		},
		Scheduler: SchedulerConfig{
			Enabled:     viper.GetBool("SCHEDULER_ENABLED"),
			CronExpr:    viper.GetString("SCHEDULER_CRON_EXPR"),
			BatchSize:   viper.GetInt("SCHEDULER_BATCH_SIZE"),
			WorkerCount: viper.GetInt("SCHEDULER_WORKER_COUNT"),
		},
	}

	return config
}

// setDefaults sets default values for all configuration options
func setDefaults() {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("GIN_MODE", "debug")

	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_USER", "lpsimplex_user")
	viper.SetDefault("DB_PASSWORD", "lpsimplex_password")
	viper.SetDefault("DB_NAME", "lpsimplex")

	viper.SetDefault("JWT_SECRET", "your-super-secret-jwt-key-change-this-in-production")
	viper.SetDefault("JWT_EXPIRATION", "24h")

	viper.SetDefault("COOKIE_DOMAIN", "")
	viper.SetDefault("COOKIE_SECURE", false)
	viper.SetDefault("COOKIE_SAME_SITE", "lax")
	viper.SetDefault("COOKIE_HTTP_ONLY", true)
	viper.SetDefault("COOKIE_MAX_AGE", 7*24*60*60)

	viper.SetDefault("CORS_ORIGINS", []string{"http://localhost:3000", "http://127.0.0.1:3000"})

	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", 6379)
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_CACHE_TTL", "1h")

	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_WINDOW", "1m")

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")

	viper.SetDefault("SOLVER_DEFAULT_PIVOT_RULE", "bland")
	viper.SetDefault("SOLVER_MAX_ITERATIONS", 10000)
	viper.SetDefault("SOLVER_REF_CHECK_ENABLED", false)

	viper.SetDefault("SCHEDULER_ENABLED", true)
	viper.SetDefault("SCHEDULER_CRON_EXPR", "*/30 * * * * *")
	viper.SetDefault("SCHEDULER_BATCH_SIZE", 10)
	viper.SetDefault("SCHEDULER_WORKER_COUNT", 2)
}
