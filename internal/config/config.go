package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"
)

// Config represents the cost reporting service configuration.
type Config struct {
	Server  ServerConfig
	CORS    CORSConfig
	Pricing PricingConfig
	Redis   RedisConfig
	Report  ReportConfig
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int `env:"SERVER_PORT"          envDefault:"8080"`
	ReadTimeout  int `env:"SERVER_READ_TIMEOUT"  envDefault:"30"`
	WriteTimeout int `env:"SERVER_WRITE_TIMEOUT" envDefault:"30"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// PricingConfig contains pricing source and cache settings.
type PricingConfig struct {
	ModelsURL        string        `env:"PRICING_MODELS_URL"`
	GeminiPricingURL string        `env:"PRICING_GEMINI_URL"`
	VertexPricingURL string        `env:"PRICING_VERTEX_URL"`
	FetchTimeout     time.Duration `env:"PRICING_FETCH_TIMEOUT"    envDefault:"30s"`
	CacheBackend     string        `env:"PRICING_CACHE_BACKEND"    envDefault:"file"`
	CacheFile        string        `env:"PRICING_CACHE_FILE"       envDefault:"pricing-cache.json"`
	RefreshSchedule  string        `env:"PRICING_REFRESH_SCHEDULE" envDefault:""`
	Offline          bool          `env:"PRICING_OFFLINE"          envDefault:"false"`
}

// RedisConfig contains Redis connection settings for the shared pricing
// cache backend.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"     envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB"       envDefault:"0"`
	Key      string `env:"REDIS_KEY"      envDefault:""`
}

// ReportConfig contains reporting defaults.
type ReportConfig struct {
	Currency     string   `env:"REPORT_CURRENCY"      envDefault:"USD"`
	GeminiModels []string `env:"REPORT_GEMINI_MODELS" envSeparator:","`
	VertexModels []string `env:"REPORT_VERTEX_MODELS" envSeparator:","`
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out
	*ServerConfig
	*CORSConfig
	*PricingConfig
	*RedisConfig
	*ReportConfig
}

// Load loads environment files and parses configuration.
func Load() *Config {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		dig.Out{},
		&cfg.Server,
		&cfg.CORS,
		&cfg.Pricing,
		&cfg.Redis,
		&cfg.Report,
	}
}
