package shared

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog/log"
)

// ConfigPathEnvVar points at an optional YAML file layered under the environment.
const ConfigPathEnvVar = "CONFIG_PATH"

type Config struct {
	AppEnv      string `koanf:"app_env"`
	LogLevel    string `koanf:"log_level"`
	HTTPAddr    string `koanf:"http_addr" validate:"required"`
	MetricsAddr string `koanf:"metrics_addr"`

	StoreDriver string `koanf:"store_driver" validate:"oneof=bolt mysql postgres memory"`
	BoltPath    string `koanf:"bolt_path" validate:"required_if=StoreDriver bolt"`
	MySQLDSN    string `koanf:"mysql_dsn" validate:"required_if=StoreDriver mysql"`
	PostgresDSN string `koanf:"postgres_dsn" validate:"required_if=StoreDriver postgres"`
	AutoMigrate bool   `koanf:"auto_migrate"`

	CacheDriver     string `koanf:"cache_driver" validate:"oneof=redis none"`
	RedisAddr       string `koanf:"redis_addr"`
	RedisDB         int    `koanf:"redis_db"`
	RedisPass       string `koanf:"redis_password"`
	CacheTTLSeconds int    `koanf:"cache_ttl_seconds" validate:"gte=0"`

	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"gte=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RequestTimeout    time.Duration `koanf:"request_timeout"`

	UpstreamBase string `koanf:"upstream_base_url"`
	UpstreamKey  string `koanf:"upstream_api_key"`
	UpstreamRPS  int    `koanf:"upstream_rps"`
	Workers      int    `koanf:"ingest_workers" validate:"gte=1"`
}

// CacheTTL is the cache entry lifetime.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func defaultConfig() Config {
	return Config{
		AppEnv:            "prod",
		LogLevel:          "info",
		HTTPAddr:          ":8080",
		StoreDriver:       "bolt",
		BoltPath:          "data/menu_agent.db",
		MySQLDSN:          "root:root@tcp(localhost:3306)/menu?parseTime=true&charset=utf8mb4,utf8&loc=UTC",
		AutoMigrate:       true,
		CacheDriver:       "none",
		RedisAddr:         "localhost:6379",
		CacheTTLSeconds:   900,
		CORSOrigins:       []string{"http://localhost:3000", "http://localhost:5173"},
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    15 * time.Second,
		UpstreamRPS:       5,
		Workers:           8,
	}
}

// Load resolves configuration with precedence env > YAML file > defaults.
// A .env file in the working directory is loaded into the environment first.
func Load() (Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(&defaults, "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if err := k.Load(file.Provider(p), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", p, err)
		}
	}
	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	// comma-separated env value
	if v, ok := k.Get("cors_origins").(string); ok {
		_ = k.Set("cors_origins", splitList(v))
	}

	var c Config
	if err := k.Unmarshal("", &c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if c.UpstreamBase != "" && c.UpstreamKey == "" {
		log.Warn().Msg("UPSTREAM_API_KEY is empty")
	}
	return c, nil
}

// envKey maps HTTP_ADDR -> http_addr. Unrelated variables land on keys no
// field reads.
func envKey(s string) string {
	return strings.ToLower(s)
}

func splitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
