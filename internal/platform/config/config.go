package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// Log selects the slog handler.
type Log struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// Upstream configures the restcountries client.
type Upstream struct {
	BaseURL          string
	Timeout          time.Duration
	FailureThreshold int
	Cooldown         time.Duration
}

// Cache configures the payload cache. Redis is used when RedisConfig.URL is
// set; otherwise payloads are cached in memory.
type Cache struct {
	TTL time.Duration
}

type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Browse configures browse sessions and the background refresh.
type Browse struct {
	SessionTTL      time.Duration
	PageSize        int
	RefreshInterval time.Duration // 0 disables the refresh loop
	// CreateLimit caps new sessions per client IP per minute; 0 disables it.
	CreateLimit int
}

type Config struct {
	Server   Server
	Log      Log
	Upstream Upstream
	Cache    Cache
	Redis    RedisConfig
	Browse   Browse
}

// Load reads the given .env files (".env" when none are named) into the
// environment, then builds the config. Missing files are ignored; variables
// already set in the environment win.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	p := parser{}
	cfg := Config{
		Server: Server{
			Addr:            p.str("WORLDRANKS_ADDR", ":8080"),
			ShutdownTimeout: p.duration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Log: Log{
			Level:  p.str("LOG_LEVEL", "info"),
			Format: p.str("LOG_FORMAT", "json"),
		},
		Upstream: Upstream{
			BaseURL:          p.str("RESTCOUNTRIES_BASE_URL", "https://restcountries.com/v3.1"),
			Timeout:          p.duration("UPSTREAM_TIMEOUT", 10*time.Second),
			FailureThreshold: p.integer("UPSTREAM_FAILURE_THRESHOLD", 5),
			Cooldown:         p.duration("UPSTREAM_COOLDOWN", 30*time.Second),
		},
		Cache: Cache{
			TTL: p.duration("COUNTRY_CACHE_TTL", 10*time.Minute),
		},
		Redis: RedisConfig{
			URL:          p.str("REDIS_URL", ""),
			PoolSize:     p.integer("REDIS_POOL_SIZE", 10),
			MinIdleConns: p.integer("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  p.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  p.duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: p.duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Browse: Browse{
			SessionTTL:      p.duration("BROWSE_SESSION_TTL", 30*time.Minute),
			PageSize:        p.integer("BROWSE_PAGE_SIZE", 15),
			RefreshInterval: p.duration("REFRESH_INTERVAL", 0),
			CreateLimit:     p.integer("BROWSE_CREATE_LIMIT", 30),
		},
	}
	if err := errors.Join(p.errs...); err != nil {
		return Config{}, err
	}
	if cfg.Browse.PageSize < 1 {
		return Config{}, fmt.Errorf("BROWSE_PAGE_SIZE must be at least 1, got %d", cfg.Browse.PageSize)
	}
	return cfg, nil
}

// parser collects every malformed variable instead of stopping at the first.
type parser struct {
	errs []error
}

func (p *parser) str(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (p *parser) integer(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: invalid integer %q", key, v))
		return def
	}
	return n
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: invalid duration %q", key, v))
		return def
	}
	return d
}
