package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies YC_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated;
// the caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known YC_* environment variables and
// overwrites the corresponding Config fields when a variable is set.
// This lets operators inject secrets at deploy time without touching
// the TOML file.
func applyEnvOverrides(cfg *Config) {
	// ── Treasury ──
	setStr(&cfg.Treasury.BaseURL, "YC_TREASURY_BASE_URL")
	setInt(&cfg.Treasury.Year, "YC_TREASURY_YEAR")
	setDuration(&cfg.Treasury.FetchTimeout, "YC_TREASURY_FETCH_TIMEOUT")

	// ── Postgres ──
	setStr(&cfg.Postgres.DSN, "YC_POSTGRES_DSN")
	setStr(&cfg.Postgres.Host, "YC_POSTGRES_HOST")
	setInt(&cfg.Postgres.Port, "YC_POSTGRES_PORT")
	setStr(&cfg.Postgres.Database, "YC_POSTGRES_DATABASE")
	setStr(&cfg.Postgres.User, "YC_POSTGRES_USER")
	setStr(&cfg.Postgres.Password, "YC_POSTGRES_PASSWORD")
	setStr(&cfg.Postgres.SSLMode, "YC_POSTGRES_SSLMODE")
	setInt(&cfg.Postgres.PoolMaxConns, "YC_POSTGRES_POOL_MAX_CONNS")
	setInt(&cfg.Postgres.PoolMinConns, "YC_POSTGRES_POOL_MIN_CONNS")
	setBool(&cfg.Postgres.RunMigrations, "YC_POSTGRES_RUN_MIGRATIONS")

	// ── Redis ──
	setBool(&cfg.Redis.Enabled, "YC_REDIS_ENABLED")
	setStr(&cfg.Redis.Addr, "YC_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "YC_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "YC_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "YC_REDIS_POOL_SIZE")
	setInt(&cfg.Redis.MaxRetries, "YC_REDIS_MAX_RETRIES")
	setBool(&cfg.Redis.TLSEnabled, "YC_REDIS_TLS_ENABLED")
	setDuration(&cfg.Redis.CacheTTL, "YC_REDIS_CACHE_TTL")

	// ── Snapshots ──
	setBool(&cfg.Snapshots.Enabled, "YC_SNAPSHOTS_ENABLED")
	setStr(&cfg.Snapshots.Endpoint, "YC_SNAPSHOTS_ENDPOINT")
	setStr(&cfg.Snapshots.Region, "YC_SNAPSHOTS_REGION")
	setStr(&cfg.Snapshots.Bucket, "YC_SNAPSHOTS_BUCKET")
	setStr(&cfg.Snapshots.AccessKey, "YC_SNAPSHOTS_ACCESS_KEY")
	setStr(&cfg.Snapshots.SecretKey, "YC_SNAPSHOTS_SECRET_KEY")
	setBool(&cfg.Snapshots.UseSSL, "YC_SNAPSHOTS_USE_SSL")
	setBool(&cfg.Snapshots.ForcePathStyle, "YC_SNAPSHOTS_FORCE_PATH_STYLE")

	// ── Server ──
	setInt(&cfg.Server.Port, "YC_SERVER_PORT")
	setStringSlice(&cfg.Server.CORSOrigins, "YC_SERVER_CORS_ORIGINS")

	// ── Top-level ──
	setStr(&cfg.Mode, "YC_MODE")
	setStr(&cfg.LogLevel, "YC_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the
// environment variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
