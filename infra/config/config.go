package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/CrestNiraj12/terminalwall/domain"
)

const (
	RealtimePostgres = "postgres"
	RealtimeNATS     = "nats"

	// DefaultStoreQuota mirrors the usual browser local-storage allowance.
	DefaultStoreQuota = 5 << 20
)

// Config holds application-level configuration.
type Config struct {
	DatabaseURL   string // Postgres DSN of the hosted posts table
	Migrate       bool   // Apply the embedded schema on start
	Realtime      string // "postgres" (LISTEN/NOTIFY) or "nats"
	NatsURL       string
	StorePath     string // Local key/value file
	StoreQuota    int64  // Bytes; writes beyond this fail like a full local storage
	MemcachedAddr string // When set, local key/value lives in memcached instead
	MetricsAddr   string // When set, serve Prometheus metrics here
	LogPath       string // When set, log to this file
	User          domain.User
}

// Load reads configuration from environment variables, after loading an
// optional .env file from the working directory.
//
//	WALL_DATABASE_URL  — Postgres URL or key/value DSN (required; falls back to DATABASE_URL)
//	WALL_MIGRATE       — apply schema on start (default: true)
//	WALL_REALTIME      — "postgres" or "nats" (default: postgres)
//	WALL_NATS_URL      — NATS server (default: nats://127.0.0.1:4222)
//	WALL_STORE_PATH    — local storage file (default: ~/.config/terminalwall/local_storage.json)
//	WALL_STORE_QUOTA   — local storage quota in bytes (default: 5 MiB)
//	WALL_MEMCACHED     — memcached address for local storage (optional)
//	WALL_METRICS_ADDR  — metrics listen address, e.g. ":9102" (optional)
//	WALL_LOG           — debug log file (optional)
//	WALL_USER_ID       — default user UUID
//	WALL_USER_NAME     — default user display name
func Load() (Config, error) {
	_ = godotenv.Load()

	dsn := strings.TrimSpace(os.Getenv("WALL_DATABASE_URL"))
	if dsn == "" {
		dsn = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}
	if dsn == "" {
		return Config{}, fmt.Errorf("WALL_DATABASE_URL is required")
	}
	// Accepts both postgres:// URLs and key/value DSNs.
	_, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return Config{}, fmt.Errorf("invalid WALL_DATABASE_URL: %w", err)
	}

	migrate := true
	if raw := strings.TrimSpace(os.Getenv("WALL_MIGRATE")); raw != "" {
		migrate, err = strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid WALL_MIGRATE: %w", err)
		}
	}

	realtime := strings.ToLower(strings.TrimSpace(os.Getenv("WALL_REALTIME")))
	switch realtime {
	case "":
		realtime = RealtimePostgres
	case RealtimePostgres, RealtimeNATS:
	default:
		return Config{}, fmt.Errorf("invalid WALL_REALTIME %q: want postgres or nats", realtime)
	}

	natsURL := strings.TrimSpace(os.Getenv("WALL_NATS_URL"))
	if natsURL == "" {
		natsURL = "nats://127.0.0.1:4222"
	}

	storePath := strings.TrimSpace(os.Getenv("WALL_STORE_PATH"))
	if storePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
		}
		storePath = filepath.Join(home, ".config", "terminalwall", "local_storage.json")
	}

	quota := int64(DefaultStoreQuota)
	if raw := strings.TrimSpace(os.Getenv("WALL_STORE_QUOTA")); raw != "" {
		quota, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || quota <= 0 {
			return Config{}, fmt.Errorf("invalid WALL_STORE_QUOTA: must be a positive byte count")
		}
	}

	user := domain.DefaultUser
	if raw := strings.TrimSpace(os.Getenv("WALL_USER_ID")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid WALL_USER_ID: %w", err)
		}
		user.ID = id.String()
	}
	if name := strings.TrimSpace(os.Getenv("WALL_USER_NAME")); name != "" {
		user.Name = name
	}

	return Config{
		DatabaseURL:   dsn,
		Migrate:       migrate,
		Realtime:      realtime,
		NatsURL:       natsURL,
		StorePath:     storePath,
		StoreQuota:    quota,
		MemcachedAddr: strings.TrimSpace(os.Getenv("WALL_MEMCACHED")),
		MetricsAddr:   strings.TrimSpace(os.Getenv("WALL_METRICS_ADDR")),
		LogPath:       strings.TrimSpace(os.Getenv("WALL_LOG")),
		User:          user,
	}, nil
}
