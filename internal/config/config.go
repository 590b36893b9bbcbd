package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	DataDir string // JSON catalogs: rules.json, questions.json per level

	AuthHMACSecret string
	SessionTTL     time.Duration

	AdminUser     string
	AdminPassHash string // bcrypt

	CORSOrigins []string
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:       addr,
		DBDriver:       envOr("DB_DRIVER", "sqlite"),
		DBDSN:          envOr("DB_DSN", ""),
		DataDir:        envOr("DATA_DIR", "./data"),
		AuthHMACSecret: envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		SessionTTL:     envDuration("SESSION_TTL", 8*time.Hour),
		AdminUser:      envOr("ADMIN_USER", "admin"),
		AdminPassHash:  envOr("ADMIN_PASS_HASH", ""),
		CORSOrigins:    csvOr("CORS_ORIGINS", "http://localhost:3000"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
