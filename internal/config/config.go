package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const endpointPrefix = "WORDPRESS_GRAPHQL_ENDPOINT="

type Config struct {
	Env     string
	Port    string
	BaseURL string
	LogFile string

	// ProductSource is "sql" (direct database) or "supabase" (REST API).
	ProductSource string
	DBDriver      string // sqlite | postgres
	DBDSN         string

	SupabaseURL     string
	SupabaseAnonKey string

	CMSEndpoint   string
	CMSRevalidate time.Duration

	RedisAddr     string
	RedisPassword string
}

func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Env:             getenv("APP_ENV", "dev"),
		Port:            getenv("PORT", "8080"),
		BaseURL:         strings.TrimRight(getenv("BASE_URL", "https://taketora-antique.com"), "/"),
		LogFile:         getenv("LOG_FILE", ""),
		ProductSource:   strings.ToLower(getenv("PRODUCT_SOURCE", "sql")),
		DBDriver:        strings.ToLower(getenv("DB_DRIVER", "sqlite")),
		DBDSN:           getenv("DB_DSN", "taketora.db"),
		SupabaseURL:     strings.TrimRight(getenv("SUPABASE_URL", ""), "/"),
		SupabaseAnonKey: getenv("SUPABASE_ANON_KEY", ""),
		CMSEndpoint:     NormalizeEndpoint(os.Getenv("WORDPRESS_GRAPHQL_ENDPOINT")),
		CMSRevalidate:   getduration("CMS_REVALIDATE", 60*time.Second),
		RedisAddr:       getenv("REDIS_ADDR", ""),
		RedisPassword:   getenv("REDIS_PASSWORD", ""),
	}
	if cfg.DBDriver != "postgres" {
		cfg.DBDriver = "sqlite"
	}
	if cfg.ProductSource != "supabase" {
		cfg.ProductSource = "sql"
	}

	log.Printf("[config] APP_ENV=%s PORT=%s BASE_URL=%s PRODUCT_SOURCE=%s DB_DRIVER=%s SUPABASE_URL=%s SUPABASE_ANON_KEY=%s CMS=%s REDIS_ADDR=%s",
		cfg.Env, cfg.Port, cfg.BaseURL, cfg.ProductSource, cfg.DBDriver, cfg.SupabaseURL, mask(cfg.SupabaseAnonKey), cfg.CMSEndpoint, cfg.RedisAddr)
	return cfg
}

// NormalizeEndpoint trims whitespace and a pasted "WORDPRESS_GRAPHQL_ENDPOINT="
// prefix left over from copying a .env line into a dashboard.
func NormalizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	return strings.TrimPrefix(raw, endpointPrefix)
}

func (c Config) Production() bool {
	return c.Env == "production" || c.Env == "prod"
}

func getenv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		log.Printf("[config] invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "****"
}
