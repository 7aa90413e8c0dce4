package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Host string
	Port string
}

type RedisCache struct {
	Host     string
	Port     string
	Password string
}

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Upstream points at the remote movie API the gateway fronts.
type Upstream struct {
	AuthBaseURL        string
	CatalogBaseURL     string
	InteractionBaseURL string
	ChatBaseURL        string
}

type Cache struct {
	ProfileTTL  time.Duration
	CatalogTTL  time.Duration
	SavedTTL    time.Duration
	GCInterval  time.Duration
	FlagMaxAge  time.Duration
	SessionTTL  time.Duration
	ChatHistory int
}

type Config struct {
	HTTP     HTTPServer
	Redis    RedisCache
	Postgres Postgres
	Upstream Upstream
	Cache    Cache
}

const logtag = "[config]"

func Load() *Config {
	configPath := flag.String("config", "", "path env file")
	flag.Parse()

	if *configPath != "" {
		if err := godotenv.Load(*configPath); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
		log.Printf("%s using env from : %s", logtag, *configPath)
	} else {
		log.Printf("%s using env from .env", logtag)
		_ = godotenv.Load()
	}

	cfg := &Config{
		HTTP:     *newHTTP(),
		Redis:    *newRedis(),
		Postgres: *newPostgres(),
		Upstream: *newUpstream(),
		Cache:    *newCache(),
	}

	log.Printf("%s gateway config : %+v\n", logtag, cfg)
	return cfg
}

func newHTTP() *HTTPServer {
	return &HTTPServer{
		Port: getenv("HTTP_PORT", "8080"),
		Host: getenv("HTTP_HOST", "localhost"),
	}
}

func newRedis() *RedisCache {
	return &RedisCache{
		Port:     getenv("REDIS_PORT", "6379"),
		Host:     getenv("REDIS_HOST", "redis"),
		Password: getenv("REDIS_PASSWORD", "shared"),
	}
}

func newPostgres() *Postgres {
	return &Postgres{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		User:     getenv("DB_USER", "admin"),
		Password: getenv("DB_PASSWORD", "shared"),
		DBName:   getenv("DB_NAME", "cinemind"),
		SSLMode:  getenv("DB_SSLMODE", "disable"),
	}
}

func newUpstream() *Upstream {
	base := getenv("UPSTREAM_BASE_URL", "http://localhost:8000/api")
	return &Upstream{
		AuthBaseURL:        getenv("UPSTREAM_AUTH_URL", base),
		CatalogBaseURL:     getenv("UPSTREAM_CATALOG_URL", base),
		InteractionBaseURL: getenv("UPSTREAM_INTERACTION_URL", base),
		ChatBaseURL:        getenv("UPSTREAM_CHAT_URL", base),
	}
}

func newCache() *Cache {
	return &Cache{
		ProfileTTL:  getenvDuration("CACHE_PROFILE_TTL", 5*time.Minute),
		CatalogTTL:  getenvDuration("CACHE_CATALOG_TTL", 10*time.Minute),
		SavedTTL:    getenvDuration("CACHE_SAVED_TTL", 5*time.Minute),
		GCInterval:  getenvDuration("CACHE_GC_INTERVAL", time.Minute),
		FlagMaxAge:  getenvDuration("AUTH_FLAG_MAX_AGE", 7*24*time.Hour),
		SessionTTL:  getenvDuration("SESSION_TTL", 7*24*time.Hour),
		ChatHistory: getenvInt("CHAT_HISTORY_LIMIT", 50),
	}
}

func getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	return val
}

func getenvDuration(key string, defaultValue time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		log.Printf("%s bad duration in %s : %v", logtag, key, err)
		return defaultValue
	}
	return d
}

func getenvInt(key string, defaultValue int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("%s bad int in %s : %v", logtag, key, err)
		return defaultValue
	}
	return n
}
