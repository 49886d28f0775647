package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the whole service configuration, read once at startup.
type Config struct {
	Server    Server
	Backend   Backend
	Geography Geography
	Selection Selection
	Media     Media
	Audit     Audit
	Redis     Redis
}

type Server struct {
	Addr               string
	Environment        string
	JWTSigningKey      string
	JWTIssuer          string
	JWTAudience        string
	AdminToken         string
	CORSAllowedOrigins []string
}

type Backend struct {
	BaseURL string
	Timeout time.Duration
}

// GeographySource names where the country/state/city dataset comes from.
// The bundled dataset is a small sample (a few countries with their main
// cities) for development and tests. Deployments use http or postgres.
type GeographySource string

const (
	GeographyBundled  GeographySource = "bundled"
	GeographyHTTP     GeographySource = "http"
	GeographyPostgres GeographySource = "postgres"
)

type Geography struct {
	Source      GeographySource
	URL         string
	DatabaseURL string
	CacheTTL    time.Duration
}

type Selection struct {
	LookupTimeout time.Duration
	SessionTTL    time.Duration
}

type Media struct {
	UploadURL   string
	Preset      string
	Concurrency int
	Timeout     time.Duration
}

type Audit struct {
	KafkaBrokers []string
	Topic        string
}

type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

const devSigningKey = "dev-secret-key-change-in-production"

// IsProduction reports whether the service runs with production safeguards.
func (c Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load reads an optional .env file and then the environment. Variables
// already set in the environment win over the file.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables with development
// defaults.
func FromEnv() (Config, error) {
	var errs []string
	dur := func(key string, def time.Duration) time.Duration {
		v := os.Getenv(key)
		if v == "" {
			return def
		}
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			errs = append(errs, key+" must be a positive duration")
			return def
		}
		return d
	}
	num := func(key string, def int) int {
		v := os.Getenv(key)
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			errs = append(errs, key+" must be a positive integer")
			return def
		}
		return n
	}

	cfg := Config{
		Server: Server{
			Addr:               getenv("ADDR", ":8080"),
			Environment:        getenv("ENVIRONMENT", "development"),
			JWTSigningKey:      getenv("JWT_SIGNING_KEY", devSigningKey),
			JWTIssuer:          getenv("JWT_ISSUER", "verification-platform"),
			JWTAudience:        getenv("JWT_AUDIENCE", "veriadmin"),
			AdminToken:         os.Getenv("ADMIN_TOKEN"),
			CORSAllowedOrigins: list(getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Backend: Backend{
			BaseURL: getenv("BACKEND_BASE_URL", "http://localhost:5000/api/v1"),
			Timeout: dur("BACKEND_TIMEOUT", 15*time.Second),
		},
		Geography: Geography{
			Source:      GeographySource(strings.ToLower(getenv("GEOGRAPHY_SOURCE", string(GeographyBundled)))),
			URL:         os.Getenv("GEOGRAPHY_URL"),
			DatabaseURL: os.Getenv("DATABASE_URL"),
			CacheTTL:    dur("GEOGRAPHY_CACHE_TTL", time.Hour),
		},
		Selection: Selection{
			LookupTimeout: dur("LOOKUP_TIMEOUT", 3*time.Second),
			SessionTTL:    dur("SELECTION_SESSION_TTL", 30*time.Minute),
		},
		Media: Media{
			UploadURL:   os.Getenv("MEDIA_UPLOAD_URL"),
			Preset:      os.Getenv("MEDIA_UPLOAD_PRESET"),
			Concurrency: num("MEDIA_UPLOAD_CONCURRENCY", 4),
			Timeout:     dur("MEDIA_UPLOAD_TIMEOUT", 60*time.Second),
		},
		Audit: Audit{
			KafkaBrokers: list(os.Getenv("KAFKA_BROKERS")),
			Topic:        getenv("AUDIT_TOPIC", "veriadmin.audit"),
		},
		Redis: Redis{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     num("REDIS_POOL_SIZE", 10),
			MinIdleConns: num("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  dur("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  dur("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: dur("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
	}

	switch cfg.Geography.Source {
	case GeographyBundled:
	case GeographyHTTP:
		if cfg.Geography.URL == "" {
			errs = append(errs, "GEOGRAPHY_URL is required when GEOGRAPHY_SOURCE=http")
		}
	case GeographyPostgres:
		if cfg.Geography.DatabaseURL == "" {
			errs = append(errs, "DATABASE_URL is required when GEOGRAPHY_SOURCE=postgres")
		}
	default:
		errs = append(errs, "GEOGRAPHY_SOURCE must be bundled, http or postgres")
	}
	if cfg.IsProduction() && cfg.Server.JWTSigningKey == devSigningKey {
		errs = append(errs, "JWT_SIGNING_KEY must be set in production")
	}

	if len(errs) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// list splits a comma-separated value, dropping blanks.
func list(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
