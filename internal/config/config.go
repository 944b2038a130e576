// Package config loads runtime settings from the environment (and an optional .env file).
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ThumbnailSize is one configured WIDTHxHEIGHT thumbnail rendition.
type ThumbnailSize struct {
	Width  int
	Height int
}

// String renders the size the way it appears in thumbnail filenames ("100x100").
func (s ThumbnailSize) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Config holds every setting the API server needs.
type Config struct {
	Port string

	// --- Database ---
	DBDriver   string // mysql, postgres or sqlite
	DBDSN      string
	DBLogLevel string

	// --- Redis (sessions + read cache) ---
	RedisAddr     string
	SessionTTL    time.Duration
	SessionSecure bool // Mark the session cookie Secure (HTTPS only)
	CacheTTL      time.Duration
	CachePrefix   string

	// --- Admin auth ---
	JWTSecret         string
	TokenTTL          time.Duration
	AdminUsername     string
	AdminPasswordHash string

	// --- Media ---
	MediaRoot      string
	MediaURL       string
	ThumbnailSizes []ThumbnailSize

	// --- Catalog ---
	GalleryLimit      int
	CategorySeparator string

	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

// Load reads the .env file (if present) and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	return &Config{
		Port: getEnv("PORT", "8080"),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBDSN:      getEnv("DB_DSN", "stockroom.db"),
		DBLogLevel: getEnv("DB_LOG_LEVEL", "warn"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		SessionTTL:    getEnvDuration("SESSION_TTL", 14*24*time.Hour),
		SessionSecure: strings.EqualFold(os.Getenv("SESSION_SECURE"), "true"),
		CacheTTL:      getEnvDuration("CACHE_TTL", 5*time.Minute),
		CachePrefix:   getEnv("CACHE_PREFIX", "stockroom:"),

		JWTSecret:         getEnv("JWT_SECRET", "A_VERY_SECURE_SECRET_KEY_REPLACE_LATER"),
		TokenTTL:          getEnvDuration("TOKEN_TTL", 72*time.Hour),
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		MediaRoot:      getEnv("MEDIA_ROOT", "./media"),
		MediaURL:       getEnv("MEDIA_URL", "http://localhost:8080/media/"),
		ThumbnailSizes: getEnvSizes("THUMBNAIL_SIZES"),

		GalleryLimit:      getEnvInt("IMAGE_GALLERY_LIMIT", 8),
		CategorySeparator: getEnvRaw("CATEGORY_SEPARATOR", " :: "),

		AllowedOrigins:  getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

// ParseSizes parses "100x100,300x200" into thumbnail sizes.
func ParseSizes(raw string) ([]ThumbnailSize, error) {
	var sizes []ThumbnailSize
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		w, h, ok := strings.Cut(strings.ToLower(part), "x")
		if !ok {
			return nil, fmt.Errorf("invalid thumbnail size %q", part)
		}
		width, err := strconv.Atoi(w)
		if err != nil || width <= 0 {
			return nil, fmt.Errorf("invalid thumbnail width in %q", part)
		}
		height, err := strconv.Atoi(h)
		if err != nil || height <= 0 {
			return nil, fmt.Errorf("invalid thumbnail height in %q", part)
		}
		sizes = append(sizes, ThumbnailSize{Width: width, Height: height})
	}
	return sizes, nil
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// getEnvRaw is getEnv without trimming; separators may be whitespace-padded.
func getEnvRaw(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnvSizes(key string) []ThumbnailSize {
	sizes, err := ParseSizes(os.Getenv(key))
	if err != nil {
		log.Printf("Warning: %v, thumbnails disabled", err)
		return nil
	}
	return sizes
}
