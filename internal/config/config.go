package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	DatabaseURL        string
	JWTSecret          string
	JWTIssuer          string
	AccessTTLSeconds   int64
	RefreshTTLSeconds  int64
	CorsOrigins        []string
	StorageEndpoint    string
	StorageAccessKey   string
	StorageSecretKey   string
	StorageBucket      string
	StorageUseSSL      bool
	StoragePublicBase  string
	TranslateAPIURL    string
	TranslateAPIKey    string
	TranslateModel     string
	StatsSampleSeconds int
}

func Load() Config {
	return Config{
		DatabaseURL:        mustEnv("DATABASE_URL"),
		JWTSecret:          mustEnv("JWT_SECRET"),
		JWTIssuer:          envOr("JWT_ISSUER", "cryptoschool"),
		AccessTTLSeconds:   int64(envOrInt("ACCESS_TTL_SECONDS", 14400)),
		RefreshTTLSeconds:  int64(envOrInt("REFRESH_TTL_SECONDS", 1209600)),
		CorsOrigins:        parseCSV(envOr("CORS_ORIGINS", "")),
		StorageEndpoint:    envOr("STORAGE_ENDPOINT", "localhost:9000"),
		StorageAccessKey:   envOr("STORAGE_ACCESS_KEY", ""),
		StorageSecretKey:   envOr("STORAGE_SECRET_KEY", ""),
		StorageBucket:      envOr("STORAGE_BUCKET", "uploads"),
		StorageUseSSL:      envOrBool("STORAGE_USE_SSL", false),
		StoragePublicBase:  envOr("STORAGE_PUBLIC_BASE", ""),
		TranslateAPIURL:    envOr("TRANSLATE_API_URL", "https://api.openai.com/v1/chat/completions"),
		TranslateAPIKey:    envOr("TRANSLATE_API_KEY", ""),
		TranslateModel:     envOr("TRANSLATE_MODEL", "gpt-4o-mini"),
		StatsSampleSeconds: envOrInt("STATS_SAMPLE_INTERVAL", 30),
	}
}

func mustEnv(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		panic("missing env var: " + key)
	}
	return value
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}
