package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int

	DBDriver    string
	DBPath      string
	DatabaseURL string

	PhotoDir      string
	CatalogDir    string
	CORSOrigins   []string
	StorefrontURL string

	GeminiAPIKey    string
	GeminiModel     string
	AnalysisTimeout time.Duration

	ShopifyStore string
	ShopifyToken string

	EmailJSServiceID  string
	EmailJSTemplateID string
	EmailJSPublicKey  string
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when one exists; real environment
// variables win over it.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:         getEnv("PORT", "3000"),
		Environment:  getEnv("ENV", "development"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),

		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		DBPath:      getEnv("DB_PATH", "data/db/storefront.db"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		PhotoDir:      getEnv("PHOTO_DIR", "data/photos"),
		CatalogDir:    getEnv("CATALOG_DIR", ""),
		CORSOrigins:   getEnvAsList("CORS_ORIGINS", []string{"*"}),
		StorefrontURL: getEnv("STOREFRONT_URL", "http://localhost:3001"),

		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", ""),
		AnalysisTimeout: getEnvAsDuration("ANALYSIS_TIMEOUT", 20*time.Second),

		ShopifyStore: getEnv("SHOPIFY_STORE", ""),
		ShopifyToken: getEnv("SHOPIFY_TOKEN", ""),

		EmailJSServiceID:  getEnv("EMAILJS_SERVICE_ID", ""),
		EmailJSTemplateID: getEnv("EMAILJS_TEMPLATE_ID", ""),
		EmailJSPublicKey:  getEnv("EMAILJS_PUBLIC_KEY", ""),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

// getEnvAsDuration accepts Go durations ("20s") or a bare number of seconds.
func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultVal
}

func getEnvAsList(key string, defaultVal []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
