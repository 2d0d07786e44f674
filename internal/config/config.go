package config

import (
	"os"
	"strconv"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret          string
	AccessTTLMin    int
	RefreshTTLHours int
}

// LookupConfig holds settings for the product lookup providers.
type LookupConfig struct {
	OpenFoodFactsBaseURL string
	FDCBaseURL           string
	FDCAPIKey            string
	TimeoutSec           int
}

// CloudConfig holds settings for the cloud transfer target.
type CloudConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	MaxAttempts  int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Database DatabaseConfig
	MinIO    MinIOConfig
	JWT      JWTConfig
	Lookup   LookupConfig
	Cloud    CloudConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"), // default only for non-sensitive value
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		JWT: JWTConfig{
			Secret:          getEnv("JWT_SECRET", ""),
			AccessTTLMin:    getEnvInt("JWT_ACCESS_TTL_MIN", 15),
			RefreshTTLHours: getEnvInt("JWT_REFRESH_TTL_HOURS", 720),
		},
		Lookup: LookupConfig{
			OpenFoodFactsBaseURL: getEnv("OFF_BASE_URL", "https://world.openfoodfacts.org"),
			FDCBaseURL:           getEnv("FDC_BASE_URL", "https://api.nal.usda.gov/fdc"),
			FDCAPIKey:            getEnv("FDC_API_KEY", ""),
			TimeoutSec:           getEnvInt("LOOKUP_TIMEOUT_SEC", 5),
		},
		Cloud: CloudConfig{
			BaseURL:      getEnv("CLOUD_BASE_URL", ""),
			ClientID:     getEnv("CLOUD_CLIENT_ID", ""),
			ClientSecret: getEnv("CLOUD_CLIENT_SECRET", ""),
			MaxAttempts:  getEnvInt("CLOUD_MAX_ATTEMPTS", 3),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
