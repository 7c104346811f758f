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

// IdentityConfig holds identity-provider settings: the HMAC secret used to
// verify session tokens and the admin API used to manage accounts.
type IdentityConfig struct {
	JWTSecret      string
	APIBaseURL     string
	APIKey         string
	RequestTimeout int // seconds
}

// OCRConfig holds the simulated OCR worker pool settings.
type OCRConfig struct {
	Workers         int
	QueueSize       int
	MaxAttempts     int
	ProcessingDelay int // milliseconds, simulated recognition time
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost          string
	Port             string
	PresignExpiryMin int
	Database         DatabaseConfig
	MinIO            MinIOConfig
	Identity         IdentityConfig
	OCR              OCRConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:          getEnv("APP_HOST", "localhost:8080"),
		Port:             getEnv("PORT", "8080"), // default only for non-sensitive value
		PresignExpiryMin: getEnvInt("PRESIGN_EXPIRY_MIN", 15),
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
		Identity: IdentityConfig{
			JWTSecret:      getEnv("IDENTITY_JWT_SECRET", ""),
			APIBaseURL:     getEnv("IDENTITY_API_BASE_URL", ""),
			APIKey:         getEnv("IDENTITY_API_KEY", ""),
			RequestTimeout: getEnvInt("IDENTITY_REQUEST_TIMEOUT_SEC", 10),
		},
		OCR: OCRConfig{
			Workers:         getEnvInt("OCR_WORKERS", 3),
			QueueSize:       getEnvInt("OCR_QUEUE_SIZE", 100),
			MaxAttempts:     getEnvInt("OCR_MAX_ATTEMPTS", 3),
			ProcessingDelay: getEnvInt("OCR_PROCESSING_DELAY_MS", 3000),
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
