package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type DB struct {
	DbHOST         string
	DbPORT         string
	DbUSER         string
	DbPASSWORD     string
	DbNAME         string
	DbSSLMODE      string
	MigrationsPath string
}

type MinIO struct {
	Enabled    bool
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
	PublicURL  string
}

type Redis struct {
	URL string
	TTL time.Duration
}

// Backend configures the development content service (cmd/blogserver)
type Backend struct {
	Port    int
	Storage string
}

type Config struct {
	ServerPort     int
	ServiceBaseURL string
	CORSOrigin     string
	Backend        Backend
	DB             DB
	MinIO          MinIO
	Redis          Redis
	MaxUploadSize  int64
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil || duration < 0 {
		return fallback
	}
	return duration
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil || size <= 0 {
		return 10 * 1024 * 1024
	}
	return size
}

func LoadDB() DB {
	return DB{
		DbHOST:         getEnv("DB_HOST", "localhost"),
		DbPORT:         getEnv("DB_PORT", "5432"),
		DbUSER:         getEnv("DB_USER", "postgres"),
		DbPASSWORD:     getEnv("DB_PASSWORD", "password"),
		DbNAME:         getEnv("DB_NAME", "blogs"),
		DbSSLMODE:      getEnv("DB_SSLMODE", "disable"),
		MigrationsPath: getEnv("DB_MIGRATIONS", "migrations/001_create_tables.sql"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Enabled:    getEnvBool("MINIO_ENABLED", false),
		Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "covers"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
		PublicURL:  getEnv("MINIO_PUBLIC_URL", ""),
	}
}

func LoadRedis() Redis {
	return Redis{
		URL: getEnv("REDIS_URL", ""),
		TTL: parseDuration(getEnv("CACHE_TTL", "1m"), time.Minute),
	}
}

func LoadBackend() Backend {
	storage := strings.ToLower(getEnv("BACKEND_STORAGE", StorageMemory))
	if storage != StoragePostgres {
		storage = StorageMemory
	}

	return Backend{
		Port:    getEnvAsInt("BACKEND_PORT", 3001),
		Storage: storage,
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort:     getEnvAsInt("SERVER_PORT", 8080),
		ServiceBaseURL: getEnv("SERVICE_BASE_URL", "http://localhost:3001"),
		CORSOrigin:     getEnv("CORS_ORIGIN", "*"),
		Backend:        LoadBackend(),
		DB:             LoadDB(),
		MinIO:          LoadMinIO(),
		Redis:          LoadRedis(),
		MaxUploadSize:  parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "10485760")),
	}
}
