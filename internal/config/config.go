package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string
	Port int
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// MongoConfig holds document store settings. An empty URI selects the
// in-memory store.
type MongoConfig struct {
	URI      string
	Database string
}

// ValkeyConfig holds the unread-counter cache settings. An empty Addr
// disables the cache.
type ValkeyConfig struct {
	Addr string
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret   string
	TTLHours int
}

type Config struct {
	Server     ServerConfig
	Mongo      MongoConfig
	Valkey     ValkeyConfig
	JWT        JWTConfig
	UploadDir  string
	CORSOrigin string
}

// Load reads .env (if present) and builds the config from the environment,
// falling back to defaults that let the server run with no setup at all.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment and defaults")
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("HOST", "0.0.0.0"),
			Port: getEnvInt("PORT", 5000),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", ""),
			Database: getEnv("MONGO_DB", "freelancer"),
		},
		Valkey: ValkeyConfig{
			Addr: getEnv("VALKEY_ADDR", ""),
		},
		JWT: JWTConfig{
			Secret:   getEnv("JWT_SECRET", "dev-secret-change-me"),
			TTLHours: getEnvInt("JWT_TTL_HOURS", 72),
		},
		UploadDir:  getEnv("UPLOAD_DIR", "./uploads"),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
