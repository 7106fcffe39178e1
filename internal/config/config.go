package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all environment-driven settings. Missing NASA credentials are
// not an error: the engine degrades to simulated data.
type Config struct {
	DatabaseURL string

	EarthdataUsername string
	EarthdataPassword string
	NASAAPIKey        string

	Port string
	Env  string
}

// Load reads configuration from the environment, consulting a local .env
// file when present
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	return &Config{
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		EarthdataUsername: getEnv("NASA_EARTHDATA_USERNAME", ""),
		EarthdataPassword: getEnv("NASA_EARTHDATA_PASSWORD", ""),
		NASAAPIKey:        getEnv("NASA_API_KEY", ""),
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("GO_ENV", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
