package config

import (
	"os"
	"strconv"
)

// Config holds all runtime settings, populated from environment variables.
type Config struct {
	Port         string
	ModelPath    string
	MetadataPath string
	DataDir      string
	CORSOrigins  string
	RateRPS      float64
	RateBurst    int
}

// Load reads configuration from the environment, applying defaults for
// anything unset.
func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8080"),
		ModelPath:    getEnv("MODEL_PATH", "models/food100_effb0.onnx"),
		MetadataPath: getEnv("METADATA_PATH", "models/model_metadata.json"),
		DataDir:      getEnv("DATA_DIR", "data"),
		CORSOrigins:  getEnv("CORS_ORIGINS", "*"),
		RateRPS:      getEnvFloat("RATE_RPS", 100),
		RateBurst:    getEnvInt("RATE_BURST", 20),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
