package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

func LoadEnv() error {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println(fmt.Sprintf("No .env file loaded: %v", err))
		return err
	}
	return nil
}

// GetEnv returns a required environment variable. A missing value aborts startup.
func GetEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("Environment variable %s is required but not set", key)
	}
	return value
}

// GetEnvOptional returns the variable's value, or empty when unset.
func GetEnvOptional(key string) string {
	return os.Getenv(key)
}

func GetEnvOrDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
