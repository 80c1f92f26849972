package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort int
	Database   DatabaseConfig
	Token      TokenConfig
}

// DatabaseConfig describes the key-value table backing the identity store.
type DatabaseConfig struct {
	Table     string
	Region    string
	IndexName string

	// Endpoint overrides the service endpoint, used with a local
	// DynamoDB container. Empty in production.
	Endpoint  string
	AccessKey string
	SecretKey string
}

type TokenConfig struct {
	Secret string
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	dbConfig := DatabaseConfig{
		Table:     getEnv("DB_TABLE", ""),
		Region:    getEnv("AWS_REGION", "us-east-1"),
		IndexName: getEnv("DB_INDEX_1", ""),
		Endpoint:  getEnv("DB_ENDPOINT", ""),
		AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
	}

	return Config{
		ServerPort: getEnvInt("SERVER_PORT", 8080),
		Database:   dbConfig,
		Token:      TokenConfig{Secret: getEnv("TOKEN_SECRET", "")},
	}
}

// Validate checks that every required setting is present. It is called
// once at startup so missing configuration fails fast instead of on the
// first request.
func (c Config) Validate() error {
	if c.Database.Table == "" {
		return fmt.Errorf("DB_TABLE is required")
	}
	if c.Database.Region == "" {
		return fmt.Errorf("AWS_REGION is required")
	}
	if c.Database.IndexName == "" {
		return fmt.Errorf("DB_INDEX_1 is required")
	}
	if c.Token.Secret == "" {
		return fmt.Errorf("TOKEN_SECRET is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}
