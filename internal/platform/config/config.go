package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries all environment-provided settings. It is constructed once in
// main and passed by reference; nothing in this codebase reads the environment
// after startup.
type Config struct {
	AppEnv  string
	APIPort string

	SessionSecret []byte

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	GeminiAPIKey string
}

const devSessionSecret = "dev-secret"

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		APIPort:       getEnv("API_PORT", "8080"),
		SessionSecret: []byte(getEnv("SESSION_SECRET", devSessionSecret)),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "user"),
		DBPassword:    getEnv("DB_PASSWORD", "password"),
		DBName:        getEnv("DB_NAME", "shopcaster_db"),
		DBSslMode:     getEnv("DB_SSLMODE", "disable"),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
	}

	if string(cfg.SessionSecret) == devSessionSecret {
		log.Println("WARN: SESSION_SECRET not set, using built-in development secret")
	}

	cfg.DBConnStr = "host=" + cfg.DBHost +
		" port=" + cfg.DBPort +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" sslmode=" + cfg.DBSslMode

	return cfg
}

// IsProduction gates the Secure flag on session cookies.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
