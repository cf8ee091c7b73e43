package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	ServerPort string
	LogMode    string // dev or prod
	// Grace period added on top of a quiz time limit before the sweeper
	// marks an in-progress attempt abandoned.
	AttemptGraceMinutes int
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	return &Config{
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBUser:              getEnv("DB_USER", "postgres"),
		DBPassword:          getEnv("DB_PASSWORD", "postgres"),
		DBName:              getEnv("DB_NAME", "learning_platform"),
		JWTSecret:           getEnv("JWT_SECRET", "secret"),
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		LogMode:             getEnv("LOG_MODE", "dev"),
		AttemptGraceMinutes: getEnvInt("ATTEMPT_GRACE_MINUTES", 5),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid value for %s: %v", key, err)
		return defaultValue
	}
	return intValue
}
