package config

import (
    "log"
    "os"
    "strings"
)

type Config struct {
    Port           string
    DBHost         string
    DBPort         string
    DBUser         string
    DBPassword     string
    DBName         string
    MongoURI       string
    JWTSecret      string
    AllowedOrigins []string
}

func LoadConfig() *Config {
    return &Config{
        Port:           getEnv("PORT", "8000"),
        DBHost:         getEnv("DB_HOST", "localhost"),
        DBPort:         getEnv("DB_PORT", "5432"),
        DBUser:         getEnv("DB_USER", "user"),
        DBPassword:     getEnv("DB_PASSWORD", "password"),
        DBName:         getEnv("DB_NAME", "driftboard"),
        MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
        JWTSecret:      getEnv("JWT_SECRET", "secret"),
        AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost,http://localhost:5173"), ","),
    }
}

// getEnv reads an environment variable and returns its value or a default value
func getEnv(key, defaultValue string) string {
    value, exists := os.LookupEnv(key)
    if !exists {
        value = defaultValue
        log.Printf("Environment variable %s not set, using default value: %s", key, defaultValue)
    }
    return value
}
