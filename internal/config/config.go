package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries the process configuration, read from the environment with
// sensible local-development defaults.
type Config struct {
	MongoURI     string
	DBName       string
	RedisAddr    string
	Port         string
	QuizCacheTTL time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:       getEnv("DB_NAME", "quiz_management"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		Port:         getEnv("PORT", "8080"),
		QuizCacheTTL: getDuration("QUIZ_CACHE_TTL", 5*time.Minute),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
