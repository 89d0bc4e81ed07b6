package config

import (
	"os"
	"strconv"
	"time"

	"telegram_tasks/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	APIKey      string
	BotToken    string

	// API base URL the bot process talks to.
	APIURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Reminder worker
	ReminderPollInterval time.Duration
	// Timeout for a single Telegram sendMessage call.
	DeliveryTimeout time.Duration

	LogLevel string
	LogJSON  bool
}

// Load reads configuration from the environment (.env is honored when
// present). Missing required values are fatal.
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	apiKey := os.Getenv("API_KEY")
	if apiKey == "" {
		logger.Fatal("API_KEY is not set")
	}

	botToken := os.Getenv("BOT_TOKEN")
	if botToken == "" {
		logger.Fatal("BOT_TOKEN is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:" + port + "/api"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	pollInterval := time.Second
	if v := os.Getenv("REMINDER_POLL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			pollInterval = time.Duration(n) * time.Second
		}
	}

	deliveryTimeout := 5 * time.Second
	if v := os.Getenv("DELIVERY_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			deliveryTimeout = time.Duration(n) * time.Second
		}
	}

	return &Config{
		AppPort:              port,
		DatabaseURL:          dbURL,
		APIKey:               apiKey,
		BotToken:             botToken,
		APIURL:               apiURL,
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		RedisDB:              redisDB,
		ReminderPollInterval: pollInterval,
		DeliveryTimeout:      deliveryTimeout,
		LogLevel:             envDefault("LOG_LEVEL", "info"),
		LogJSON:              os.Getenv("LOG_JSON") == "true",
	}
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
