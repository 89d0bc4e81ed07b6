package main

import (
	"os"
	"os/signal"
	"syscall"

	"telegram_tasks/internal/bot"
	"telegram_tasks/internal/botapi"
	"telegram_tasks/internal/config"
	"telegram_tasks/internal/logger"

	redis "github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	client := botapi.New(cfg.APIURL, cfg.APIKey)

	// Dialog state lives in Redis so restarts do not drop half-created
	// tasks. The in-memory store is a single-process fallback.
	var sessions bot.SessionStore
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		sessions = bot.NewRedisSessionStore(rdb)
	} else {
		logger.Warn("REDIS_ADDR is not set, using in-memory sessions")
		sessions = bot.NewMemorySessionStore()
	}

	b, err := bot.New(cfg.BotToken, client, sessions)
	if err != nil {
		logger.Fatal("init bot", "error", err)
	}

	go b.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down bot...")
	b.Stop()
}
