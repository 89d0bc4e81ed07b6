package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"telegram_tasks/internal/config"
	"telegram_tasks/internal/db"
	httpServer "telegram_tasks/internal/http"
	"telegram_tasks/internal/http/handlers"
	"telegram_tasks/internal/http/middleware"
	"telegram_tasks/internal/logger"
	"telegram_tasks/internal/repository"
	"telegram_tasks/internal/scheduler"
	"telegram_tasks/internal/service"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	dbPool := db.Connect(cfg.DatabaseURL)
	defer dbPool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		logger.Fatal("apply migrations", "error", err)
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	}
	middleware.InitRedisRateLimiter(rdb)

	userRepo := repository.NewUserRepository(dbPool)
	tagRepo := repository.NewTagRepository(dbPool)
	taskRepo := repository.NewTaskRepository(dbPool)

	users := service.NewUserService(userRepo)
	tags := service.NewTagService(tagRepo)
	tasks := service.NewTaskService(taskRepo, tagRepo)

	// Reminders need Redis for the delayed queue. Without it the API still
	// works, tasks just never fire.
	var sched handlers.ReminderScheduler
	var worker *scheduler.Worker
	if rdb != nil {
		queue := scheduler.NewQueue(rdb)
		sched = queue

		sender, err := scheduler.NewTelegramSender(cfg.BotToken, cfg.DeliveryTimeout)
		if err != nil {
			logger.Fatal("init telegram sender", "error", err)
		}
		notifier := service.NewNotificationService(taskRepo, sender)

		worker = scheduler.NewWorker(queue, notifier, cfg.ReminderPollInterval)
		worker.Start()
	} else {
		logger.Warn("REDIS_ADDR is not set, reminders disabled")
	}

	r := gin.Default()

	h := handlers.NewHandler(users, tags, tasks, sched)
	health := handlers.NewHealthHandler(dbPool)
	httpServer.RegisterRoutes(r, h, health, cfg.APIKey)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	if worker != nil {
		worker.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
