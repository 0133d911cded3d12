package main

import (
	"fmt"
	"net/http"
	"time"

	"database/sql"

	"github.com/joho/godotenv"
	"github.com/kmandell/mechanic-shop/internal/auth"
	"github.com/kmandell/mechanic-shop/internal/cache"
	"github.com/kmandell/mechanic-shop/internal/config"
	"github.com/kmandell/mechanic-shop/internal/handler"
	"github.com/kmandell/mechanic-shop/internal/middleware"
	"github.com/kmandell/mechanic-shop/internal/notify"
	"github.com/kmandell/mechanic-shop/internal/ratelimit"
	"github.com/kmandell/mechanic-shop/internal/repository"
	"github.com/kmandell/mechanic-shop/internal/service"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	responseCache := cache.NewStore(cfg.CacheTTL)
	mailer := notify.NewSender(cfg, logger)
	svc := service.NewService(repo, tokens, responseCache, mailer, logger, cfg)
	h := handler.NewHandler(svc, responseCache, cfg, logger)

	// Setup router
	requireAuth := middleware.RequireAuth(tokens, repo, logger)
	limiter := ratelimit.New(logger)
	router, err := h.Router(requireAuth, limiter)
	if err != nil {
		logger.Fatalf("Failed to build router: %v", err)
	}

	// Schedule overdue ticket reminders
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.ReminderSchedule, func() {
		if _, err := svc.SendOverdueReminders(); err != nil {
			logger.Errorf("Overdue reminder run failed: %v", err)
		}
	}); err != nil {
		logger.Fatalf("Failed to schedule reminders: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
