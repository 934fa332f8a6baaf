package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quantumworks-backend/config"
	_ "quantumworks-backend/docs" // Important for Swagger
	v1 "quantumworks-backend/internal/delivery/http/v1"
	"quantumworks-backend/internal/domain"
	"quantumworks-backend/internal/repository/memory"
	redisrepo "quantumworks-backend/internal/repository/redis"
	"quantumworks-backend/internal/site"
	"quantumworks-backend/internal/usecase"
	"quantumworks-backend/pkg/email"
	"quantumworks-backend/pkg/logger"
	"quantumworks-backend/pkg/redis"
	"quantumworks-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// @title           QuantumWorks Site API
// @version         1.0
// @description     Landing page, contact relay and newsletter for the QuantumWorks site.
// @host            localhost:8080
// @BasePath        /
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// 2. Setup Loggers
	logger.Init(cfg.GinMode)
	logger.Log.Info("Starting QuantumWorks site", "port", cfg.Port, "mail_provider", cfg.MailProvider)

	env := "development"
	if cfg.GinMode == gin.ReleaseMode {
		env = "production"
	}
	secLog := security.InitSecurityLogger("quantumworks-backend", env)
	defer secLog.Sync()

	// 3. Setup Redis (optional)
	var healthPing usecase.Pinger
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, using in-memory fallbacks", "error", err)
	} else {
		defer redis.Close()
		healthPing = redis.HealthCheck
	}

	// 4. Setup Repositories
	var newsletterRepo domain.NewsletterRepository = memory.NewNewsletterRepository()
	if c := redis.Client(); c != nil {
		newsletterRepo = redisrepo.NewNewsletterRepository(c)
	}

	// 5. Setup Email Sender
	sender, err := newSender(cfg)
	if err != nil {
		logger.Log.Error("Failed to configure mail provider", "error", err)
		os.Exit(1)
	}

	// 6. Setup UseCases
	contactUC := usecase.NewContactUsecase(sender, cfg.SiteName)
	newsletterUC := usecase.NewNewsletterUsecase(newsletterRepo)
	healthUC := usecase.NewHealthUsecase(healthPing)

	// 7. Load site content
	content, err := site.Load()
	if err != nil {
		logger.Log.Error("Failed to load site content", "error", err)
		os.Exit(1)
	}
	tmpl, err := site.Templates()
	if err != nil {
		logger.Log.Error("Failed to parse site templates", "error", err)
		os.Exit(1)
	}

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC:    contactUC,
		NewsletterUC: newsletterUC,
		HealthUC:     healthUC,
		SiteContent:  content,
		Templates:    tmpl,
		SecurityLog:  secLog,
		Redis:        redis.Client,
		Config:       cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

// newSender picks the mail provider. SMTP credentials are read per send; a
// missing mailbox fails submissions, not startup.
func newSender(cfg *config.Config) (email.Sender, error) {
	if cfg.MailProvider == "postmark" {
		return email.NewPostmarkSender(cfg)
	}

	smtpSender := email.NewEmailService(cfg)
	if !smtpSender.IsConfigured() {
		logger.Log.Warn("SMTP credentials not set - contact submissions will fail until they are",
			"user_env", cfg.SMTPUserEnv, "pass_env", cfg.SMTPPassEnv)
	}
	return smtpSender, nil
}
