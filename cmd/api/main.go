package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campus-itc/club-api/internal/config"
	"github.com/campus-itc/club-api/internal/database"
	"github.com/campus-itc/club-api/internal/handler"
	"github.com/campus-itc/club-api/internal/mail"
	"github.com/campus-itc/club-api/internal/middleware"
	"github.com/campus-itc/club-api/internal/models"
	"github.com/campus-itc/club-api/internal/ratelimit"
	"github.com/campus-itc/club-api/internal/repository"
	"github.com/campus-itc/club-api/internal/router"
	"github.com/campus-itc/club-api/internal/service"
	cloud "github.com/campus-itc/club-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Member{},
		&models.Application{},
		&models.NewsPost{},
		&models.GalleryItem{},
		&models.Panelist{},
		&models.AdminUser{},
		&models.SiteSettings{},
		&models.AuditRecord{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var limiterStore ratelimit.Store
	if cfg.RedisURL != "" {
		redisClient, err := database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
		limiterStore = ratelimit.NewRedisStore(redisClient, "club")
	} else {
		logger.Warn().Msg("redis url not set, using in-memory rate limiting")
		limiterStore = ratelimit.NewMemoryStore()
	}
	applyLimiter := ratelimit.New(limiterStore, cfg.ApplyRateLimit, cfg.ApplyRateWindow)
	emailLimiter := ratelimit.New(limiterStore, 30, time.Minute)

	var storage service.FileStorage
	if cfg.CloudinaryCloudName != "" {
		uploader, err := cloud.New(cloud.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryFolder,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create cloudinary client: %v", err)
		}
		storage = uploader
	}

	sender := mail.NewSMTPSender(mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Secure:   cfg.SMTPSecure,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}, logger)
	groupLinks := mail.GroupLinks{
		Messenger: cfg.MessengerGroupLink,
		Instagram: cfg.InstagramGroupLink,
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	memberRepo := repository.NewMemberRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	newsRepo := repository.NewNewsRepository(db)
	galleryRepo := repository.NewGalleryRepository(db)
	panelistRepo := repository.NewPanelistRepository(db)
	adminUserRepo := repository.NewAdminUserRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	auditService := service.NewAuditService(auditRepo, logger)
	notifier := service.NewEmailNotifier(sender, groupLinks, logger)

	memberService := service.NewMemberService(memberRepo, logger)
	newsService := service.NewNewsService(newsRepo, logger)
	galleryService := service.NewGalleryService(galleryRepo, logger)
	panelistService := service.NewPanelistService(panelistRepo, logger)
	applicationService := service.NewApplicationService(applicationRepo, settingsRepo, applyLimiter, validate, logger)

	authService := service.NewAuthService(adminUserRepo, validate, auditService, cfg.JWTSecret, logger)
	adminMemberService := service.NewAdminMemberService(memberRepo, validate, auditService, logger)
	adminApplicationService := service.NewAdminApplicationService(applicationRepo, notifier, auditService, logger)
	adminNewsService := service.NewAdminNewsService(newsRepo, validate, auditService, logger)
	adminGalleryService := service.NewAdminGalleryService(galleryRepo, storage, validate, auditService, cfg.UploadMaxSizeMB, logger)
	adminPanelistService := service.NewAdminPanelistService(panelistRepo, validate, auditService, logger)
	adminUserService := service.NewAdminUserService(adminUserRepo, validate, auditService, logger)
	settingsService := service.NewSettingsService(settingsRepo, validate, auditService, cfg.ContactEmail, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		NewsHandler:             handler.NewNewsHandler(newsService, logger),
		GalleryHandler:          handler.NewGalleryHandler(galleryService, logger),
		PanelistHandler:         handler.NewPanelistHandler(panelistService, logger),
		MemberHandler:           handler.NewMemberHandler(memberService, logger),
		ApplicationHandler:      handler.NewApplicationHandler(applicationService, logger),
		EmailHandler:            handler.NewEmailHandler(sender, groupLinks, logger),
		AuthHandler:             handler.NewAuthHandler(authService, logger),
		AdminMemberHandler:      handler.NewAdminMemberHandler(adminMemberService, logger),
		AdminApplicationHandler: handler.NewAdminApplicationHandler(adminApplicationService, logger),
		AdminNewsHandler:        handler.NewAdminNewsHandler(adminNewsService, logger),
		AdminGalleryHandler:     handler.NewAdminGalleryHandler(adminGalleryService, logger),
		AdminPanelistHandler:    handler.NewAdminPanelistHandler(adminPanelistService, logger),
		AdminUserHandler:        handler.NewAdminUserHandler(adminUserService, logger),
		AdminSettingsHandler:    handler.NewAdminSettingsHandler(settingsService, logger),
		AdminActivityHandler:    handler.NewAdminActivityHandler(auditService, logger),
		JWTMiddleware:           middleware.JWTProtected(cfg.JWTSecret),
		EmailRateLimit:          middleware.RateLimit(emailLimiter, "send-email"),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
