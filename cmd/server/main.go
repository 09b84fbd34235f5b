package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	_ "folio/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"folio/internal/auth"
	"folio/internal/cache"
	"folio/internal/config"
	"folio/internal/db"
	"folio/internal/handler"
	"folio/internal/mail"
	"folio/internal/model"
	"folio/internal/ratelimit"
	"folio/internal/repository"
	"folio/internal/router"
	"folio/internal/service"
)

// @title Portfolio API
// @version 1.0
// @description Portfolio and blog backend with JWT authentication, profile management, and contact intake.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Experience{},
		&model.Education{},
		&model.Project{},
		&model.Certification{},
		&model.BlogPost{},
		&model.ContactMessage{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	profileRepo := repository.NewProfileRepository(gormDB)
	blogRepo := repository.NewBlogRepository(gormDB)
	contactRepo := repository.NewContactRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Outbound mail is optional; without SMTP config submissions are
	// only persisted.
	var mailer mail.Mailer = mail.Noop{}
	if cfg.SMTPHost != "" && cfg.ContactRecipient != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.ContactRecipient)
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, profileRepo, jwtService, tokenStore, cfg.LoginMaxAttempts, cfg.LoginLockWindow)
	blogService := service.NewBlogService(blogRepo, cacheClient)
	profileService := service.NewProfileService(profileRepo)
	contactService := service.NewContactService(contactRepo, mailer)

	if err := bootstrapAdmin(context.Background(), cfg, authService, userRepo); err != nil {
		log.Fatalf("admin bootstrap: %v", err)
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	blogHandler := handler.NewBlogHandler(blogService)
	profileHandler := handler.NewProfileHandler(profileService)
	contactLimiter := ratelimit.New(cfg.ContactRateLimit, cfg.ContactRateWindow)
	contactHandler := handler.NewContactHandler(contactService, contactLimiter)

	// Register routes
	router.Register(
		e,
		cfg,
		tokenStore,
		authHandler,
		blogHandler,
		profileHandler,
		contactHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: http://%s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

// bootstrapAdmin ensures the configured admin account exists so a fresh
// deployment has a way in. No-op when ADMIN_EMAIL/ADMIN_PASSWORD are
// unset or the account is already registered.
func bootstrapAdmin(ctx context.Context, cfg *config.Config, authService service.AuthService, userRepo repository.UserRepository) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	_, err := userRepo.FindByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if _, _, err := authService.Register(ctx, cfg.AdminEmail, cfg.AdminPassword, model.RoleAdmin); err != nil {
		return err
	}
	log.Printf("admin account created: %s", cfg.AdminEmail)
	return nil
}
