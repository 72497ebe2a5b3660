package main

import (
	"context"
	"log"
	"net/http"

	_ "codeforge/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"codeforge/internal/auth"
	"codeforge/internal/cache"
	"codeforge/internal/config"
	"codeforge/internal/db"
	"codeforge/internal/genai"
	"codeforge/internal/handler"
	"codeforge/internal/model"
	"codeforge/internal/repository"
	"codeforge/internal/router"
	"codeforge/internal/service"
)

// @title Code Generation API
// @version 1.0
// @description AI-powered code generation API with per-user history and JWT cookie authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token. Browsers use the token cookie instead.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Language{},
		&model.Generation{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	generator, err := genai.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTimeout)
	if err != nil {
		log.Fatalf("gemini init: %v", err)
	}
	defer generator.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	languageRepo := repository.NewLanguageRepository(gormDB)
	generationRepo := repository.NewGenerationRepository(gormDB)

	// Initialize services
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, jwtService)
	languageService := service.NewLanguageService(languageRepo, cacheClient)
	generationService := service.NewGenerationService(generationRepo, languageService, generator)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg)
	languageHandler := handler.NewLanguageHandler(languageService)
	generationHandler := handler.NewGenerationHandler(generationService, cfg.DefaultPageSize)

	// Register routes
	router.Register(e, cfg, authHandler, languageHandler, generationHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
