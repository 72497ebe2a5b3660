package main

import (
	"context"
	"log"

	"codeforge/internal/cache"
	"codeforge/internal/config"
	"codeforge/internal/db"
	"codeforge/internal/model"
	"codeforge/internal/repository"
	"codeforge/internal/service"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.Language{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	languageRepo := repository.NewLanguageRepository(gormDB)
	languageService := service.NewLanguageService(languageRepo, cacheClient)

	languages, err := languageService.Seed(context.Background())
	if err != nil {
		log.Fatalf("Failed to seed languages: %v", err)
	}

	for _, language := range languages {
		log.Printf("  - %s (%s)", language.Name, language.Slug)
	}
	log.Printf("Seed completed successfully, %d languages in catalog", len(languages))
}
