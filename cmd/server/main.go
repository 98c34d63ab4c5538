package main

import (
	"log"

	"anoa.com/lesprivat/internal/config"
	"anoa.com/lesprivat/internal/model"
	"anoa.com/lesprivat/internal/server"
	"anoa.com/lesprivat/pkg/database"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()

	db := database.Connect()
	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	} else {
		log.Println("REDIS_URL not set, rate limiting and live chat disabled")
	}

	if cfg.AppEnv == "development" {
		if err := seedSubjects(db); err != nil {
			log.Fatalf("failed to seed subjects: %v", err)
		}
	}

	srv := server.NewServer(db, redisClient)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Subject{},
		&model.Advert{},
		&model.Application{},
		&model.Review{},
		&model.Message{},
		&model.Complaint{},
	)
}

func seedSubjects(db *gorm.DB) error {
	defaultSubjects := []model.Subject{
		{Title: "Matematika", Description: "Aritmetika, aljabar, geometri"},
		{Title: "Fisika", Description: "Mekanika, listrik, termodinamika"},
		{Title: "Bahasa Inggris", Description: "Grammar, conversation, TOEFL"},
	}

	for _, subject := range defaultSubjects {
		var count int64
		if err := db.Model(&model.Subject{}).
			Where("title = ?", subject.Title).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&subject).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
