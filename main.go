package main

import (
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BAlenkaA/foodgram-project-react/config"
	"github.com/BAlenkaA/foodgram-project-react/database"
	"github.com/BAlenkaA/foodgram-project-react/routes"
	"github.com/BAlenkaA/foodgram-project-react/services"
	"github.com/BAlenkaA/foodgram-project-react/utils"
)

func main() {
	cfg := config.LoadConfig()

	// Файловые логгеры ошибок и паник
	if err := utils.InitLogger(); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	// Подключение к PostgreSQL
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	log.Println("Connected to PostgreSQL")

	// Устанавливаем глобальный *gorm.DB для контроллеров
	utils.SetDB(db)

	// Миграция
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
	log.Println("Migration complete")

	// Сидирование справочников
	if err := database.SeedTags(db); err != nil {
		log.Fatalf("failed to seed tags: %v", err)
	}
	if err := database.SeedIngredients(db); err != nil {
		log.Fatalf("failed to seed ingredients: %v", err)
	}
	log.Println("Tags and ingredients seeded (if needed)")

	// Подключение к Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err := rdb.Ping(utils.RedisCtx()).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	utils.SetRedis(rdb)
	log.Println("Connected to Redis")

	// Ежедневная чистка удалённых рецептов
	services.StartCleanupCron(db)

	r := routes.SetupRouter()

	log.Printf("Server is running on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
