package db

import (
	"log"
	"os"

	"minigram/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to Postgres and runs migrations. The handle is returned
// to the caller and injected where needed instead of living in a global,
// so services can be wired against a test database.
func Open() *gorm.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=minigram port=5432 sslmode=disable"
	}

	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		// 唯一索引冲突需要转换为 gorm.ErrDuplicatedKey，reaction 并发写依赖它重试
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	if err := Migrate(database); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	return database
}

// Migrate runs AutoMigrate for every model. Split out so tests can
// migrate an in-memory database without touching Postgres.
func Migrate(database *gorm.DB) error {
	return database.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Reaction{},
	)
}
