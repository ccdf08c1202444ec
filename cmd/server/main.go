package main

import (
	"log"
	"os"
	"path/filepath"

	"minigram/internal/db"
	"minigram/internal/middleware"
	"minigram/internal/router"
	"minigram/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Database
	database := db.Open()

	// Media storage root
	// 定位符按相对路径入库，URL 前缀必须和目录同名，绝对路径对不上
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	if filepath.IsAbs(uploadDir) {
		log.Fatalf("UPLOAD_DIR must be a relative path, got %s", uploadDir)
	}
	media := services.NewMediaStore(uploadDir)

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("minigram_session", store))

	// 上传的图片直接静态托管，路由前缀从配置的目录推导
	r.Static("/"+filepath.ToSlash(uploadDir), uploadDir)

	// Middleware
	r.Use(middleware.LoadUser(database))

	router.RegisterRoutes(r, database, media)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("minigram server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
