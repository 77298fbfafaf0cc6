package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"devlinker/backend/internal/api/handler"
	"devlinker/backend/internal/chathub"
	"devlinker/backend/internal/config"
	"devlinker/backend/internal/models"
	"devlinker/backend/internal/storage"
)

func setupDependencies(cfg config.Config) (*gorm.DB, *redis.Client) {
	// TranslateError lets the storage layer detect unique-violation races
	// via gorm.ErrDuplicatedKey.
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.ConnectionRequest{},
		&models.Conversation{},
		&models.Message{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting DevLinker Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()

	db, rdb := setupDependencies(cfg)
	store := storage.NewService(db, rdb)

	gateway := chathub.NewGateway(store, chathub.NewRoomRegistry())

	r := gin.Default()
	h := handler.NewHandler(store, gateway, cfg.JWTSecret)

	r.POST("/auth/signup", h.Signup)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.Logout)

	r.GET("/ws", h.ServeWebSocket)

	auth := r.Group("/", h.RequireAuth())
	{
		auth.GET("/conversations", h.ListConversations)
		auth.GET("/conversations/:targetUserId", h.GetConversation)
		auth.POST("/conversations/:targetUserId/messages", h.SendMessage)

		auth.POST("/request/send/:status/:toUserId", h.SendRequest)
		auth.POST("/request/review/:status/:requestId", h.ReviewRequest)
		auth.GET("/requests/received", h.ListReceivedRequests)
		auth.GET("/connections", h.ListConnections)

		auth.GET("/notifications", h.ListNotifications)
		auth.POST("/notifications/:id/read", h.MarkNotificationRead)
	}

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
