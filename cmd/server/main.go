package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"cheatsheet-editor/auth"
	"cheatsheet-editor/internal/config"
	"cheatsheet-editor/internal/content"
	"cheatsheet-editor/internal/db"
	"cheatsheet-editor/pkg/logger"
	"cheatsheet-editor/redis"
)

func main() {
	logger.Init()

	// Load configuration
	cfg := config.Load()

	auth.Init(cfg.JWTSecret)

	// Connect to database and migrate schema
	database, err := db.Connect(cfg)
	if err != nil {
		logger.Sugar.Fatalf("database unavailable: %v", err)
	}
	defer db.Close(database)

	// Initialize cache
	cache := redis.NewCache(cfg.RedisAddress)

	// Initialize repository, service, handler
	contentRepo := content.NewRepository(database)
	contentService := content.NewService(contentRepo, cache)
	contentHandler := content.NewHandler(contentService)
	authHandler := auth.NewHandler()

	// Initialize Gin router
	router := gin.Default()

	// cors setting
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}

	if cfg.Environment == "development" {
		// Allow all origins in development
		corsConfig.AllowAllOrigins = true
	} else {
		// Restrict origins in production
		corsConfig.AllowOrigins = []string{cfg.FrontendAddress}
	}
	router.Use(cors.New(corsConfig))

	// Auth routes
	router.POST("/auth/session", authHandler.CreateSession)
	router.GET("/auth/status", authHandler.Status)
	router.POST("/auth/logout", authHandler.Logout)

	// Content routes
	router.GET("/api/content", auth.Middleware(), contentHandler.Show)
	router.PUT("/api/content", auth.Middleware(), contentHandler.Update)

	// Server configuration
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: router.Handler(),
	}

	// Start server
	go func() {
		logger.Sugar.Infof("Server listening on port %s", cfg.ServerPort)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logger.Sugar.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Sugar.Warnf("Server shutdown error: %v", err)
	}

	logger.Sugar.Info("Server shutdown complete")
}
