package main

import (
	"context"
	"log"

	"github.com/NafisTahmid/instagram-clone-vercel/internal/router"
	"github.com/NafisTahmid/instagram-clone-vercel/pkg/config"
	"github.com/NafisTahmid/instagram-clone-vercel/pkg/firebase"
	"github.com/NafisTahmid/instagram-clone-vercel/pkg/media"
	"github.com/NafisTahmid/instagram-clone-vercel/validators"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database connection
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB() // Ensure database connection is closed when main exits

	ctx := context.Background()
	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// Initialize Firebase (Google sign-in verification + media bucket)
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, cfg.StorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}
	uploader := media.NewGCSUploader(firebaseApp.Bucket)

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Database, firebaseApp.AuthClient, uploader, cfg.JWTSecret, logger)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
