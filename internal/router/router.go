package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/NafisTahmid/instagram-clone-vercel/internal/handlers"
	"github.com/NafisTahmid/instagram-clone-vercel/internal/middleware"
	"github.com/NafisTahmid/instagram-clone-vercel/internal/repositories"
	"github.com/NafisTahmid/instagram-clone-vercel/internal/services"
	"github.com/NafisTahmid/instagram-clone-vercel/pkg/media"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *mongo.Database, firebaseAuthClient *auth.Client, uploader media.Uploader, jwtSecret string, logger *zap.Logger) {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewMongoUserRepository(db)
	postRepo := repositories.NewMongoPostRepository(db)
	commentRepo := repositories.NewMongoCommentRepository(db)
	conversationRepo := repositories.NewMongoConversationRepository(db)
	messageRepo := repositories.NewMongoMessageRepository(db)
	notificationRepo := repositories.NewMongoNotificationRepository(db)

	// --- Initialize Services ---
	notificationService := services.NewNotificationService(notificationRepo, logger)
	relationService := services.NewRelationService(userRepo, notificationService, logger)
	engagementService := services.NewEngagementService(userRepo, postRepo, notificationService, logger)
	postService := services.NewPostService(postRepo, commentRepo, userRepo, uploader, notificationService, logger)
	chatService := services.NewChatService(conversationRepo, messageRepo, logger)
	feedService := services.NewFeedService(postRepo, commentRepo, userRepo)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, feedService, firebaseAuthClient, jwtSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(jwtSecret))

	userHandler := handlers.NewUserHandler(userRepo, relationService, feedService, uploader)
	userHandler.RegisterUserRoutes(api)
	log.Println("User routes configured.")

	postHandler := handlers.NewPostHandler(postService, engagementService, feedService)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	messageHandler := handlers.NewMessageHandler(chatService)
	messageHandler.RegisterMessageRoutes(api)
	log.Println("Message routes configured.")

	notificationHandler := handlers.NewNotificationHandler(notificationService)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
}
