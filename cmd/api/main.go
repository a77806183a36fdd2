package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"passr/internal/adapter/api"
	"passr/internal/adapter/api/handler"
	apimiddleware "passr/internal/adapter/api/middleware"
	"passr/internal/adapter/api/router"
	"passr/internal/adapter/repository"
	"passr/internal/infrastructure/push"
	"passr/internal/infrastructure/storage"
	"passr/internal/infrastructure/websocket"
	"passr/internal/scheduler"
	"passr/internal/usecase"
	"passr/pkg/config"
	"passr/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption
	credentialsPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(serviceAccountJSON)))
		credentialsPath = ""
	} else if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	messagingClient, err := firebaseApp.Messaging(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Messaging: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, credentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	listingRepo := repository.NewFirestoreListingRepository(firestoreClient)
	offerRepo := repository.NewFirestoreOfferRepository(firestoreClient)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)
	wishlistRepo := repository.NewFirestoreWishlistRepository(firestoreClient)
	userRepo := repository.NewFirestoreUserRepository(firestoreClient)

	notifier := push.NewFCMClient(messagingClient, userRepo)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	chatUseCase := usecase.NewChatUseCase(chatRepo, listingRepo, userRepo, notifier, wsManager)
	offerUseCase := usecase.NewOfferUseCase(offerRepo, listingRepo, userRepo, chatUseCase, notifier)
	listingUseCase := usecase.NewListingUseCase(listingRepo, wishlistRepo, offerUseCase, chatUseCase, notifier, cfg.ListingTTL)
	userUseCase := usecase.NewUserUseCase(userRepo)
	cleanupUseCase := usecase.NewCleanupUseCase(listingRepo, offerRepo, chatRepo, storageClient)
	warningUseCase := usecase.NewWarningUseCase(listingRepo, wishlistRepo, notifier, cfg.WarningWindowStart, cfg.WarningWindowEnd)

	if cfg.EnableExpiredListingCleanup {
		sched := scheduler.New()
		sched.Every(cfg.CleanupInterval, "expired-listing-cleanup", cleanupUseCase.RunCleanupTick)
		sched.Every(cfg.WarningInterval, "expiration-warnings", warningUseCase.RunWarningTick)
		sched.Start(ctx)
	} else {
		logger.Info("Expired listing cleanup is disabled")
	}

	e := echo.New()

	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	rateLimit := apimiddleware.NewRateLimitMiddleware()

	handlers := router.Handlers{
		Listing:   handler.NewListingHandler(listingUseCase),
		Offer:     handler.NewOfferHandler(offerUseCase),
		Chat:      handler.NewChatHandler(chatUseCase),
		User:      handler.NewUserHandler(userUseCase),
		Health:    handler.NewHealthHandler(),
		WebSocket: handler.NewWebSocketHandler(wsManager, authMiddleware),
	}

	router.Setup(e, handlers, authMiddleware, rateLimit)
	router.SetupDevRouter(e, cfg.Environment, handlers.Listing, authMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
