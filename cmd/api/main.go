package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"tripcollab/internal/adapter/api"
	"tripcollab/internal/adapter/api/handler"
	apimiddleware "tripcollab/internal/adapter/api/middleware"
	"tripcollab/internal/adapter/api/router"
	"tripcollab/internal/adapter/repository"
	"tripcollab/internal/domain/service"
	"tripcollab/internal/infrastructure/firebase"
	"tripcollab/internal/infrastructure/storage"
	"tripcollab/internal/infrastructure/websocket"
	"tripcollab/internal/usecase"
	"tripcollab/pkg/config"
	"tripcollab/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	serviceAccountPath := ""

	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		logger.Info("Using Firebase service account from environment variable")
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		serviceAccountPath = os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if serviceAccountPath == "" {
			serviceAccountPath = "./service-account.json"
		}
		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}
		logger.Info("Using Firebase service account from file: %s", serviceAccountPath)
		opt = option.WithCredentialsFile(serviceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, serviceAccountPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	tripRepo := repository.NewFirestoreTripRepository(firestoreClient)
	threadRepo := repository.NewFirestoreThreadRepository(firestoreClient)
	orderRepo := repository.NewFirestoreOrderRepository(firestoreClient)
	typingRepo := repository.NewFirestoreTypingRepository(firestoreClient)
	fileMetadataRepo := repository.NewFirestoreFileMetadataRepository(firestoreClient)
	waitlistRepo := repository.NewFirestoreWaitlistRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)

	tokenVerifier, err := firebase.NewTokenVerifier(cfg.FirebaseProject)
	if err != nil {
		logger.Warn("Local token verification unavailable, falling back to Admin SDK: %v", err)
		tokenVerifier = nil
	} else {
		defer tokenVerifier.Close()
	}

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	isProduction := cfg.MidtransEnvironment == "production"
	paymentService := service.NewMidtransPaymentService(cfg.MidtransServerKey, cfg.MidtransClientKey, isProduction, cfg.BaseURL+"/payment/finish")

	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient)
	userUseCase := usecase.NewUserUseCase(userRepo, storageClient, fileMetadataRepo)
	discoveryUseCase := usecase.NewDiscoveryUseCase(userRepo, tripRepo)
	tripUseCase := usecase.NewTripUseCase(tripRepo, userRepo)
	messagingUseCase := usecase.NewMessagingUseCase(threadRepo, userRepo, tripRepo, orderRepo, typingRepo, wsManager)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, threadRepo, userRepo, storageClient, fileMetadataRepo, wsManager)
	paymentUseCase := usecase.NewPaymentUseCase(orderRepo, threadRepo, userRepo, paymentService, wsManager, cfg.MidtransServerKey)
	waitlistUseCase := usecase.NewWaitlistUseCase(waitlistRepo)

	handler.Setup(cfg, authUseCase, userUseCase, discoveryUseCase, tripUseCase, messagingUseCase, orderUseCase, paymentUseCase, waitlistUseCase)
	handler.SetupDevTokenHandler(firebaseAuthClient, userRepo)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	roleMiddleware := apimiddleware.NewRoleMiddleware(userRepo)

	handler.SetupWebSocketHandler(wsManager, authMiddleware, tokenVerifier)

	router.Setup(e, authMiddleware, roleMiddleware)
	router.SetupWebSocketRouter(e)
	router.SetupDevRouter(e, cfg.Environment)

	logger.Info("Starting server on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
