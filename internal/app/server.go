// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"vahanbazaar-service/internal/config"
	"vahanbazaar-service/internal/db"
	authHandler "vahanbazaar-service/internal/handlers/auth"
	bookingHandler "vahanbazaar-service/internal/handlers/booking"
	dealerHandler "vahanbazaar-service/internal/handlers/dealer"
	draftHandler "vahanbazaar-service/internal/handlers/draft"
	favouriteHandler "vahanbazaar-service/internal/handlers/favourite"
	listingHandler "vahanbazaar-service/internal/handlers/listing"
	mediaHandler "vahanbazaar-service/internal/handlers/media"
	referenceHandler "vahanbazaar-service/internal/handlers/reference"
	submissionHandler "vahanbazaar-service/internal/handlers/submission"
	uploadHandler "vahanbazaar-service/internal/handlers/upload"
	wsHandler "vahanbazaar-service/internal/handlers/websocket"
	"vahanbazaar-service/internal/middleware"
	"vahanbazaar-service/internal/pkg/draftstore"
	"vahanbazaar-service/internal/pkg/jwt"
	"vahanbazaar-service/internal/pkg/session"
	"vahanbazaar-service/internal/repository/postgres"
	authService "vahanbazaar-service/internal/service/auth"
	bookingService "vahanbazaar-service/internal/service/booking"
	dealerService "vahanbazaar-service/internal/service/dealer"
	draftService "vahanbazaar-service/internal/service/draft"
	favouriteService "vahanbazaar-service/internal/service/favourite"
	listingService "vahanbazaar-service/internal/service/listing"
	mediaService "vahanbazaar-service/internal/service/media"
	referenceService "vahanbazaar-service/internal/service/reference"
	submissionService "vahanbazaar-service/internal/service/submission"
	uploadService "vahanbazaar-service/internal/service/upload"
	"vahanbazaar-service/internal/websocket"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(ctx, s.cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	// ----- JWT Manager -----
	jwtManager, err := jwt.LoadAndBuild(s.cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to load JWT manager: %w", err)
	}

	// ----- MinIO -----
	minioClient, err := minio.New(s.cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(s.cfg.MinioAccessKey, s.cfg.MinioSecretKey, ""),
		Secure: s.cfg.MinioUseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to build MinIO client: %w", err)
	}
	signer := uploadService.NewMinioSigner(minioClient, s.cfg.MinioBucket)
	if err := signer.EnsureBucket(ctx); err != nil {
		return fmt.Errorf("failed to prepare media bucket: %w", err)
	}

	// ----- Sessions, rate limiting, drafts -----
	sessionManager := session.NewManager(redisClient)
	rateLimiter := session.NewRateLimiter(redisClient)
	drafts := draftstore.NewStore(redisClient, logger, s.cfg.DraftTTL)
	collectors := mediaService.NewRegistry()

	// ----- WebSocket Hub -----
	hub := websocket.NewHub(jwtManager.Verifier, sessionManager, logger)
	go hub.Run(ctx)

	// ----- Repositories -----
	userRepo := postgres.NewUserRepository(pool)
	referenceRepo := postgres.NewReferenceRepository(pool)
	listingRepo := postgres.NewListingRepository(pool)
	dealerRepo := postgres.NewDealerRepository(pool)
	favouriteRepo := postgres.NewFavouriteRepository(pool)
	bookingRepo := postgres.NewBookingRepository(pool)

	// ----- Services -----
	otpStore := authService.NewOTPStore(redisClient)
	authSvc := authService.NewService(
		userRepo,
		otpStore,
		&authService.LogSender{Logger: logger},
		jwtManager,
		sessionManager,
		rateLimiter,
		logger,
	)
	referenceSvc := referenceService.NewService(referenceRepo, drafts, logger)
	draftSvc := draftService.NewService(drafts, collectors, logger)
	orchestrator := uploadService.NewOrchestrator(signer, drafts, logger)
	gate := submissionService.NewGate(drafts, hub, logger)
	listingSvc := listingService.NewService(listingRepo, drafts, hub, logger)
	dealerSvc := dealerService.NewService(dealerRepo, logger)
	favouriteSvc := favouriteService.NewService(favouriteRepo, listingRepo, logger)
	bookingSvc := bookingService.NewService(bookingRepo, listingRepo, hub, logger)

	// ----- Handlers -----
	handlers := &Handlers{
		AuthHandler:       authHandler.NewAuthHandler(authSvc, logger),
		ReferenceHandler:  referenceHandler.NewReferenceHandler(referenceSvc),
		DraftHandler:      draftHandler.NewDraftHandler(draftSvc),
		MediaHandler:      mediaHandler.NewMediaHandler(collectors, drafts),
		UploadHandler:     uploadHandler.NewUploadHandler(orchestrator, signer, collectors, drafts),
		SubmissionHandler: submissionHandler.NewSubmissionHandler(gate),
		ListingHandler:    listingHandler.NewListingHandler(listingSvc),
		DealerHandler:     dealerHandler.NewDealerHandler(dealerSvc),
		FavouriteHandler:  favouriteHandler.NewFavouriteHandler(favouriteSvc),
		BookingHandler:    bookingHandler.NewBookingHandler(bookingSvc),
		WSHandler:         wsHandler.NewWebSocketHandler(hub, logger),
		AuthMiddleware:    middleware.NewAuthMiddleware(authSvc),
	}

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	SetupRouter(s.engine, logger, handlers)

	log.Printf("server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}
