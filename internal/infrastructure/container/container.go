package container

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/heartlinkapp/heartlink-backend/internal/config"
	httpdelivery "github.com/heartlinkapp/heartlink-backend/internal/delivery/http"
	"github.com/heartlinkapp/heartlink-backend/internal/delivery/http/handler"
	"github.com/heartlinkapp/heartlink-backend/internal/delivery/http/middleware"
	"github.com/heartlinkapp/heartlink-backend/internal/delivery/ws"
	"github.com/heartlinkapp/heartlink-backend/internal/infrastructure/database"
	"github.com/heartlinkapp/heartlink-backend/internal/infrastructure/mailer"
	"github.com/heartlinkapp/heartlink-backend/internal/infrastructure/server"
	"github.com/heartlinkapp/heartlink-backend/internal/infrastructure/session"
	"github.com/heartlinkapp/heartlink-backend/internal/infrastructure/storage"
	"github.com/heartlinkapp/heartlink-backend/internal/repository/postgres"
	"github.com/heartlinkapp/heartlink-backend/internal/usecase/admin"
	"github.com/heartlinkapp/heartlink-backend/internal/usecase/auth"
	"github.com/heartlinkapp/heartlink-backend/internal/usecase/like"
	"github.com/heartlinkapp/heartlink-backend/internal/usecase/match"
	"github.com/heartlinkapp/heartlink-backend/internal/usecase/message"
	"github.com/heartlinkapp/heartlink-backend/internal/usecase/notification"
	"github.com/heartlinkapp/heartlink-backend/internal/usecase/profile"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize S3 storage
	blobStorage, err := storage.NewS3Storage(cfg.Storage)
	if err != nil {
		db.Close()
		redisClient.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	photoRepo := postgres.NewPhotoRepository(db)
	prefsRepo := postgres.NewPreferencesRepository(db)
	likeRepo := postgres.NewLikeRepository(db)
	conversationRepo := postgres.NewConversationRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	blockRepo := postgres.NewBlockRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	reportRepo := postgres.NewReportRepository(db)
	adminRepo := postgres.NewAdminRepository(db)

	// Realtime hub doubles as the notification pusher
	hub := ws.NewHub(userRepo)

	// Mail: fall back to log-only delivery without an SMTP relay
	var mail auth.Mailer
	if cfg.SMTP.Host != "" {
		mail = mailer.NewSMTPMailer(cfg.SMTP)
	} else {
		log.Warn().Msg("SMTP not configured, mail goes to the log")
		mail = mailer.LogMailer{}
	}

	// Initialize use cases
	tokens := auth.NewTokenService(cfg.JWT)
	sessions := session.NewRedisStore(redisClient)

	authUseCase := auth.NewAuthUseCase(userRepo, profileRepo, tokens, sessions, mail)
	notificationUseCase := notification.NewNotificationUseCase(notificationRepo, hub)
	profileUseCase := profile.NewProfileUseCase(profileRepo, photoRepo, userRepo, likeRepo, blobStorage)
	matchUseCase := match.NewMatchUseCase(profileRepo, prefsRepo, photoRepo)
	likeUseCase := like.NewLikeUseCase(likeRepo, profileRepo, conversationRepo, blockRepo, notificationUseCase)
	messageUseCase := message.NewMessageUseCase(messageRepo, conversationRepo, likeRepo, blockRepo, profileRepo, notificationUseCase)
	adminUseCase := admin.NewAdminUseCase(adminRepo, userRepo, profileRepo, photoRepo, reportRepo, tokens, notificationUseCase)

	// Initialize delivery
	authMiddleware := middleware.NewAuthMiddleware(tokens)
	router := httpdelivery.NewRouter(
		handler.NewAuthHandler(authUseCase),
		handler.NewProfileHandler(profileUseCase),
		handler.NewMatchHandler(matchUseCase),
		handler.NewLikeHandler(likeUseCase),
		handler.NewMessageHandler(messageUseCase),
		handler.NewNotificationHandler(notificationUseCase),
		handler.NewAdminHandler(adminUseCase),
		ws.NewHandler(hub, tokens),
		authMiddleware,
	)

	srv := server.NewServer(&cfg.Server, router.Setup())

	return &Container{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
	}, nil
}

// Close releases the container's resources.
func (c *Container) Close() error {
	var firstErr error
	if err := c.Redis.Close(); err != nil {
		firstErr = err
	}
	if err := c.DB.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
