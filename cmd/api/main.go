package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"holidaily/internal/config"
	"holidaily/internal/handler"
	"holidaily/internal/middleware"
	"holidaily/internal/repository"
	"holidaily/internal/repository/memstore"
	"holidaily/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	zapLogger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var repos *repository.Repositories
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		zapLogger.Warn("Using in-memory storage, data will not survive a restart")
		repos = memstore.New().Repositories()
	default:
		var db *sqlx.DB
		db, err = config.NewPostgresDB(ctx, cfg)
		if err != nil {
			zapLogger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		if err := repository.Migrate(ctx, db); err != nil {
			zapLogger.Fatal("Failed to migrate database", zap.Error(err))
		}
		repos = repository.NewRepositories(db)
	}

	var redisClient *redis.Client
	redisClient, err = config.NewRedisClient(ctx, cfg)
	if err != nil {
		zapLogger.Warn("Failed to connect to Redis, comment cache disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	var minioClient *minio.Client
	minioClient, err = config.NewMinIOClient(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Warn("Failed to connect to MinIO, avatar upload will not work", zap.Error(err))
		minioClient = nil
	}

	services := service.NewServices(repos, redisClient, minioClient, cfg, zapLogger)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.NewErrorHandler(zapLogger),
		BodyLimit:    6 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, " + middleware.UsernameHeader + ", " + middleware.DeviceIDHeader,
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, repos)

	zapLogger.Info("Server starting", zap.String("port", cfg.Port), zap.String("storage", cfg.StorageDriver))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, repos *repository.Repositories) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1", middleware.Identity(repos.Profile))
	identified := middleware.RequireIdentity()
	staff := middleware.RequireStaff()

	holidays := v1.Group("/holidays")
	holidays.Post("/", identified, h.Holiday.Submit)
	holidays.Get("/:holidayId", h.Holiday.Get)
	holidays.Post("/:holidayId/approve", staff, h.Holiday.Approve)
	holidays.Post("/:holidayId/vote", identified, h.Holiday.Vote)
	holidays.Get("/:holidayId/comments", h.Comment.ListForHoliday)
	holidays.Get("/:holidayId/posts", h.Post.ListForHoliday)

	comments := v1.Group("/comments")
	comments.Post("/", identified, h.Comment.Create)
	comments.Put("/:commentId", identified, h.Comment.Update)
	comments.Delete("/:commentId", identified, h.Comment.Delete)
	comments.Post("/:commentId/vote", identified, h.Comment.Vote)
	comments.Post("/:commentId/report", identified, h.Comment.Report)

	posts := v1.Group("/posts")
	posts.Post("/", identified, h.Post.Create)
	posts.Get("/:postId/comments", h.Comment.ListForPost)
	posts.Post("/:postId/like", identified, h.Post.Like)
	posts.Post("/:postId/report", identified, h.Post.Report)

	users := v1.Group("/users")
	users.Post("/me/avatar", identified, h.User.UploadAvatar)
	users.Post("/:userId/avatar/approve", staff, h.User.ApproveAvatar)
	users.Post("/:userId/block", identified, h.User.Block)

	notifications := v1.Group("/notifications", identified)
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.UnreadCount)
	notifications.Put("/read-all", h.Notification.MarkAllAsRead)
	notifications.Put("/:notificationId/read", h.Notification.MarkAsRead)
	notifications.Post("/unsubscribe", h.Notification.Unsubscribe)
	notifications.Post("/devices", h.Notification.RegisterDevice)
}
