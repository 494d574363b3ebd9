package server

import (
	"time"

	"github.com/garethjevans/GPXviz/internal/anomaly"
	"github.com/garethjevans/GPXviz/internal/auth"
	"github.com/garethjevans/GPXviz/internal/config"
	"github.com/garethjevans/GPXviz/internal/editor"
	"github.com/garethjevans/GPXviz/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Stream *stream.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Stream: stream.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// saving tracks is optional; without postgres the routes answer 503
	var store *editor.Store
	if s.DB != nil {
		store = editor.NewStore(s.DB)
	}

	svc := editor.NewService(s.Redis, s.Stream, time.Duration(s.Cfg.SessionTTLHours)*time.Hour, anomaly.Options{
		GradientChangeThreshold: s.Cfg.GradientThreshold,
		BearingChangeThreshold:  s.Cfg.BearingThreshold,
	})
	throttle := stream.NewThrottle(10, 3)

	editor.RegisterRoutes(s.App.Group("/api/v1"), svc, store, throttle, s.Cfg.JWTSecret, auth.Middleware(s.Cfg.JWTSecret))
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
