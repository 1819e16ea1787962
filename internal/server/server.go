package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/NikolayFrontendDeveloper/picChatServer/internal/account"
	"github.com/NikolayFrontendDeveloper/picChatServer/internal/chat"
	"github.com/NikolayFrontendDeveloper/picChatServer/internal/config"
	"github.com/NikolayFrontendDeveloper/picChatServer/internal/content"
	"github.com/NikolayFrontendDeveloper/picChatServer/internal/feed"
	"github.com/NikolayFrontendDeveloper/picChatServer/internal/store"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	Users store.UserStore
	Chats store.ChatStore
	Redis *redis.Client
}

func NewServer(cfg config.Config, users store.UserStore, chats store.ChatStore, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:   app,
		Cfg:   cfg,
		Users: users,
		Chats: chats,
		Redis: redisClient,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	account.RegisterRoutes(s.App, account.NewService(s.Users))
	content.RegisterRoutes(s.App, content.NewService(s.Users))
	feed.RegisterRoutes(s.App, feed.NewService(s.Users, s.Redis, s.Cfg.FeedCacheTTL))
	chat.RegisterRoutes(s.App, chat.NewService(s.Chats, s.Users))
}
