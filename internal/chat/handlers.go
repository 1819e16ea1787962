package chat

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/NikolayFrontendDeveloper/picChatServer/internal/model"
	"github.com/NikolayFrontendDeveloper/picChatServer/internal/shared/apperr"
	"github.com/NikolayFrontendDeveloper/picChatServer/internal/shared/httpx"
)

const requestTimeout = 5 * time.Second

type createRequest struct {
	Token     model.UserID `json:"token"`
	UserToken model.UserID `json:"userToken"`
}

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Post("/messages/add-chat", func(c *fiber.Ctx) error {
		var req createRequest
		if err := httpx.DecodeStrict(c, &req); err != nil {
			return httpx.Fail(c, err)
		}
		if req.Token == "" || req.UserToken == "" {
			return httpx.Fail(c, apperr.InvalidRequest())
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
		defer cancel()

		id, err := svc.Create(ctx, req.Token, req.UserToken)
		if err != nil {
			return httpx.Fail(c, err)
		}
		return c.JSON(fiber.Map{"ok": true, "chatId": id})
	})

	r.Get("/get-messages", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
		defer cancel()

		chats, err := svc.All(ctx)
		if err != nil {
			return httpx.Fail(c, err)
		}
		return c.JSON(chats)
	})
}
