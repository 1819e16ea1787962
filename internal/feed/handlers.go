package feed

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/NikolayFrontendDeveloper/picChatServer/internal/model"
	"github.com/NikolayFrontendDeveloper/picChatServer/internal/shared/apperr"
	"github.com/NikolayFrontendDeveloper/picChatServer/internal/shared/httpx"
)

const requestTimeout = 5 * time.Second

type viewerRequest struct {
	Token model.UserID `json:"token"`
}

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/posts", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
		defer cancel()

		items, err := svc.Global(ctx)
		if err != nil {
			return httpx.Fail(c, err)
		}
		return c.JSON(items)
	})

	r.Post("/get-posts", func(c *fiber.Ctx) error {
		var req viewerRequest
		if err := httpx.DecodeStrict(c, &req); err != nil {
			return httpx.Fail(c, err)
		}
		if req.Token == "" {
			return httpx.Fail(c, apperr.InvalidRequest())
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
		defer cancel()

		items, err := svc.Subscriptions(ctx, req.Token)
		if err != nil {
			return httpx.Fail(c, err)
		}
		return c.JSON(items)
	})
}
