package account

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/NikolayFrontendDeveloper/picChatServer/internal/shared/apperr"
	"github.com/NikolayFrontendDeveloper/picChatServer/internal/shared/httpx"
)

const requestTimeout = 5 * time.Second

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Post("/auth/signup", func(c *fiber.Ctx) error {
		var req CredentialsRequest
		if err := httpx.DecodeStrict(c, &req); err != nil {
			return httpx.Fail(c, err)
		}
		if req.Username == "" || req.Password == "" {
			return httpx.Fail(c, apperr.InvalidRequest())
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
		defer cancel()

		id, err := svc.Create(ctx, req.Username, req.Password)
		if err != nil {
			return httpx.Fail(c, err)
		}
		return c.JSON(fiber.Map{"ok": true, "id": id})
	})

	r.Post("/auth/login", func(c *fiber.Ctx) error {
		var req CredentialsRequest
		if err := httpx.DecodeStrict(c, &req); err != nil {
			return httpx.Fail(c, err)
		}
		if req.Username == "" || req.Password == "" {
			return httpx.Fail(c, apperr.InvalidRequest())
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
		defer cancel()

		id, err := svc.Authenticate(ctx, req.Username, req.Password)
		if err != nil {
			return httpx.Fail(c, err)
		}
		return c.JSON(fiber.Map{"ok": true, "id": id})
	})

	r.Post("/get-user", func(c *fiber.Ctx) error {
		var req TokenRequest
		if err := httpx.DecodeStrict(c, &req); err != nil {
			return httpx.Fail(c, err)
		}
		if req.Token == "" {
			return httpx.Fail(c, apperr.InvalidRequest())
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
		defer cancel()

		user, err := svc.Fetch(ctx, req.Token)
		if err != nil {
			return httpx.Fail(c, err)
		}
		return c.JSON(user)
	})

	r.Get("/data", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
		defer cancel()

		users, err := svc.FetchAll(ctx)
		if err != nil {
			return httpx.Fail(c, err)
		}
		return c.JSON(users)
	})

	r.Post("/subscribe", func(c *fiber.Ctx) error {
		var req SubscribeRequest
		if err := httpx.DecodeStrict(c, &req); err != nil {
			return httpx.Fail(c, err)
		}
		if req.Token == "" || req.TargetToken == "" {
			return httpx.Fail(c, apperr.InvalidRequest())
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
		defer cancel()

		if err := svc.Subscribe(ctx, req.Token, req.TargetToken); err != nil {
			return httpx.Fail(c, err)
		}
		return httpx.OK(c)
	})

	r.Post("/remove-subscribe", func(c *fiber.Ctx) error {
		var req SubscribeRequest
		if err := httpx.DecodeStrict(c, &req); err != nil {
			return httpx.Fail(c, err)
		}
		if req.Token == "" || req.TargetToken == "" {
			return httpx.Fail(c, apperr.InvalidRequest())
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
		defer cancel()

		if err := svc.Unsubscribe(ctx, req.Token, req.TargetToken); err != nil {
			return httpx.Fail(c, err)
		}
		return httpx.OK(c)
	})

	r.Post("/add-ava", func(c *fiber.Ctx) error {
		var req AvatarRequest
		if err := httpx.DecodeStrict(c, &req); err != nil {
			return httpx.Fail(c, err)
		}
		if req.Token == "" || req.ImageURL == "" {
			return httpx.Fail(c, apperr.InvalidRequest())
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
		defer cancel()

		if err := svc.SetAvatar(ctx, req.Token, req.ImageURL); err != nil {
			return httpx.Fail(c, err)
		}
		return httpx.OK(c)
	})

	r.Post("/remove-ava", func(c *fiber.Ctx) error {
		var req TokenRequest
		if err := httpx.DecodeStrict(c, &req); err != nil {
			return httpx.Fail(c, err)
		}
		if req.Token == "" {
			return httpx.Fail(c, apperr.InvalidRequest())
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
		defer cancel()

		if err := svc.ClearAvatar(ctx, req.Token); err != nil {
			return httpx.Fail(c, err)
		}
		return httpx.OK(c)
	})

	r.Post("/add-favorite", func(c *fiber.Ctx) error {
		var req FavoriteRequest
		if err := httpx.DecodeStrict(c, &req); err != nil {
			return httpx.Fail(c, err)
		}
		if req.Token == "" || req.PostToken == "" || req.ImageURL == "" {
			return httpx.Fail(c, apperr.InvalidRequest())
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
		defer cancel()

		if err := svc.AddFavorite(ctx, req.Token, req.PostToken, req.ImageURL); err != nil {
			return httpx.Fail(c, err)
		}
		return httpx.OK(c)
	})

	r.Post("/delete-favorite", func(c *fiber.Ctx) error {
		var req FavoriteRequest
		if err := httpx.DecodeStrict(c, &req); err != nil {
			return httpx.Fail(c, err)
		}
		if req.Token == "" || req.PostToken == "" || req.ImageURL == "" {
			return httpx.Fail(c, apperr.InvalidRequest())
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
		defer cancel()

		if err := svc.RemoveFavorite(ctx, req.Token, req.PostToken, req.ImageURL); err != nil {
			return httpx.Fail(c, err)
		}
		return httpx.OK(c)
	})
}
