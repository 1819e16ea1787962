package content

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/NikolayFrontendDeveloper/picChatServer/internal/model"
	"github.com/NikolayFrontendDeveloper/picChatServer/internal/shared/apperr"
	"github.com/NikolayFrontendDeveloper/picChatServer/internal/shared/httpx"
)

const requestTimeout = 5 * time.Second

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Post("/posts", func(c *fiber.Ctx) error {
		var req CreatePostRequest
		if err := httpx.DecodeStrict(c, &req); err != nil {
			return httpx.Fail(c, err)
		}
		if req.User == "" || req.ImageURL == "" {
			return httpx.Fail(c, apperr.InvalidRequest())
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
		defer cancel()

		if err := svc.CreatePost(ctx, req.User, req.Text, req.ImageURL); err != nil {
			return httpx.Fail(c, err)
		}
		return httpx.OK(c)
	})

	r.Post("/delete-post", func(c *fiber.Ctx) error {
		var req DeletePostRequest
		if err := httpx.DecodeStrict(c, &req); err != nil {
			return httpx.Fail(c, err)
		}
		if req.Token == "" || req.ImageURL == "" {
			return httpx.Fail(c, apperr.InvalidRequest())
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
		defer cancel()

		if err := svc.DeletePost(ctx, req.Token, req.ImageURL); err != nil {
			return httpx.Fail(c, err)
		}
		return httpx.OK(c)
	})

	r.Post("/posts/like", func(c *fiber.Ctx) error {
		return likeHandler(c, svc.LikePost)
	})

	r.Post("/posts/unlike", func(c *fiber.Ctx) error {
		return likeHandler(c, svc.UnlikePost)
	})

	r.Post("/posts/add-comment", func(c *fiber.Ctx) error {
		var req AddCommentRequest
		if err := httpx.DecodeStrict(c, &req); err != nil {
			return httpx.Fail(c, err)
		}
		if req.User == "" || req.Token == "" || req.ImageURL == "" || req.Text == "" {
			return httpx.Fail(c, apperr.InvalidRequest())
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
		defer cancel()

		id, err := svc.AddComment(ctx, req.User, req.Token, req.ImageURL, req.Text)
		if err != nil {
			return httpx.Fail(c, err)
		}
		return c.JSON(fiber.Map{"ok": true, "id": id})
	})

	r.Post("/posts/remove-comment", func(c *fiber.Ctx) error {
		return commentHandler(c, svc.RemoveComment)
	})

	r.Post("/posts/comment/like", func(c *fiber.Ctx) error {
		return commentHandler(c, svc.LikeComment)
	})

	r.Post("/posts/comment/unlike", func(c *fiber.Ctx) error {
		return commentHandler(c, svc.UnlikeComment)
	})
}

type likeOp func(ctx context.Context, owner model.Username, liker model.UserID, imageURL string) error

func likeHandler(c *fiber.Ctx, op likeOp) error {
	var req LikeRequest
	if err := httpx.DecodeStrict(c, &req); err != nil {
		return httpx.Fail(c, err)
	}
	if req.User == "" || req.Token == "" || req.ImageURL == "" {
		return httpx.Fail(c, apperr.InvalidRequest())
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
	defer cancel()

	if err := op(ctx, req.User, req.Token, req.ImageURL); err != nil {
		return httpx.Fail(c, err)
	}
	return httpx.OK(c)
}

type commentOp func(ctx context.Context, owner model.Username, requester model.UserID, imageURL, commentID string) error

func commentHandler(c *fiber.Ctx, op commentOp) error {
	var req CommentRequest
	if err := httpx.DecodeStrict(c, &req); err != nil {
		return httpx.Fail(c, err)
	}
	if req.User == "" || req.Token == "" || req.ImageURL == "" || req.ID == "" {
		return httpx.Fail(c, apperr.InvalidRequest())
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
	defer cancel()

	if err := op(ctx, req.User, req.Token, req.ImageURL, req.ID); err != nil {
		return httpx.Fail(c, err)
	}
	return httpx.OK(c)
}
