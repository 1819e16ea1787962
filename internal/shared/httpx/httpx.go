// Package httpx holds the request/response helpers shared by every handler
// package.
package httpx

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/NikolayFrontendDeveloper/picChatServer/internal/shared/apperr"
)

// Result is the wire shape of every non-payload response: a success flag
// plus, on failure, a machine-readable kind and a human-readable comment.
type Result struct {
	OK      bool        `json:"ok"`
	Kind    apperr.Kind `json:"kind,omitempty"`
	Comment string      `json:"comment,omitempty"`
}

// DecodeStrict parses the request body into dst, rejecting unknown fields.
// A request carrying anything beyond the expected field set is malformed.
func DecodeStrict(c *fiber.Ctx, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperr.InvalidRequest()
	}
	// trailing garbage after the object is malformed too
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return apperr.InvalidRequest()
	}
	return nil
}

// Fail writes the structured negative result for err.
func Fail(c *fiber.Ctx, err error) error {
	return c.Status(apperr.StatusOf(err)).JSON(Result{
		OK:      false,
		Kind:    apperr.KindOf(err),
		Comment: apperr.CommentOf(err),
	})
}

// OK writes the bare positive result.
func OK(c *fiber.Ctx) error {
	return c.JSON(Result{OK: true})
}
