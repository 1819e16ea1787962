// Package store is the document-store adapter: a thin find/insert/update
// surface over the users and messages collections. Services never touch the
// driver directly; they talk to these interfaces, which also keeps every
// service testable against the in-memory implementation.
package store

import (
	"context"
	"errors"

	"github.com/NikolayFrontendDeveloper/picChatServer/internal/model"
)

var (
	// ErrNotFound reports a lookup that matched no document.
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicate reports a unique-constraint violation on insert.
	ErrDuplicate = errors.New("store: duplicate key")
)

// UserStore is the access surface for the users collection.
//
// The whole content model is read-modify-write over embedded sequences, so
// two concurrent mutators of the same sequence can lose an update to each
// other. SetPostField and SetCommentField are conditional on the addressed
// element still matching its key and are the primitives to build on when an
// operation needs the write to land only if the element survived.
type UserStore interface {
	FindByID(ctx context.Context, id model.UserID) (*model.User, error)
	FindByUsername(ctx context.Context, username model.Username) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)

	// Insert stores a new user and returns its id. ErrDuplicate reports a
	// username collision, enforced by the store itself rather than by a
	// read-then-insert check.
	Insert(ctx context.Context, u *model.User) (model.UserID, error)

	// SetField replaces one top-level field and reports how many documents
	// the filter matched (zero means the user vanished).
	SetField(ctx context.Context, id model.UserID, field string, value any) (int64, error)

	// PushToField appends value to an array field. Missing arrays are
	// created; a missing user matches nothing and is not an error.
	PushToField(ctx context.Context, id model.UserID, field string, value any) error

	// SetPostField replaces one field of the post addressed by
	// (owner username, imageUrl) and reports the match count.
	SetPostField(ctx context.Context, owner model.Username, imageURL, field string, value any) (int64, error)

	// SetCommentField replaces one field of the comment addressed by
	// (owner username, imageUrl, comment id) and reports the match count.
	SetCommentField(ctx context.Context, owner model.Username, imageURL, commentID, field string, value any) (int64, error)
}

// ChatStore is the access surface for the messages collection.
type ChatStore interface {
	Insert(ctx context.Context, members []model.UserID) (string, error)
	FindAll(ctx context.Context) ([]model.Chat, error)
}
