package chat

import (
	"context"

	"github.com/NikolayFrontendDeveloper/picChatServer/internal/model"
	"github.com/NikolayFrontendDeveloper/picChatServer/internal/shared/apperr"
	"github.com/NikolayFrontendDeveloper/picChatServer/internal/store"
)

type Service struct {
	chats store.ChatStore
	users store.UserStore
}

func NewService(chats store.ChatStore, users store.UserStore) *Service {
	return &Service{chats: chats, users: users}
}

// Create inserts a two-member thread, then appends its id to each member's
// thread list. The three writes are independent: a failure after the insert
// is surfaced together with the already-created id, never rolled back.
func (s *Service) Create(ctx context.Context, memberA, memberB model.UserID) (string, error) {
	id, err := s.chats.Insert(ctx, []model.UserID{memberA, memberB})
	if err != nil {
		return "", apperr.Store(err, "internal server error during creating chat")
	}

	if err := s.users.PushToField(ctx, memberA, "messages", id); err != nil {
		return id, apperr.Store(err, "internal server error during creating chat")
	}
	if err := s.users.PushToField(ctx, memberB, "messages", id); err != nil {
		return id, apperr.Store(err, "internal server error during creating chat")
	}
	return id, nil
}

func (s *Service) All(ctx context.Context) ([]model.Chat, error) {
	chats, err := s.chats.FindAll(ctx)
	if err != nil {
		return nil, apperr.Store(err, "internal server error during fetching chats")
	}
	return chats, nil
}
