package store

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/NikolayFrontendDeveloper/picChatServer/internal/model"
)

// MemoryUsers is an in-memory UserStore with the same observable semantics
// as the mongo implementation: unique usernames, match counts, deep-copied
// documents on read. It backs the service and handler tests and works as a
// throwaway store for local runs.
type MemoryUsers struct {
	mu    sync.Mutex
	users map[model.UserID]*model.User
	order []model.UserID
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{users: map[model.UserID]*model.User{}}
}

func (s *MemoryUsers) FindByID(_ context.Context, id model.UserID) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUser(u), nil
}

func (s *MemoryUsers) FindByUsername(_ context.Context, username model.Username) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u := s.byUsername(username); u != nil {
		return cloneUser(u), nil
	}
	return nil, ErrNotFound
}

func (s *MemoryUsers) FindAll(_ context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]model.User, 0, len(s.order))
	for _, id := range s.order {
		users = append(users, *cloneUser(s.users[id]))
	}
	return users, nil
}

func (s *MemoryUsers) Insert(_ context.Context, u *model.User) (model.UserID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byUsername(u.Username) != nil {
		return "", ErrDuplicate
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	id := u.UserID()
	s.users[id] = cloneUser(u)
	s.order = append(s.order, id)
	return id, nil
}

func (s *MemoryUsers) SetField(_ context.Context, id model.UserID, field string, value any) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return 0, nil
	}
	if err := setUserField(u, field, value); err != nil {
		return 0, err
	}
	return 1, nil
}

func (s *MemoryUsers) PushToField(_ context.Context, id model.UserID, field string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		// matches the remote store: an update filtered on a missing id
		// matches nothing and reports no error
		return nil
	}
	switch field {
	case "subscriptions":
		u.Subscriptions = append(u.Subscriptions, value.(model.UserID))
	case "subscribers":
		u.Subscribers = append(u.Subscribers, value.(model.UserID))
	case "favoritePosts":
		u.FavoritePosts = append(u.FavoritePosts, value.(model.FavoriteEntry))
	case "posts":
		u.Posts = append(u.Posts, clonePost(value.(model.Post)))
	case "messages":
		u.Messages = append(u.Messages, value.(string))
	default:
		return fmt.Errorf("memory: push to unsupported field %q", field)
	}
	return nil
}

func (s *MemoryUsers) SetPostField(_ context.Context, owner model.Username, imageURL, field string, value any) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.byUsername(owner)
	if u == nil {
		return 0, nil
	}
	for i := range u.Posts {
		if u.Posts[i].ImageURL != imageURL {
			continue
		}
		switch field {
		case "likes":
			u.Posts[i].Likes = append([]model.UserID(nil), value.([]model.UserID)...)
		case "comments":
			u.Posts[i].Comments = cloneComments(value.([]model.Comment))
		default:
			return 0, fmt.Errorf("memory: set unsupported post field %q", field)
		}
		return 1, nil
	}
	return 0, nil
}

func (s *MemoryUsers) SetCommentField(_ context.Context, owner model.Username, imageURL, commentID, field string, value any) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.byUsername(owner)
	if u == nil {
		return 0, nil
	}
	for i := range u.Posts {
		if u.Posts[i].ImageURL != imageURL {
			continue
		}
		for j := range u.Posts[i].Comments {
			if u.Posts[i].Comments[j].ID != commentID {
				continue
			}
			if field != "likes" {
				return 0, fmt.Errorf("memory: set unsupported comment field %q", field)
			}
			u.Posts[i].Comments[j].Likes = append([]model.UserID(nil), value.([]model.UserID)...)
			return 1, nil
		}
		// the document matched even though the array filter hit nothing
		return 1, nil
	}
	return 0, nil
}

func (s *MemoryUsers) byUsername(username model.Username) *model.User {
	for _, id := range s.order {
		if s.users[id].Username == username {
			return s.users[id]
		}
	}
	return nil
}

func setUserField(u *model.User, field string, value any) error {
	switch field {
	case "avaUrl":
		u.AvaURL = value.(string)
	case "subscriptions":
		u.Subscriptions = append([]model.UserID(nil), value.([]model.UserID)...)
	case "subscribers":
		u.Subscribers = append([]model.UserID(nil), value.([]model.UserID)...)
	case "favoritePosts":
		u.FavoritePosts = append([]model.FavoriteEntry(nil), value.([]model.FavoriteEntry)...)
	case "posts":
		posts := value.([]model.Post)
		u.Posts = make([]model.Post, len(posts))
		for i, p := range posts {
			u.Posts[i] = clonePost(p)
		}
	default:
		return fmt.Errorf("memory: set unsupported field %q", field)
	}
	return nil
}

func cloneUser(u *model.User) *model.User {
	c := *u
	c.Subscriptions = append([]model.UserID(nil), u.Subscriptions...)
	c.Subscribers = append([]model.UserID(nil), u.Subscribers...)
	c.FavoritePosts = append([]model.FavoriteEntry(nil), u.FavoritePosts...)
	c.Messages = append([]string(nil), u.Messages...)
	if u.Posts != nil {
		c.Posts = make([]model.Post, len(u.Posts))
		for i, p := range u.Posts {
			c.Posts[i] = clonePost(p)
		}
	}
	return &c
}

func clonePost(p model.Post) model.Post {
	p.Likes = append([]model.UserID(nil), p.Likes...)
	p.Comments = cloneComments(p.Comments)
	return p
}

func cloneComments(comments []model.Comment) []model.Comment {
	if comments == nil {
		return nil
	}
	out := make([]model.Comment, len(comments))
	for i, c := range comments {
		c.Likes = append([]model.UserID(nil), c.Likes...)
		out[i] = c
	}
	return out
}

// MemoryChats is the in-memory ChatStore counterpart.
type MemoryChats struct {
	mu    sync.Mutex
	chats []model.Chat
}

func NewMemoryChats() *MemoryChats {
	return &MemoryChats{}
}

func (s *MemoryChats) Insert(_ context.Context, members []model.UserID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	chat := model.Chat{
		ID:      primitive.NewObjectID(),
		Members: append([]model.UserID(nil), members...),
	}
	s.chats = append(s.chats, chat)
	return chat.ID.Hex(), nil
}

func (s *MemoryChats) FindAll(_ context.Context) ([]model.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Chat, len(s.chats))
	for i, c := range s.chats {
		c.Members = append([]model.UserID(nil), c.Members...)
		out[i] = c
	}
	return out, nil
}
