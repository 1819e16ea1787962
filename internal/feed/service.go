package feed

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/NikolayFrontendDeveloper/picChatServer/internal/model"
	"github.com/NikolayFrontendDeveloper/picChatServer/internal/shared/apperr"
	"github.com/NikolayFrontendDeveloper/picChatServer/internal/store"
)

const globalCacheKey = "feed:global"

// Item is a post annotated with its owner's display name, the unit both
// feed projections are built from.
type Item struct {
	Text     string          `json:"text,omitempty"`
	Token    model.UserID    `json:"token"`
	ImageURL string          `json:"imageUrl"`
	Time     int64           `json:"time"`
	Likes    []model.UserID  `json:"likes,omitempty"`
	Comments []model.Comment `json:"comments,omitempty"`
	Name     model.Username  `json:"name"`
}

// Service composes feeds by fanning out over every user document. The
// global projection may be served from a short-lived redis cache; cache
// reads and writes are best-effort and never fail the request.
type Service struct {
	users store.UserStore
	redis *redis.Client
	ttl   time.Duration
}

func NewService(users store.UserStore, redisClient *redis.Client, cacheTTL time.Duration) *Service {
	return &Service{users: users, redis: redisClient, ttl: cacheTTL}
}

// Global returns every post of every user, newest first. Ties keep scan
// order. Cached results can lag mutations by up to the configured TTL.
func (s *Service) Global(ctx context.Context) ([]Item, error) {
	if items, ok := s.cached(ctx); ok {
		return items, nil
	}

	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, apperr.Store(err, "internal server error during fetching posts")
	}

	items := make([]Item, 0)
	for i := range users {
		items = appendPosts(items, &users[i])
	}
	sortByTime(items)

	s.cache(ctx, items)
	return items, nil
}

// Subscriptions returns the viewer's own posts plus those of any user whose
// subscribers list contains the viewer. The check runs against the post
// owner's side of the graph, so an asymmetric edge shows up here exactly as
// it is stored.
func (s *Service) Subscriptions(ctx context.Context, viewer model.UserID) ([]Item, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, apperr.Store(err, "internal server error during fetching posts")
	}

	items := make([]Item, 0)
	for i := range users {
		u := &users[i]
		if u.UserID() != viewer && !containsID(u.Subscribers, viewer) {
			continue
		}
		items = appendPosts(items, u)
	}
	sortByTime(items)
	return items, nil
}

func (s *Service) cached(ctx context.Context) ([]Item, bool) {
	if s.redis == nil || s.ttl <= 0 {
		return nil, false
	}
	payload, err := s.redis.Get(ctx, globalCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("feed cache read error: %v", err)
		}
		return nil, false
	}
	var items []Item
	if err := json.Unmarshal(payload, &items); err != nil {
		log.Printf("feed cache decode error: %v", err)
		return nil, false
	}
	return items, true
}

func (s *Service) cache(ctx context.Context, items []Item) {
	if s.redis == nil || s.ttl <= 0 {
		return
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, globalCacheKey, payload, s.ttl).Err(); err != nil {
		log.Printf("feed cache write error: %v", err)
	}
}

func appendPosts(items []Item, u *model.User) []Item {
	for _, p := range u.Posts {
		items = append(items, Item{
			Text:     p.Text,
			Token:    p.Token,
			ImageURL: p.ImageURL,
			Time:     p.Time,
			Likes:    p.Likes,
			Comments: p.Comments,
			Name:     u.Username,
		})
	}
	return items
}

func sortByTime(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Time > items[j].Time
	})
}

func containsID(ids []model.UserID, want model.UserID) bool {
	for _, id := range ids {
		if id == want {
			return true
		}
	}
	return false
}
