package feed

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/NikolayFrontendDeveloper/picChatServer/internal/model"
	"github.com/NikolayFrontendDeveloper/picChatServer/internal/store"
)

func seedPoster(t *testing.T, users *store.MemoryUsers, username model.Username, times ...int64) model.UserID {
	t.Helper()
	ctx := context.Background()
	id, err := users.Insert(ctx, &model.User{Username: username})
	if err != nil {
		t.Fatalf("insert %s: %v", username, err)
	}
	for _, ts := range times {
		post := model.Post{
			ImageURL: string(username) + "-img",
			Token:    id,
			Time:     ts,
		}
		if err := users.PushToField(ctx, id, "posts", post); err != nil {
			t.Fatalf("push post: %v", err)
		}
	}
	return id
}

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestGlobalOrdersNewestFirst(t *testing.T) {
	users := store.NewMemoryUsers()
	svc := NewService(users, nil, 0)
	ctx := context.Background()

	seedPoster(t, users, "a", 100)
	seedPoster(t, users, "b", 300)
	seedPoster(t, users, "c", 200)
	seedPoster(t, users, "d", 300)

	items, err := svc.Global(ctx)
	if err != nil {
		t.Fatalf("global: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(items))
	}
	if items[0].Time != 300 || items[1].Time != 300 || items[2].Time != 200 || items[3].Time != 100 {
		t.Fatalf("unexpected order: %d %d %d %d", items[0].Time, items[1].Time, items[2].Time, items[3].Time)
	}
	// equal timestamps keep scan order: b was seeded before d
	if items[0].Name != "b" || items[1].Name != "d" {
		t.Fatalf("tie not broken by scan order: %s %s", items[0].Name, items[1].Name)
	}
}

func TestGlobalEmptyIsEmptySlice(t *testing.T) {
	svc := NewService(store.NewMemoryUsers(), nil, 0)

	items, err := svc.Global(context.Background())
	if err != nil {
		t.Fatalf("global: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty slice, got %#v", items)
	}
}

func TestGlobalServesFromCache(t *testing.T) {
	users := store.NewMemoryUsers()
	svc := NewService(users, testRedis(t), time.Minute)
	ctx := context.Background()

	owner := seedPoster(t, users, "a", 100)

	first, err := svc.Global(ctx)
	if err != nil || len(first) != 1 {
		t.Fatalf("first read: %v", err)
	}

	// a mutation inside the TTL is not visible
	if err := users.PushToField(ctx, owner, "posts", model.Post{ImageURL: "later", Token: owner, Time: 200}); err != nil {
		t.Fatalf("push: %v", err)
	}

	second, err := svc.Global(ctx)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("expected stale cached feed, got %d items", len(second))
	}
}

func TestGlobalCacheExpires(t *testing.T) {
	users := store.NewMemoryUsers()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc := NewService(users, client, time.Minute)
	ctx := context.Background()

	owner := seedPoster(t, users, "a", 100)
	if _, err := svc.Global(ctx); err != nil {
		t.Fatalf("prime cache: %v", err)
	}

	if err := users.PushToField(ctx, owner, "posts", model.Post{ImageURL: "later", Token: owner, Time: 200}); err != nil {
		t.Fatalf("push: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	items, err := svc.Global(ctx)
	if err != nil {
		t.Fatalf("global after expiry: %v", err)
	}
	if len(items) != 2 || items[0].Time != 200 {
		t.Fatalf("expected recomputed feed, got %+v", items)
	}
}

func TestGlobalSurvivesRedisOutage(t *testing.T) {
	users := store.NewMemoryUsers()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc := NewService(users, client, time.Minute)

	seedPoster(t, users, "a", 100)
	mr.Close()

	items, err := svc.Global(context.Background())
	if err != nil || len(items) != 1 {
		t.Fatalf("expected feed despite cache outage, got %v (%v)", items, err)
	}
}

func TestSubscriptionsFollowsOwnerSideEdges(t *testing.T) {
	users := store.NewMemoryUsers()
	svc := NewService(users, nil, 0)
	ctx := context.Background()

	viewer := seedPoster(t, users, "viewer", 50)
	followed := seedPoster(t, users, "followed", 100)
	stranger := seedPoster(t, users, "stranger", 200)

	// only the owner-side subscribers list is consulted
	if err := users.PushToField(ctx, followed, "subscribers", viewer); err != nil {
		t.Fatalf("push edge: %v", err)
	}

	items, err := svc.Subscriptions(ctx, viewer)
	if err != nil {
		t.Fatalf("subscriptions: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected own + followed posts, got %+v", items)
	}
	if items[0].Token != followed || items[1].Token != viewer {
		t.Fatalf("unexpected composition: %+v", items)
	}
	for _, it := range items {
		if it.Token == stranger {
			t.Fatalf("stranger's post leaked into feed")
		}
	}
}

func TestSubscriptionsIgnoresViewerSideEdge(t *testing.T) {
	users := store.NewMemoryUsers()
	svc := NewService(users, nil, 0)
	ctx := context.Background()

	viewer := seedPoster(t, users, "viewer")
	target := seedPoster(t, users, "target", 100)

	// an asymmetric edge recorded only on the viewer's side is invisible
	if err := users.PushToField(ctx, viewer, "subscriptions", target); err != nil {
		t.Fatalf("push edge: %v", err)
	}

	items, err := svc.Subscriptions(ctx, viewer)
	if err != nil {
		t.Fatalf("subscriptions: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty feed, got %+v", items)
	}
}
