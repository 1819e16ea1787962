package main

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/NikolayFrontendDeveloper/picChatServer/internal/config"
	"github.com/NikolayFrontendDeveloper/picChatServer/internal/store"
)

var errListen = context.Canceled

func TestRunHandlesSignal(t *testing.T) {
	cfg := config.Config{ServerPort: ":0"}
	signals := make(chan os.Signal, 1)

	listenCalled := false
	listen := func(_ *fiber.App, _ string) error {
		listenCalled = true
		return nil
	}

	go func() {
		time.Sleep(10 * time.Millisecond)
		signals <- syscall.SIGINT
	}()

	if err := Run(context.Background(), cfg, store.NewMemoryUsers(), store.NewMemoryChats(), nil, nil, signals, listen); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if !listenCalled {
		t.Fatalf("expected listen to be called")
	}
}

func TestRunContextCancel(t *testing.T) {
	cfg := config.Config{ServerPort: ":0"}
	signals := make(chan os.Signal, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := Run(ctx, cfg, store.NewMemoryUsers(), store.NewMemoryChats(), nil, nil, signals, func(_ *fiber.App, _ string) error { return nil }); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
}

func TestRunListenError(t *testing.T) {
	cfg := config.Config{ServerPort: ":0"}
	signals := make(chan os.Signal, 1)

	err := Run(context.Background(), cfg, store.NewMemoryUsers(), store.NewMemoryChats(), nil, nil, signals, func(_ *fiber.App, _ string) error {
		return errListen
	})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestRunDefaultListen(t *testing.T) {
	cfg := config.Config{ServerPort: ":0"}
	signals := make(chan os.Signal, 1)

	oldListen := defaultListen
	defaultListen = func(_ *fiber.App, _ string) error { return nil }
	defer func() { defaultListen = oldListen }()

	go func() {
		signals <- syscall.SIGINT
	}()

	if err := Run(context.Background(), cfg, store.NewMemoryUsers(), store.NewMemoryChats(), nil, nil, signals, nil); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
}

func TestRunClosesRedis(t *testing.T) {
	cfg := config.Config{ServerPort: ":0"}
	signals := make(chan os.Signal, 1)

	redisServer := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: redisServer.Addr()})

	listen := func(_ *fiber.App, _ string) error {
		signals <- syscall.SIGINT
		return nil
	}

	if err := Run(context.Background(), cfg, store.NewMemoryUsers(), store.NewMemoryChats(), nil, client, signals, listen); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
}

func TestRunShutdownError(t *testing.T) {
	cfg := config.Config{ServerPort: ":0"}
	signals := make(chan os.Signal, 1)

	oldShutdown := shutdownFn
	shutdownFn = func(_ *fiber.App, _ context.Context) error { return errListen }
	defer func() { shutdownFn = oldShutdown }()

	go func() {
		signals <- syscall.SIGINT
	}()

	if err := Run(context.Background(), cfg, store.NewMemoryUsers(), store.NewMemoryChats(), nil, nil, signals, func(_ *fiber.App, _ string) error { return nil }); err == nil {
		t.Fatalf("expected shutdown error")
	}
}

func TestRealMainFatalOnMongoFailure(t *testing.T) {
	oldFatal := fatalFn
	defer func() { fatalFn = oldFatal }()

	fatalCalled := false
	fatalFn = func(string, ...any) { fatalCalled = true }

	runCalled := false
	deps := mainDeps{
		loadConfig:   func() config.Config { return config.Config{ServerPort: ":0"} },
		connectMongo: func(config.Config) (*mongo.Client, error) { return nil, errListen },
		connectRedis: func(config.Config) *redis.Client { return nil },
		notify:       func(chan<- os.Signal, ...os.Signal) {},
		run: func(context.Context, config.Config, store.UserStore, store.ChatStore, *mongo.Client, *redis.Client, <-chan os.Signal, ListenFunc) error {
			runCalled = true
			return nil
		},
	}

	realMain(deps)
	if !fatalCalled {
		t.Fatalf("expected fatal on mongo failure")
	}
	if runCalled {
		t.Fatalf("expected run to be skipped")
	}
}

func TestDefaultDeps(t *testing.T) {
	deps := defaultDeps()
	if deps.loadConfig == nil || deps.connectMongo == nil || deps.connectRedis == nil || deps.notify == nil || deps.run == nil {
		t.Fatalf("expected default deps to be set")
	}
}

func TestMainUsesOverrides(t *testing.T) {
	oldProvider := mainDepsProvider
	oldRunner := mainRunner
	defer func() {
		mainDepsProvider = oldProvider
		mainRunner = oldRunner
	}()

	called := false
	mainDepsProvider = func() mainDeps { return mainDeps{} }
	mainRunner = func(mainDeps) { called = true }

	main()
	if !called {
		t.Fatalf("expected main runner to be called")
	}
}
