package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/NikolayFrontendDeveloper/picChatServer/internal/config"
	"github.com/NikolayFrontendDeveloper/picChatServer/internal/db"
	"github.com/NikolayFrontendDeveloper/picChatServer/internal/server"
	"github.com/NikolayFrontendDeveloper/picChatServer/internal/store"
)

var (
	mainDepsProvider = defaultDeps
	mainRunner       = realMain
	fatalFn          = log.Fatalf
)

func main() {
	mainRunner(mainDepsProvider())
}

type mainDeps struct {
	loadConfig   func() config.Config
	connectMongo func(config.Config) (*mongo.Client, error)
	connectRedis func(config.Config) *redis.Client
	notify       func(chan<- os.Signal, ...os.Signal)
	run          func(context.Context, config.Config, store.UserStore, store.ChatStore, *mongo.Client, *redis.Client, <-chan os.Signal, ListenFunc) error
}

func defaultDeps() mainDeps {
	return mainDeps{
		loadConfig:   config.Load,
		connectMongo: db.ConnectMongo,
		connectRedis: db.ConnectRedis,
		notify:       signal.Notify,
		run:          Run,
	}
}

func realMain(deps mainDeps) {
	cfg := deps.loadConfig()

	// no store, no service: refuse to start rather than accept requests
	// that can only fail
	client, err := deps.connectMongo(cfg)
	if err != nil {
		fatalFn("mongo connection failed: %v", err)
		return
	}

	database := client.Database(cfg.MongoDatabase)

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 5*time.Second)
	users, err := store.NewMongoUsers(indexCtx, database)
	cancelIndex()
	if err != nil {
		fatalFn("users store init failed: %v", err)
		return
	}
	chats := store.NewMongoChats(database)

	rdb := deps.connectRedis(cfg)

	signals := make(chan os.Signal, 1)
	deps.notify(signals, syscall.SIGINT, syscall.SIGTERM)

	if err := deps.run(context.Background(), cfg, users, chats, client, rdb, signals, nil); err != nil {
		log.Printf("server exited with error: %v", err)
	}
}

type ListenFunc func(app *fiber.App, addr string) error

var defaultListen ListenFunc = func(app *fiber.App, addr string) error {
	return app.Listen(addr)
}

var shutdownFn = func(app *fiber.App, ctx context.Context) error {
	return app.ShutdownWithContext(ctx)
}

// Run starts the HTTP server and waits for termination signals. Shutdown is
// explicit: the listener drains, then the store client disconnects, then
// redis closes.
func Run(ctx context.Context, cfg config.Config, users store.UserStore, chats store.ChatStore, client *mongo.Client, rdb *redis.Client, signals <-chan os.Signal, listen ListenFunc) error {
	srv := server.NewServer(cfg, users, chats, rdb)

	if listen == nil {
		listen = defaultListen
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- listen(srv.App, cfg.ServerPort)
	}()

	select {
	case <-signals:
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := shutdownFn(srv.App, shutdownCtx); err != nil {
		return err
	}
	if client != nil {
		if err := client.Disconnect(shutdownCtx); err != nil {
			log.Printf("mongo disconnect error: %v", err)
		}
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	return nil
}
