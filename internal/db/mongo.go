package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/NikolayFrontendDeveloper/picChatServer/internal/config"
)

var (
	connectFn = func(ctx context.Context, url string) (*mongo.Client, error) {
		return mongo.Connect(ctx, options.Client().ApplyURI(url))
	}
	pingFn = func(ctx context.Context, client *mongo.Client) error {
		return client.Ping(ctx, nil)
	}
)

// ConnectMongo dials the document store and verifies the connection. The
// caller treats a failure here as fatal: the process must not start
// accepting requests without its store.
func ConnectMongo(cfg config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := connectFn(ctx, cfg.MongoURL)
	if err != nil {
		return nil, err
	}
	if err := pingFn(ctx, client); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return client, nil
}
