package mongo

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"roktoSheba/pkg/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BuildURI returns the configured URI, or an Atlas SRV URI assembled from
// the user/password/cluster settings.
func BuildURI(cfg config.MongoConfig) string {
	if cfg.URI != "" {
		return cfg.URI
	}
	return fmt.Sprintf(
		"mongodb+srv://%s:%s@%s/?appName=Cluster0",
		url.QueryEscape(cfg.User),
		url.QueryEscape(cfg.Password),
		cfg.Cluster,
	)
}

func InitMongo(cfg *config.Config) (*mongo.Client, *mongo.Database, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	opts := options.Client().
		ApplyURI(BuildURI(cfg.Mongo)).
		SetServerAPIOptions(serverAPI).
		SetConnectTimeout(10 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client, client.Database(cfg.Mongo.Name), nil
}

// CloseMongo disconnects the client
func CloseMongo(ctx context.Context, client *mongo.Client) error {
	if client != nil {
		return client.Disconnect(ctx)
	}

	return nil
}
