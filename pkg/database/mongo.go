package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewMongoDatabase connects to MongoDB and returns a handle to the named
// database. The connection is verified with a ping before it is handed out;
// startup retry policy belongs to the caller.
func NewMongoDatabase(uri, dbName string) (*mongo.Database, func(context.Context) error, error) {
	if uri == "" {
		return nil, nil, errors.New("database: MONGO_URI is not set")
	}
	if dbName == "" {
		return nil, nil, errors.New("database: MONGO_DB is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(uri).
		SetServerSelectionTimeout(20 * time.Second).
		SetConnectTimeout(15 * time.Second).
		SetMaxPoolSize(20).
		SetMinPoolSize(2)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, err
	}

	return client.Database(dbName), client.Disconnect, nil
}
