package repository

import (
	"context"
	"fmt"

	"github.com/modishwear/modish-backend/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	productCollection = "products"
	variantCollection = "productvariants"
	cartCollection    = "carts"
	orderCollection   = "orders"
)

// Database bundles the mongo client with the handful of collections the
// repositories operate on.
type Database struct {
	Client   *mongo.Client
	Products *mongo.Collection
	Variants *mongo.Collection
	Carts    *mongo.Collection
	Orders   *mongo.Collection
}

func NewDatabase(ctx context.Context, cfg *config.Mongo) (*Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(cfg.Database)

	return &Database{
		Client:   client,
		Products: db.Collection(productCollection),
		Variants: db.Collection(variantCollection),
		Carts:    db.Collection(cartCollection),
		Orders:   db.Collection(orderCollection),
	}, nil
}

func (d *Database) Close(ctx context.Context) error {
	return d.Client.Disconnect(ctx)
}
