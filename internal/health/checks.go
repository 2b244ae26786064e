package health

import (
	"context"
	"fmt"
	"time"

	"github.com/hellofresh/health-go/v5"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/modishwear/modish-backend/internal/config"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Endpoints struct {
	MongoClient *mongo.Client
	RedisClient *redis.Client
}

func NewHealthHandler(cfg *config.Config, endpoints *Endpoints) (*health.Health, error) {

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "modish-backend",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "mongodb",
				Timeout:   3 * time.Second,
				SkipOnErr: false,
				Check: func(ctx context.Context) error {
					if endpoints.MongoClient == nil {
						return fmt.Errorf("mongo client is not initialized")
					}
					if err := endpoints.MongoClient.Ping(ctx, readpref.Primary()); err != nil {
						return fmt.Errorf("failed to ping mongodb: %w", err)
					}
					return nil
				},
			},
			health.Config{
				Name:      "redis",
				Timeout:   2 * time.Second,
				SkipOnErr: false,
				Check: healthRedis.New(
					healthRedis.Config{
						DSN: cfg.RedisConnect.GetDSN(),
					},
				),
			},
		),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
