package cache

import (
	"context"
	"encoding/json"
	"time"

	"carwash-marketplace/internal/data/entity"
	"carwash-marketplace/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const locationsKey = "cache:providers:locations"

// LocationCache stores the public provider map. A miss returns nil, nil.
type LocationCache interface {
	GetLocations(ctx context.Context) ([]entity.ProviderLocation, error)
	SetLocations(ctx context.Context, locations []entity.ProviderLocation) error
	InvalidateLocations(ctx context.Context) error
	Close() error
}

// New returns a Redis cache, or a no-op cache when no address is configured
func New(cfg utils.RedisConfig, log *zap.Logger) LocationCache {
	if cfg.Addr == "" {
		return noopCache{}
	}

	return &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		ttl: cfg.LocationsTTL,
		log: log.With(zap.String("cache", "redis")),
	}
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func (c *RedisCache) GetLocations(ctx context.Context) ([]entity.ProviderLocation, error) {
	data, err := c.client.Get(ctx, locationsKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var locations []entity.ProviderLocation
	if err := json.Unmarshal(data, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

func (c *RedisCache) SetLocations(ctx context.Context, locations []entity.ProviderLocation) error {
	payload, err := json.Marshal(locations)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, locationsKey, payload, c.ttl).Err()
}

func (c *RedisCache) InvalidateLocations(ctx context.Context) error {
	return c.client.Del(ctx, locationsKey).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type noopCache struct{}

func (noopCache) GetLocations(context.Context) ([]entity.ProviderLocation, error) { return nil, nil }
func (noopCache) SetLocations(context.Context, []entity.ProviderLocation) error   { return nil }
func (noopCache) InvalidateLocations(context.Context) error                       { return nil }
func (noopCache) Close() error                                                    { return nil }
