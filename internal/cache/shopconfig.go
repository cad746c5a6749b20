package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/latinbarber/booking-api/internal/models"
	"github.com/latinbarber/booking-api/internal/store"
)

const (
	shopConfigKey = "config:general"
	shopConfigTTL = 10 * time.Minute
)

// ShopConfigCache is a read-through cache over the singleton config
// document. The config is read on every availability query but written
// rarely, so a stale-bounded copy is fine. A nil redis client degrades to
// plain repository reads.
type ShopConfigCache struct {
	rdb  *redis.Client
	repo store.Repository
}

func NewShopConfigCache(rdb *redis.Client, repo store.Repository) *ShopConfigCache {
	return &ShopConfigCache{rdb: rdb, repo: repo}
}

func (c *ShopConfigCache) Get(ctx context.Context) (models.ShopConfig, error) {
	if c.rdb != nil {
		raw, err := c.rdb.Get(ctx, shopConfigKey).Result()
		if err == nil {
			var cfg models.ShopConfig
			if jsonErr := json.Unmarshal([]byte(raw), &cfg); jsonErr == nil {
				return cfg, nil
			}
		} else if err != redis.Nil {
			log.Println("cache: redis get:", err)
		}
	}

	cfg, err := c.repo.GetShopConfig(ctx)
	if err != nil {
		return models.ShopConfig{}, err
	}

	if c.rdb != nil {
		if raw, err := json.Marshal(cfg); err == nil {
			if err := c.rdb.Set(ctx, shopConfigKey, raw, shopConfigTTL).Err(); err != nil {
				log.Println("cache: redis set:", err)
			}
		}
	}
	return cfg, nil
}

// Save overwrites the whole document and invalidates the cached copy.
func (c *ShopConfigCache) Save(ctx context.Context, cfg models.ShopConfig) error {
	if err := c.repo.SaveShopConfig(ctx, cfg); err != nil {
		return err
	}
	if c.rdb != nil {
		if err := c.rdb.Del(ctx, shopConfigKey).Err(); err != nil {
			log.Println("cache: redis del:", err)
		}
	}
	return nil
}
