package trivia

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultCacheTTL = 10 * time.Minute
	categoriesKey   = "trivia:categories"
)

// CategoryCache stores the category list. Get returns nil, nil on a miss.
type CategoryCache interface {
	Get(ctx context.Context) (Categories, error)
	Set(ctx context.Context, cats Categories) error
}

// Cache keeps categories in Redis; they never change at runtime, so a TTL
// is the only invalidation needed.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ CategoryCache = (*Cache)(nil)

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) Get(ctx context.Context) (Categories, error) {
	data, err := c.client.Get(ctx, categoriesKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var cats []Category
	if err := json.Unmarshal(data, &cats); err != nil {
		return nil, err
	}
	return Categories(cats), nil
}

func (c *Cache) Set(ctx context.Context, cats Categories) error {
	// Plain slice encoding; Categories' own MarshalJSON is the wire shape.
	data, err := json.Marshal([]Category(cats))
	if err != nil {
		return err
	}
	return c.client.Set(ctx, categoriesKey, data, c.ttl).Err()
}

type noCache struct{}

func (noCache) Get(context.Context) (Categories, error) { return nil, nil }
func (noCache) Set(context.Context, Categories) error   { return nil }
