package cache

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

var ErrNotFound = errors.New("not found")

type Config struct {
	// URL is Redis connection string (redis://host:port/db). Caching is disabled when empty.
	URL string `toml:"url"`
	// ContestsTTL is how long to keep upstream contest listings
	ContestsTTL time.Duration `toml:"contests_ttl"`
	// PlaylistTTL is how long to keep YouTube playlist items
	PlaylistTTL time.Duration `toml:"playlist_ttl"`
	// Prefix is prepended to every key
	Prefix string `toml:"prefix"`
}

// RedisCache implements caching layer for upstream responses using Redis
type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(ctx context.Context, cfg Config) (RedisCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return RedisCache{}, errors.Wrap(err, "failed to parse redis url")
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return RedisCache{}, errors.Wrap(err, "failed to ping redis")
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "codetracker/"
	}

	return RedisCache{client: client, prefix: prefix}, nil
}

func (c RedisCache) SaveItem(ctx context.Context, key string, item interface{}, exp time.Duration) error {
	data, err := msgpack.Marshal(item)
	if err != nil {
		return errors.Wrapf(err, "failed to serialize %q", key)
	}

	return c.client.Set(ctx, c.key(key), data, exp).Err()
}

func (c RedisCache) GetItem(ctx context.Context, key string, item interface{}) error {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err == redis.Nil {
		return ErrNotFound
	} else if err != nil {
		return err
	}

	if err := msgpack.Unmarshal(data, item); err != nil {
		return errors.Wrapf(err, "failed to deserialize %q", key)
	}

	return nil
}

func (c RedisCache) Invalidate(ctx context.Context, keys ...string) error {
	full := make([]string, 0, len(keys))
	for _, key := range keys {
		full = append(full, c.key(key))
	}

	return c.client.Del(ctx, full...).Err()
}

func (c RedisCache) Close() error {
	return c.client.Close()
}

func (c RedisCache) key(key string) string {
	return c.prefix + key
}
