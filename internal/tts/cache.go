package tts

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Cache stores synthesized audio. Get returns nil, nil on a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

// CacheKey identifies audio for a voice, model and (already stripped) text.
func CacheKey(voiceID, modelID, text string) string {
	h := sha256.New()
	h.Write([]byte(voiceID))
	h.Write([]byte{0})
	h.Write([]byte(modelID))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// DiskCache keeps one .mp3 file per key under a directory.
type DiskCache struct {
	dir string
}

func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) path(key string) string {
	return filepath.Join(c.dir, key+".mp3")
}

func (c *DiskCache) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(c.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

// Put writes through a temp file so readers never see partial audio.
func (c *DiskCache) Put(_ context.Context, key string, data []byte) error {
	tmp, err := os.CreateTemp(c.dir, key+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), c.path(key))
}

// RedisCache keeps audio in Redis with a TTL.
type RedisCache struct {
	rdb    *goredis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisCache connects to the Redis server at url (redis://...).
func NewRedisCache(ctx context.Context, url string, ttl time.Duration) (*RedisCache, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	rdb := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisCache{rdb: rdb, ttl: ttl, prefix: "studymate:tts:"}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	return data, err
}

func (c *RedisCache) Put(ctx context.Context, key string, data []byte) error {
	return c.rdb.Set(ctx, c.prefix+key, data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
