package locker

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var _ Locker = (*RedisLocker)(nil)

const releaseScript = `if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`

type Config struct {
	Backend       string        `mapstructure:"backend"`
	TTL           time.Duration `mapstructure:"ttl"`
	RetryInterval time.Duration `mapstructure:"retry_interval"`
	Prefix        string        `mapstructure:"prefix"`
}

// RedisLocker holds each key with SET NX PX and a random token; release only
// deletes the key if the token still matches.
type RedisLocker struct {
	client *redis.Client
	cfg    Config
	logger *zap.Logger
	token  func() string
}

func NewRedisLocker(client *redis.Client, cfg Config, logger *zap.Logger) *RedisLocker {
	if cfg.TTL <= 0 {
		cfg.TTL = 10 * time.Second
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = 20 * time.Millisecond
	}

	return &RedisLocker{client: client, cfg: cfg, logger: logger, token: uuid.NewString}
}

// WithTokenFunc replaces the token generator.
func (r *RedisLocker) WithTokenFunc(fn func() string) *RedisLocker {
	r.token = fn
	return r
}

func (r *RedisLocker) Lock(ctx context.Context, keys ...string) (func(), error) {
	return lockAll(ctx, keys, r.acquire)
}

func (r *RedisLocker) acquire(ctx context.Context, key string) (func(), error) {
	redisKey := r.cfg.Prefix + key
	token := r.token()

	for {
		ok, err := r.client.SetNX(ctx, redisKey, token, r.cfg.TTL).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire %s: %w", redisKey, err)
		}

		if ok {
			return func() { r.release(redisKey, token) }, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("acquire %s: %w: %w", redisKey, ErrNotAcquired, ctx.Err())
		case <-time.After(r.cfg.RetryInterval):
		}
	}
}

func (r *RedisLocker) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := r.client.Eval(ctx, releaseScript, []string{key}, token).Err(); err != nil {
		r.logger.Error("Failed to release lock", zap.String("key", key), zap.Error(err))
	}
}

type RedisConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func NewRedisClient(cfg RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", zap.Error(err), zap.String("addr", cfg.Addr))
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Successfully connected to Redis", zap.String("addr", cfg.Addr))
	return client, nil
}
