package cache

import (
	"context"
	"time"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/config"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/dependency"
	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

// RedisCache redis客户端
type RedisCache struct {
	client redis.UniversalClient
}

// NewRedisCache 创建 Redis 实例。配置了 MasterName 和 SentinelAddrs 时使用 Sentinel 模式
func NewRedisCache(cfg config.RedisCfg) (dependency.Cache, error) {
	var client redis.UniversalClient

	if cfg.MasterName != "" && len(cfg.SentinelAddrs) > 0 {
		client = newSentinelClient(cfg)
	} else {
		client = newStandaloneClient(cfg)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "连接 redis 失败")
	}

	return &RedisCache{client: client}, nil
}

// newSentinelClient Sentinel 模式
func newSentinelClient(cfg config.RedisCfg) redis.UniversalClient {
	return redis.NewFailoverClient(&redis.FailoverOptions{
		MasterName:    cfg.MasterName,
		SentinelAddrs: cfg.SentinelAddrs,
		Username:      cfg.Username,
		Password:      cfg.Password,
		DB:            cfg.DB,

		PoolSize:     20,
		MinIdleConns: 2,
		MaxRetries:   3,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}

// newStandaloneClient Standalone 模式
func newStandaloneClient(cfg config.RedisCfg) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Host,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,

		PoolSize:     20,
		MinIdleConns: 2,
		MaxRetries:   3,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", errors.Wrap(ErrCacheMiss, key)
	}
	if err != nil {
		return "", errors.Wrap(err, "redis get")
	}
	return value, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	if err := r.client.Set(ctx, key, value, expiration).Err(); err != nil {
		return errors.Wrap(err, "redis set")
	}
	return nil
}

func (r *RedisCache) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return errors.Wrap(err, "redis del")
	}
	return nil
}

func (r *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, errors.Wrap(err, "redis exists")
	}
	return n > 0, nil
}

// Close 关闭 Redis 连接。
func (r *RedisCache) Close() error {
	return r.client.Close()
}
