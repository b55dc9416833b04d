package cache

import (
	"context"
	"time"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/dependency"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/pkg/errors"
)

var ErrCacheMiss = errors.New("key not found")

// MemoryCache 进程内 LRU 缓存，所有键共用构造时的 ttl，Set 的 expiration 被忽略
type MemoryCache struct {
	lru *expirable.LRU[string, string]
}

func NewMemoryCache(size int, ttl time.Duration) dependency.Cache {
	if size <= 0 {
		size = 256
	}
	return &MemoryCache{lru: expirable.NewLRU[string, string](size, nil, ttl)}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, error) {
	v, ok := m.lru.Get(key)
	if !ok {
		return "", errors.Wrap(ErrCacheMiss, key)
	}
	return v, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	m.lru.Add(key, value)
	return nil
}

func (m *MemoryCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		m.lru.Remove(k)
	}
	return nil
}

func (m *MemoryCache) Exists(_ context.Context, key string) (bool, error) {
	return m.lru.Contains(key), nil
}

func (m *MemoryCache) Close() error {
	m.lru.Purge()
	return nil
}
