package cache

import (
	"time"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/common/log"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/config"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/dependency"
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(NewCache)

// NewCache 启用 redis 时使用 redis，否则使用进程内缓存
func NewCache() (dependency.Cache, error) {
	cfg := config.Get()
	ttl := time.Duration(cfg.Report.CacheTTL) * time.Second
	if !cfg.Redis.Enabled {
		log.Infof("aggregate cache: memory, size=%d ttl=%s", cfg.Report.CacheSize, ttl)
		return NewMemoryCache(cfg.Report.CacheSize, ttl), nil
	}
	log.Infof("aggregate cache: redis %s", cfg.Redis.Host)
	return NewRedisCache(cfg.Redis)
}
