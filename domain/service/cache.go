package service

import (
	"context"
	"fmt"
	"sort"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/common/log"
	"github.com/bytedance/sonic"
)

// cached 以 实例:generation:名称:参数 为键缓存聚合结果。
// daily 为 true 时结果依赖当天日期，键中追加日期。缓存不可用时直接计算
func cached[T any](ctx context.Context, s *reportService, gen uint64, name string, params any, daily bool, compute func() T) T {
	if s.cache == nil {
		return compute()
	}
	p, err := sonic.MarshalString(params)
	if err != nil {
		log.Warnf("Failed to marshal %s cache params: %v", name, err)
		return compute()
	}
	key := fmt.Sprintf("%s:%s:%d:%s:%s", cacheKeyPrefix, s.instance, gen, name, p)
	if daily {
		key += ":" + s.now().Format("20060102")
	}

	if val, err := s.cache.Get(ctx, key); err == nil {
		var out T
		if err := sonic.UnmarshalString(val, &out); err == nil {
			return out
		}
		log.Warnf("Discard undecodable cache entry %s", key)
	}

	out := compute()
	data, err := sonic.MarshalString(out)
	if err != nil {
		log.Warnf("Failed to marshal %s result for cache: %v", name, err)
		return out
	}
	if err := s.cache.Set(ctx, key, data, s.opts.CacheTTL); err != nil {
		log.Warnf("Failed to set cache %s: %v", key, err)
		return out
	}
	s.track(gen, key)
	return out
}

// track 记录 gen 下写入的键。generation 在 keysMu 内复核，
// 快照若在复核后切换，随后的 invalidate 需要等待 keysMu，仍会删掉这个键
func (s *reportService) track(gen uint64, key string) {
	s.keysMu.Lock()
	defer s.keysMu.Unlock()
	if t, _, _ := s.current(); t.Generation != gen {
		// 快照已经切换，旧 generation 的键只依赖 TTL 过期
		return
	}
	set, ok := s.keys[gen]
	if !ok {
		set = make(map[string]struct{})
		s.keys[gen] = set
	}
	set[key] = struct{}{}
}

// invalidate 删除某个 generation 下记录过的全部缓存键
func (s *reportService) invalidate(ctx context.Context, gen uint64) {
	if s.cache == nil {
		return
	}
	s.keysMu.Lock()
	set := s.keys[gen]
	delete(s.keys, gen)
	s.keysMu.Unlock()
	if len(set) == 0 {
		return
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	if err := s.cache.Del(ctx, keys...); err != nil {
		log.Warnf("Failed to invalidate %d cache keys of generation %d: %v", len(keys), gen, err)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
