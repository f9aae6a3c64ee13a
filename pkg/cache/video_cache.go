package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"TikLite.com/pkg/constants"
	"github.com/redis/go-redis/v9"
)

// VideoCacheManager 热门(explore)视频ID列表缓存
type VideoCacheManager struct {
	client *redis.Client
	expire time.Duration
}

func NewVideoCacheManager(client *redis.Client) *VideoCacheManager {
	return &VideoCacheManager{client: client, expire: constants.ExploreCacheTTL}
}

func exploreKey(limit int) string {
	return fmt.Sprintf(constants.ExploreCacheKey, limit)
}

// GetExplore 命中返回(ids, true)；未命中或未启用缓存返回false
func (m *VideoCacheManager) GetExplore(ctx context.Context, limit int) ([]int64, bool, error) {
	if m == nil || m.client == nil {
		return nil, false, nil
	}
	data, err := m.client.Get(ctx, exploreKey(limit)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get explore cache: %w", err)
	}
	ids := make([]int64, 0, limit)
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal explore cache: %w", err)
	}
	return ids, true, nil
}

func (m *VideoCacheManager) CacheExplore(ctx context.Context, limit int, ids []int64) error {
	if m == nil || m.client == nil {
		return nil
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to marshal explore list: %w", err)
	}
	return m.client.Set(ctx, exploreKey(limit), data, m.expire).Err()
}

// InvalidateExplore 上传/删除视频后清空所有limit的缓存
func (m *VideoCacheManager) InvalidateExplore(ctx context.Context) error {
	if m == nil || m.client == nil {
		return nil
	}
	iter := m.client.Scan(ctx, 0, constants.ExploreCachePattern, 100).Iterator()
	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan explore cache: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return m.client.Del(ctx, keys...).Err()
}
