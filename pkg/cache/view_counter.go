package cache

import (
	"context"
	"fmt"
	"strconv"

	"TikLite.com/pkg/constants"
	"github.com/redis/go-redis/v9"
)

// ViewCounter 播放量先累加在redis，由后台任务批量刷回数据库
type ViewCounter struct {
	client *redis.Client
}

func NewViewCounter(client *redis.Client) *ViewCounter {
	return &ViewCounter{client: client}
}

func viewKey(videoId int64) string {
	return fmt.Sprintf(constants.ViewCountKey, videoId)
}

// Incr 返回尚未刷回数据库的增量
func (v *ViewCounter) Incr(ctx context.Context, videoId int64) (int64, error) {
	var incr *redis.IntCmd
	_, err := v.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, viewKey(videoId))
		pipe.SAdd(ctx, constants.ViewDirtySetKey, videoId)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to incr view count: %w", err)
	}
	return incr.Val(), nil
}

// Pending 未刷回的增量，不存在时为0
func (v *ViewCounter) Pending(ctx context.Context, videoId int64) (int64, error) {
	n, err := v.client.Get(ctx, viewKey(videoId)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}

// Drain 取走所有脏视频的增量；先移出脏集合再GETDEL，期间新增的播放会重新标脏
func (v *ViewCounter) Drain(ctx context.Context) (map[int64]int64, error) {
	members, err := v.client.SMembers(ctx, constants.ViewDirtySetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list dirty videos: %w", err)
	}
	deltas := make(map[int64]int64, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			v.client.SRem(ctx, constants.ViewDirtySetKey, m)
			continue
		}
		if err := v.client.SRem(ctx, constants.ViewDirtySetKey, m).Err(); err != nil {
			return deltas, fmt.Errorf("failed to clear dirty mark: %w", err)
		}
		n, err := v.client.GetDel(ctx, viewKey(id)).Int64()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return deltas, fmt.Errorf("failed to take view delta of %d: %w", id, err)
		}
		if n > 0 {
			deltas[id] = n
		}
	}
	return deltas, nil
}

// Restore 刷库失败时把增量放回去
func (v *ViewCounter) Restore(ctx context.Context, videoId, delta int64) error {
	_, err := v.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.IncrBy(ctx, viewKey(videoId), delta)
		pipe.SAdd(ctx, constants.ViewDirtySetKey, videoId)
		return nil
	})
	return err
}
