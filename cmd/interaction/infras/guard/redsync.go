package guard

import (
	"context"
	"time"

	"TikLite.com/pkg/constants"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	goredislib "github.com/redis/go-redis/v9"
)

// RedisGuard 基于redsync的分布式互斥锁
type RedisGuard struct {
	rs     *redsync.Redsync
	expiry time.Duration
}

func NewRedisGuard(client *goredislib.Client) *RedisGuard {
	pool := goredis.NewPool(client)
	return &RedisGuard{
		rs:     redsync.New(pool),
		expiry: constants.ToggleLockExpiry,
	}
}

func (g *RedisGuard) Lock(ctx context.Context, key string) (func(), error) {
	mutex := g.rs.NewMutex(key,
		redsync.WithExpiry(g.expiry),
		redsync.WithTries(20),
		redsync.WithRetryDelay(25*time.Millisecond),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}
	return func() {
		if ok, err := mutex.UnlockContext(context.Background()); !ok || err != nil {
			hlog.Warnf("release lock %s failed: ok=%v err=%v", key, ok, err)
		}
	}, nil
}
