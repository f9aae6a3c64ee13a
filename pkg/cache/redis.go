package cache

import (
	"context"
	"time"

	"TikLite.com/config"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/redis/go-redis/v9"
)

var Client *redis.Client

// Init 未配置redis.addr时返回nil，调用方据此关闭缓存相关功能
func Init() *redis.Client {
	if config.ConfigInfo.Redis.Addr == "" {
		return nil
	}
	Client = redis.NewClient(&redis.Options{
		Addr:         config.ConfigInfo.Redis.Addr,
		Password:     config.ConfigInfo.Redis.Password,
		DB:           config.ConfigInfo.Redis.DB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := Client.Ping(ctx).Result(); err != nil {
		hlog.Warnf("redis ping failed, continuing without cache: %v", err)
		Client.Close()
		Client = nil
	}
	return Client
}
