package middleware

import (
	"context"

	"TikLite.com/pkg/errno"
	"TikLite.com/pkg/pack"
	sentinel "github.com/alibaba/sentinel-golang/api"
	"github.com/alibaba/sentinel-golang/core/base"
	"github.com/alibaba/sentinel-golang/core/flow"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// WriteResource 所有写接口共用的限流资源
const WriteResource = "tiklite_write"

// InitRateLimit 初始化sentinel并加载QPS规则，qps<=0时不加载规则
func InitRateLimit(resource string, qps float64) error {
	if err := sentinel.InitDefault(); err != nil {
		return err
	}
	if qps <= 0 {
		return nil
	}
	_, err := flow.LoadRules([]*flow.Rule{
		{
			Resource:               resource,
			TokenCalculateStrategy: flow.Direct,
			ControlBehavior:        flow.Reject,
			Threshold:              qps,
			StatIntervalInMs:       1000,
		},
	})
	return err
}

// RateLimit 触发限流时返回RateLimitErr
func RateLimit(resource string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		entry, blocked := sentinel.Entry(resource, sentinel.WithTrafficType(base.Inbound))
		if blocked != nil {
			hlog.CtxWarnf(ctx, "request %s blocked by %s", c.Path(), blocked.BlockMsg())
			pack.SendResponse(c, errno.RateLimitErr, nil)
			c.Abort()
			return
		}
		defer entry.Exit()
		c.Next(ctx)
	}
}
