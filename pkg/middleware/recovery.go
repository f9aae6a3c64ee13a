package middleware

import (
	"context"

	"TikLite.com/pkg/errno"
	"TikLite.com/pkg/pack"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/middlewares/server/recovery"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// Recovery panic只记日志，客户端只拿到通用错误
func Recovery() app.HandlerFunc {
	return recovery.Recovery(recovery.WithRecoveryHandler(recoveryHandler))
}

func recoveryHandler(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte) {
	hlog.SystemLogger().CtxErrorf(ctx, "[Recovery] err=%v\nstack=%s", err, stack)
	pack.SendResponse(c, errno.ServiceErr.WithMessage("Internal service error"), nil)
	c.Abort()
}
