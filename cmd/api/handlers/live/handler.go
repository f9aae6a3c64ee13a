package live

import (
	"context"

	"TikLite.com/pkg/errno"
	"TikLite.com/pkg/pack"
	"TikLite.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/hertz-contrib/websocket"
)

var upgrader = websocket.HertzUpgrader{
	CheckOrigin: func(ctx *app.RequestContext) bool {
		return true // 允许所有来源连接
	},
}

// Handler GET /ws/videos/:id
func (h *Hub) Handler(ctx context.Context, c *app.RequestContext) {
	videoId, err := utils.ConvertStringToInt64(c.Param("id"))
	if err != nil || videoId <= 0 {
		pack.SendResponse(c, errno.ParamErr.WithMessage("invalid video id"), nil)
		return
	}
	err = upgrader.Upgrade(c, func(conn *websocket.Conn) {
		cl, leave := h.join(videoId)
		defer leave()

		// 只读不处理，用于发现客户端断开
		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case msg := <-cl.send:
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			case <-closed:
				return
			}
		}
	})
	if err != nil {
		hlog.CtxWarnf(ctx, "websocket upgrade failed: %v", err)
	}
}
