package handlers

import (
	"context"

	"TikLite.com/cmd/video/service"
	"TikLite.com/pkg/errno"
	"TikLite.com/pkg/pack"
	"TikLite.com/pkg/session"
	"github.com/cloudwego/hertz/pkg/app"
)

func Search(ctx context.Context, c *app.RequestContext) {
	var req SearchParam
	if err := c.Bind(&req); err != nil {
		pack.SendResponse(c, errno.ParamErr, nil)
		return
	}
	res, err := service.NewSearchService(ctx).Search(session.CurrentUserID(c), req.Q)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.SendResponse(c, errno.Success, res)
}
