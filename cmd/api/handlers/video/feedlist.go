package handlers

import (
	"context"

	"TikLite.com/cmd/video/service"
	"TikLite.com/pkg/errno"
	"TikLite.com/pkg/pack"
	"TikLite.com/pkg/session"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

func Feed(ctx context.Context, c *app.RequestContext) {
	var req FeedParam
	if err := c.Bind(&req); err != nil {
		hlog.CtxInfof(ctx, "bind feed param failed: %v", err)
		pack.SendResponse(c, errno.ParamErr, nil)
		return
	}
	videos, err := service.NewFeedService(ctx).Feed(session.CurrentUserID(c), req.Before, req.Limit)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.SendResponse(c, errno.Success, videos)
}

func Explore(ctx context.Context, c *app.RequestContext) {
	var req ExploreParam
	if err := c.Bind(&req); err != nil {
		pack.SendResponse(c, errno.ParamErr, nil)
		return
	}
	videos, err := service.NewFeedService(ctx).Explore(session.CurrentUserID(c), req.Limit)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.SendResponse(c, errno.Success, videos)
}

func Detail(ctx context.Context, c *app.RequestContext) {
	id, err := videoId(c)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	video, err := service.NewFeedService(ctx).Detail(session.CurrentUserID(c), id)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.SendResponse(c, errno.Success, video)
}

// Visit 记录一次播放
func Visit(ctx context.Context, c *app.RequestContext) {
	id, err := videoId(c)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	if err := service.NewViewService(ctx).RecordView(id); err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.SendResponse(c, errno.Success, nil)
}
