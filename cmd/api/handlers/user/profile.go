package handlers

import (
	"context"

	"TikLite.com/cmd/user/service"
	videoservice "TikLite.com/cmd/video/service"
	"TikLite.com/pkg/errno"
	"TikLite.com/pkg/pack"
	"TikLite.com/pkg/session"
	"github.com/cloudwego/hertz/pkg/app"
)

func GetProfile(ctx context.Context, c *app.RequestContext) {
	profile, err := service.NewGetUserInfoService(ctx).GetProfile(session.CurrentUserID(c), c.Param("user"))
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.SendResponse(c, errno.Success, profile)
}

func UserVideos(ctx context.Context, c *app.RequestContext) {
	var req PageParam
	if err := c.Bind(&req); err != nil {
		pack.SendResponse(c, errno.ParamErr, nil)
		return
	}
	videos, err := videoservice.NewFeedService(ctx).UserVideos(session.CurrentUserID(c), c.Param("user"), req.Page, req.Size)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.SendResponse(c, errno.Success, videos)
}
