package handlers

import (
	"context"

	"TikLite.com/cmd/relation/service"
	"TikLite.com/pkg/errno"
	"TikLite.com/pkg/pack"
	"TikLite.com/pkg/session"
	"github.com/cloudwego/hertz/pkg/app"
)

func list(which string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		var req ListParam
		if err := c.Bind(&req); err != nil {
			pack.SendResponse(c, errno.ParamErr, nil)
			return
		}
		users, err := service.NewFollowListService(ctx).List(session.CurrentUserID(c), c.Param("user"), which, req.Page, req.Size)
		if err != nil {
			pack.SendResponse(c, err, nil)
			return
		}
		pack.SendResponse(c, errno.Success, users)
	}
}

var (
	Followers = list(service.ListFollowers)
	Following = list(service.ListFollowing)
	Friends   = list(service.ListFriends)
)
