package handlers

import (
	"context"

	"TikLite.com/cmd/model"
	"TikLite.com/cmd/video/service"
	"TikLite.com/pkg/errno"
	"TikLite.com/pkg/pack"
	"TikLite.com/pkg/session"
	"github.com/cloudwego/hertz/pkg/app"
)

// Like 不带like参数时切换
func Like(ctx context.Context, c *app.RequestContext) {
	id, err := videoId(c)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	var req LikeParam
	if err := c.Bind(&req); err != nil {
		pack.SendResponse(c, errno.ParamErr, nil)
		return
	}
	s := service.NewLikeService(ctx)
	var state *model.RelationState
	if req.Like != nil {
		state, err = s.SetVideoLike(session.CurrentUserID(c), id, *req.Like)
	} else {
		state, err = s.LikeVideo(session.CurrentUserID(c), id)
	}
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.SendResponse(c, errno.Success, state)
}

func LikeState(ctx context.Context, c *app.RequestContext) {
	id, err := videoId(c)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	state, err := service.NewLikeService(ctx).VideoLikeState(session.CurrentUserID(c), id)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.SendResponse(c, errno.Success, state)
}
