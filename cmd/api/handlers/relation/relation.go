package handlers

import (
	"context"

	"TikLite.com/cmd/model"
	"TikLite.com/cmd/relation/service"
	"TikLite.com/pkg/errno"
	"TikLite.com/pkg/pack"
	"TikLite.com/pkg/session"
	"github.com/cloudwego/hertz/pkg/app"
)

// Follow 关注/取关
func Follow(ctx context.Context, c *app.RequestContext) {
	target, err := targetId(c)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	var req FollowParam
	if err := c.Bind(&req); err != nil {
		pack.SendResponse(c, errno.ParamErr, nil)
		return
	}
	s := service.NewRelationService(ctx)
	var state *model.RelationState
	if req.Follow != nil {
		state, err = s.SetFollow(session.CurrentUserID(c), target, *req.Follow)
	} else {
		state, err = s.Follow(session.CurrentUserID(c), target)
	}
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.SendResponse(c, errno.Success, state)
}

func FollowState(ctx context.Context, c *app.RequestContext) {
	target, err := targetId(c)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	state, err := service.NewRelationService(ctx).FollowState(session.CurrentUserID(c), target)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.SendResponse(c, errno.Success, state)
}
