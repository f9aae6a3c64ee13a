package handlers

import (
	"context"

	"TikLite.com/cmd/user/service"
	"TikLite.com/pkg/errno"
	"TikLite.com/pkg/pack"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

func Register(ctx context.Context, c *app.RequestContext) {
	var req RegisterParam
	if err := c.Bind(&req); err != nil {
		hlog.CtxInfof(ctx, "bind register param failed: %v", err)
		pack.SendResponse(c, errno.ParamErr, nil)
		return
	}
	user, err := service.NewCreateUserService(ctx).CreateUser(&service.CreateUserRequest{
		Email:       req.Email,
		Password:    req.Password,
		UserName:    req.UserName,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	if sessions == nil {
		pack.SendResponse(c, errno.Success, user)
		return
	}
	token, err := sessions.IssueToken(user)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.SendResponse(c, errno.Success, token)
}
