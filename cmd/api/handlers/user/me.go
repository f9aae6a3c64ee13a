package handlers

import (
	"context"

	"TikLite.com/cmd/user/service"
	"TikLite.com/pkg/errno"
	"TikLite.com/pkg/pack"
	"TikLite.com/pkg/session"
	"github.com/cloudwego/hertz/pkg/app"
)

func Me(ctx context.Context, c *app.RequestContext) {
	userId := session.CurrentUserID(c)
	if userId <= 0 {
		pack.SendResponse(c, errno.AuthorizationErr, nil)
		return
	}
	user, err := service.NewGetUserInfoService(ctx).GetUserById(userId)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.SendResponse(c, errno.Success, user)
}

func UpdateMe(ctx context.Context, c *app.RequestContext) {
	var req UpdateParam
	if err := c.Bind(&req); err != nil {
		pack.SendResponse(c, errno.ParamErr, nil)
		return
	}
	user, err := service.NewUpdateUserService(ctx).UpdateUser(session.CurrentUserID(c), &service.UpdateUserRequest{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
	})
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.SendResponse(c, errno.Success, user)
}

func UpdateAvatar(ctx context.Context, c *app.RequestContext) {
	file, err := c.FormFile("file")
	if err != nil {
		pack.SendResponse(c, errno.ParamErr.WithMessage("avatar file is required"), nil)
		return
	}
	f, err := file.Open()
	if err != nil {
		pack.SendResponse(c, errno.UploadErr, nil)
		return
	}
	defer f.Close()
	user, err := service.NewUpdateAvatarService(ctx).UpdateAvatar(session.CurrentUserID(c), f, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.SendResponse(c, errno.Success, user)
}
