package service

import (
	"context"

	relationdb "TikLite.com/cmd/interaction/dal/db"
	"TikLite.com/cmd/model"
	"TikLite.com/cmd/user/dal/db"
	"TikLite.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

type GetUserInfoService struct {
	ctx context.Context
}

func NewGetUserInfoService(ctx context.Context) *GetUserInfoService {
	return &GetUserInfoService{ctx: ctx}
}

func (v *GetUserInfoService) GetUserById(userId int64) (*model.User, error) {
	if userId <= 0 {
		return nil, errno.AuthorizationErr
	}
	user, err := db.GetUserById(v.ctx, userId)
	return user, v.translate(err)
}

// GetProfile viewerId为0表示匿名访问
func (v *GetUserInfoService) GetProfile(viewerId int64, userName string) (*model.Profile, error) {
	user, err := db.GetUserByName(v.ctx, userName)
	if err != nil {
		return nil, v.translate(err)
	}
	profile := &model.Profile{User: user, IsSelf: viewerId > 0 && viewerId == user.UserId}
	if viewerId > 0 && !profile.IsSelf {
		following, err := relationdb.EdgeExists(v.ctx, model.KindFollow, viewerId, user.UserId)
		if err != nil {
			hlog.CtxWarnf(v.ctx, "load follow state failed: %v", err)
		}
		profile.IsFollowing = following
	}
	return profile, nil
}

func (v *GetUserInfoService) translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, db.ErrUserNotFound) {
		return errno.NotFoundErr.WithMessage("user not found")
	}
	hlog.CtxErrorf(v.ctx, "query user failed: %+v", err)
	return errno.ServiceErr.WithMessage("Internal service error")
}
