package service

import (
	"context"
	"strings"

	"TikLite.com/cmd/model"
	"TikLite.com/cmd/user/dal/db"
	"TikLite.com/pkg/constants"
	"TikLite.com/pkg/errno"
	"TikLite.com/pkg/mq"
	"TikLite.com/pkg/utils"
)

type UpdateUserRequest struct {
	DisplayName *string
	Bio         *string
}

type UpdateUserService struct {
	ctx context.Context
}

func NewUpdateUserService(ctx context.Context) *UpdateUserService {
	return &UpdateUserService{ctx: ctx}
}

func (v *UpdateUserService) UpdateUser(userId int64, req *UpdateUserRequest) (*model.User, error) {
	if userId <= 0 {
		return nil, errno.AuthorizationErr
	}
	fields := make(map[string]interface{})
	if req.DisplayName != nil {
		name := strings.TrimSpace(*req.DisplayName)
		if name == "" || utils.RuneLen(name) > constants.MaxDisplayNameLen {
			return nil, errno.ParamErr.WithMessage("display name must be 1-50 characters")
		}
		fields["display_name"] = name
	}
	if req.Bio != nil {
		bio := strings.TrimSpace(*req.Bio)
		if utils.RuneLen(bio) > constants.MaxBioLength {
			return nil, errno.ParamErr.WithMessage("bio is too long")
		}
		fields["bio"] = bio
	}
	info := NewGetUserInfoService(v.ctx)
	if err := db.UpdateProfile(v.ctx, userId, fields); err != nil {
		return nil, info.translate(err)
	}
	user, err := info.GetUserById(userId)
	if err != nil {
		return nil, err
	}
	if _, ok := fields["display_name"]; ok {
		publishUser(v.ctx, &mq.UserEvent{
			Type:        mq.EventUpdated,
			UserID:      user.UserId,
			UserName:    user.UserName,
			DisplayName: user.DisplayName,
		})
	}
	return user, nil
}
