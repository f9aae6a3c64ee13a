package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"TikLite.com/cmd/model"
	"TikLite.com/cmd/user/dal/db"
	"TikLite.com/pkg/constants"
	"TikLite.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

var avatarSuffix = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type UpdateAvatarService struct {
	ctx context.Context
}

func NewUpdateAvatarService(ctx context.Context) *UpdateAvatarService {
	return &UpdateAvatarService{ctx: ctx}
}

// UpdateAvatar 先上传新头像再删除旧头像
func (v *UpdateAvatarService) UpdateAvatar(userId int64, data io.Reader, size int64, contentType string) (*model.User, error) {
	if userId <= 0 {
		return nil, errno.AuthorizationErr
	}
	if avatars == nil {
		return nil, errno.UploadErr.WithMessage("object storage is not configured")
	}
	suffix, ok := avatarSuffix[contentType]
	if !ok {
		return nil, errno.ParamErr.WithMessage(fmt.Sprintf("unsupported image format: %s", contentType))
	}
	if size <= 0 || size > constants.MaxAvatarSize {
		return nil, errno.ParamErr.WithMessage("avatar must be smaller than 5MB")
	}

	info := NewGetUserInfoService(v.ctx)
	user, err := info.GetUserById(userId)
	if err != nil {
		return nil, err
	}
	if err := avatars.EnsureBucket(v.ctx); err != nil {
		hlog.CtxErrorf(v.ctx, "ensure bucket failed: %v", err)
		return nil, errno.UploadErr
	}
	objectName := fmt.Sprintf("%s%d-%d%s", constants.AvatarObjectPrefix, userId, time.Now().UnixMilli(), suffix)
	url, err := avatars.PutObject(v.ctx, objectName, data, size, contentType)
	if err != nil {
		hlog.CtxErrorf(v.ctx, "upload avatar failed: %v", err)
		return nil, errno.UploadErr
	}
	if err := db.UpdateProfile(v.ctx, userId, map[string]interface{}{"avatar_url": url}); err != nil {
		if rmErr := avatars.RemoveObject(v.ctx, objectName); rmErr != nil {
			hlog.CtxWarnf(v.ctx, "remove orphan avatar %s failed: %v", objectName, rmErr)
		}
		return nil, info.translate(err)
	}
	if old := avatars.ObjectNameFromURL(user.AvatarUrl); old != "" {
		if err := avatars.RemoveObject(v.ctx, old); err != nil {
			hlog.CtxWarnf(v.ctx, "remove old avatar %s failed: %v", old, err)
		}
	}
	user.AvatarUrl = url
	return user, nil
}
