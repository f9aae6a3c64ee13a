package service

import (
	"context"
	"strings"

	"TikLite.com/cmd/model"
	"TikLite.com/cmd/user/dal/db"
	"TikLite.com/pkg/errno"
	"TikLite.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

type LoginUserService struct {
	ctx context.Context
}

func NewLoginUserService(ctx context.Context) *LoginUserService {
	return &LoginUserService{ctx: ctx}
}

// LoginUser 邮箱+密码校验，失败统一返回AuthorizationFailedErr
func (v *LoginUserService) LoginUser(email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, errno.ParamErr.WithMessage("email and password are required")
	}
	user, err := db.GetUserByEmail(v.ctx, email)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return nil, errno.AuthorizationFailedErr.WithMessage("invalid email or password")
		}
		hlog.CtxErrorf(v.ctx, "dao.GetUserByEmail failed: %+v", err)
		return nil, errno.ServiceErr.WithMessage("Internal service error")
	}
	if !utils.VerifyPassword(password, user.Password) {
		return nil, errno.AuthorizationFailedErr.WithMessage("invalid email or password")
	}
	return user, nil
}
