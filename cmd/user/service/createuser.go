package service

import (
	"context"
	"net/mail"
	"strings"

	"TikLite.com/cmd/model"
	"TikLite.com/cmd/user/dal/db"
	"TikLite.com/pkg/constants"
	"TikLite.com/pkg/errno"
	"TikLite.com/pkg/mq"
	"TikLite.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

type CreateUserRequest struct {
	Email       string
	Password    string
	UserName    string
	DisplayName string
}

type CreateUserService struct {
	ctx context.Context
}

func NewCreateUserService(ctx context.Context) *CreateUserService {
	return &CreateUserService{ctx: ctx}
}

func (v *CreateUserService) CreateUser(req *CreateUserRequest) (*model.User, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.UserName = strings.TrimSpace(req.UserName)
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if err := validateRegister(req); err != nil {
		return nil, err
	}

	exists, err := db.CheckUserExists(v.ctx, req.UserName, req.Email)
	if err != nil {
		hlog.CtxErrorf(v.ctx, "check user exists failed: %+v", err)
		return nil, errno.ServiceErr.WithMessage("Internal service error")
	}
	if exists {
		return nil, errno.UserAlreadyExistErr
	}

	passWord, err := utils.Crypt(req.Password)
	if err != nil {
		hlog.CtxErrorf(v.ctx, "password fail to crypt: %v", err)
		return nil, errno.ServiceErr.WithMessage("Internal service error")
	}
	user := &model.User{
		UserId:      utils.GenerateID(),
		UserName:    req.UserName,
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Password:    passWord,
	}
	if err = db.CreateUser(v.ctx, user); err != nil {
		if errors.Is(err, db.ErrUserExists) {
			return nil, errno.UserAlreadyExistErr
		}
		hlog.CtxErrorf(v.ctx, "dao.CreateUser failed: %+v", err)
		return nil, errno.ServiceErr.WithMessage("Internal service error")
	}

	publishUser(v.ctx, &mq.UserEvent{
		Type:        mq.EventCreated,
		UserID:      user.UserId,
		UserName:    user.UserName,
		DisplayName: user.DisplayName,
	})
	return user, nil
}

func validateRegister(req *CreateUserRequest) error {
	if _, err := mail.ParseAddress(req.Email); err != nil || req.Email == "" {
		return errno.ParamErr.WithMessage("invalid email address")
	}
	if len(req.Password) < constants.MinPasswordLength {
		return errno.ParamErr.WithMessage("password must be at least 6 characters")
	}
	if !utils.ValidHandle(req.UserName) {
		return errno.ParamErr.WithMessage("username must be 3-30 characters of a-z, 0-9, _ or .")
	}
	if req.DisplayName == "" {
		req.DisplayName = req.UserName
	}
	if utils.RuneLen(req.DisplayName) > constants.MaxDisplayNameLen {
		return errno.ParamErr.WithMessage("display name is too long")
	}
	return nil
}
