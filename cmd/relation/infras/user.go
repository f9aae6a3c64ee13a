package infras

import (
	"context"

	"TikLite.com/cmd/model"
	userdb "TikLite.com/cmd/user/dal/db"
)

// UserFetcher 批量获取用户资料
type UserFetcher interface {
	GetUsersByIds(ctx context.Context, ids []int64) ([]*model.User, error)
	GetUserByName(ctx context.Context, userName string) (*model.User, error)
}

type userDal struct{}

func (userDal) GetUsersByIds(ctx context.Context, ids []int64) ([]*model.User, error) {
	return userdb.GetUsersByIds(ctx, ids)
}

func (userDal) GetUserByName(ctx context.Context, userName string) (*model.User, error) {
	return userdb.GetUserByName(ctx, userName)
}

var UserClient UserFetcher = userDal{}
