package service

import (
	"context"
	"regexp"
	"testing"

	"TikLite.com/cmd/model"
	"TikLite.com/cmd/relation/dal/db"
	userdb "TikLite.com/cmd/user/dal/db"
	"TikLite.com/pkg/errno"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type fakeUsers struct {
	byName map[string]*model.User
	byId   map[int64]*model.User
}

func (f fakeUsers) GetUsersByIds(_ context.Context, ids []int64) ([]*model.User, error) {
	res := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := f.byId[id]; ok {
			res = append(res, u)
		}
	}
	return res, nil
}

func (f fakeUsers) GetUserByName(_ context.Context, name string) (*model.User, error) {
	if u, ok := f.byName[name]; ok {
		return u, nil
	}
	return nil, userdb.ErrUserNotFound
}

func TestFollowerListHydrated(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()
	gdb, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)
	db.Init(gdb)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT `follower_id` FROM `follows` WHERE following_id = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"follower_id"}).AddRow(2).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT `following_id` FROM `follows` WHERE follower_id = ? AND following_id IN (?,?)")).
		WillReturnRows(sqlmock.NewRows([]string{"following_id"}).AddRow(3))

	users := fakeUsers{
		byName: map[string]*model.User{"bob": {UserId: 1, UserName: "bob"}},
		byId: map[int64]*model.User{
			2: {UserId: 2, UserName: "carol"},
			3: {UserId: 3, UserName: "dave"},
		},
	}
	svc := &FollowListService{ctx: context.Background(), users: users}
	list, err := svc.List(2, "bob", ListFollowers, 1, 20)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].IsSelf)
	assert.False(t, list[0].IsFollowing)
	assert.True(t, list[1].IsFollowing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowListUnknownUser(t *testing.T) {
	svc := &FollowListService{ctx: context.Background(), users: fakeUsers{}}
	_, err := svc.List(0, "ghost", ListFollowing, 1, 20)
	assert.True(t, errno.Is(err, errno.NotFoundErr))
}
