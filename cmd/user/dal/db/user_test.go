package db

import (
	"context"
	"regexp"
	"testing"

	"TikLite.com/cmd/model"
	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMock(t *testing.T) sqlmock.Sqlmock {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	gdb, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}),
		&gorm.Config{SkipDefaultTransaction: true, TranslateError: true})
	require.NoError(t, err)
	Init(gdb)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return mock
}

func TestCreateUserDuplicate(t *testing.T) {
	mock := setupMock(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `users`")).
		WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry 'alice'"})

	err := CreateUser(context.Background(), &model.User{UserId: 1, UserName: "alice", Email: "a@x.io"})
	assert.True(t, errors.Is(err, ErrUserExists))
}

func TestGetUserByNameNotFound(t *testing.T) {
	mock := setupMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE user_name = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	_, err := GetUserByName(context.Background(), "ghost")
	assert.True(t, errors.Is(err, ErrUserNotFound))
}

func TestGetUsersByIdsKeepsOrder(t *testing.T) {
	mock := setupMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE user_id IN (?,?,?)")).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "user_name"}).
			AddRow(1, "a").AddRow(3, "c"))

	users, err := GetUsersByIds(context.Background(), []int64{3, 2, 1})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, int64(3), users[0].UserId)
	assert.Equal(t, int64(1), users[1].UserId)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%\_a\\b`, escapeLike(`100%_a\b`))
}
