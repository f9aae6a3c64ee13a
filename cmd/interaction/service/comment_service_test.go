package service

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"TikLite.com/cmd/interaction/dal/db"
	"TikLite.com/pkg/errno"
	"github.com/DATA-DOG/go-sqlmock"
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
	db.Init(gdb)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return mock
}

func TestCreateCommentValidation(t *testing.T) {
	svc := NewCommentService(context.Background())

	_, err := svc.CreateComment(0, 1, "hi")
	assert.True(t, errno.Is(err, errno.AuthorizationErr))

	_, err = svc.CreateComment(1, 1, "   ")
	assert.True(t, errno.Is(err, errno.ParamErr))

	_, err = svc.CreateComment(1, 1, strings.Repeat("评", 501))
	assert.True(t, errno.Is(err, errno.ParamErr))
}

func TestCreateCommentOnMissingVideo(t *testing.T) {
	mock := setupMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `comments`")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `videos` SET `comment_count`")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := NewCommentService(context.Background()).CreateComment(1, 404, "first!")
	assert.True(t, errno.Is(err, errno.NotFoundErr))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCommentByOtherUser(t *testing.T) {
	mock := setupMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `comments` WHERE comment_id = ? AND user_id = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"comment_id"}))
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `comments` WHERE comment_id = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"comment_id", "user_id", "video_id"}).AddRow(7, 10, 20))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE `users`.`user_id` = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(10))

	err := NewCommentService(context.Background()).DeleteComment(11, 7)
	assert.True(t, errno.Is(err, errno.AuthorizationFailedErr))
	assert.NoError(t, mock.ExpectationsWereMet())
}
