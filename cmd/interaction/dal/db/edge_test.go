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

func q(s string) string { return regexp.QuoteMeta(s) }

func TestInsertEdgeIncrementsCounter(t *testing.T) {
	mock := setupMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(q("INSERT INTO `video_likes`")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q("UPDATE `videos` SET `like_count`=like_count + 1")).WithArgs(int64(20)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(q("SELECT `like_count` FROM `videos`")).WithArgs(int64(20)).
		WillReturnRows(sqlmock.NewRows([]string{"like_count"}).AddRow(5))
	mock.ExpectCommit()

	count, err := InsertEdge(context.Background(), model.KindVideoLike, 10, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertEdgeDuplicateKey(t *testing.T) {
	mock := setupMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(q("INSERT INTO `video_likes`")).
		WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry '10-20'"})
	mock.ExpectRollback()

	_, err := InsertEdge(context.Background(), model.KindVideoLike, 10, 20)
	assert.True(t, errors.Is(err, ErrEdgeExists))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertEdgeMissingObject(t *testing.T) {
	mock := setupMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(q("INSERT INTO `comment_likes`")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q("UPDATE `comments` SET `like_count`=like_count + 1")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := InsertEdge(context.Background(), model.KindCommentLike, 10, 99)
	assert.True(t, errors.Is(err, ErrObjectNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertFollowUpdatesBothCounters(t *testing.T) {
	mock := setupMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(q("INSERT INTO `follows`")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q("UPDATE `users` SET `follower_count`=follower_count + 1")).WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q("UPDATE `users` SET `following_count`=following_count + 1")).WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(q("SELECT `follower_count` FROM `users`")).WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"follower_count"}).AddRow(1))
	mock.ExpectCommit()

	count, err := InsertEdge(context.Background(), model.KindFollow, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteEdgeFloorsCounter(t *testing.T) {
	mock := setupMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(q("DELETE FROM `video_likes` WHERE user_id = ? AND video_id = ?")).WithArgs(int64(10), int64(20)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q("UPDATE `videos` SET `like_count`=GREATEST(like_count - 1, 0)")).WithArgs(int64(20)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(q("SELECT `like_count` FROM `videos`")).
		WillReturnRows(sqlmock.NewRows([]string{"like_count"}).AddRow(0))
	mock.ExpectCommit()

	removed, count, err := DeleteEdge(context.Background(), model.KindVideoLike, 10, 20)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, int64(0), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAbsentEdgeIsNoop(t *testing.T) {
	mock := setupMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(q("DELETE FROM `video_likes`")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(q("SELECT `like_count` FROM `videos`")).
		WillReturnRows(sqlmock.NewRows([]string{"like_count"}).AddRow(3))
	mock.ExpectCommit()

	removed, count, err := DeleteEdge(context.Background(), model.KindVideoLike, 10, 20)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEdgeExists(t *testing.T) {
	mock := setupMock(t)
	mock.ExpectQuery(q("SELECT count(*) FROM `follows` WHERE follower_id = ? AND following_id = ?")).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	ok, err := EdgeExists(context.Background(), model.KindFollow, 1, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetEdgeCountMissingObject(t *testing.T) {
	mock := setupMock(t)
	mock.ExpectQuery(q("SELECT `like_count` FROM `comments`")).
		WillReturnRows(sqlmock.NewRows([]string{"like_count"}))

	_, err := GetEdgeCount(context.Background(), model.KindCommentLike, 7)
	assert.True(t, errors.Is(err, ErrObjectNotFound))
}

func TestUnknownKind(t *testing.T) {
	setupMock(t)
	_, err := EdgeExists(context.Background(), model.RelationKind("block"), 1, 2)
	assert.True(t, errors.Is(err, ErrUnknownKind))
}
