package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"regexp"
	"strings"
	"testing"

	"TikLite.com/cmd/user/dal/db"
	"TikLite.com/pkg/errno"
	"TikLite.com/pkg/mq"
	"TikLite.com/pkg/utils"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cloudwego/hertz/pkg/common/hlog"
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

func TestValidateRegister(t *testing.T) {
	ok := &CreateUserRequest{Email: "a@b.io", Password: "secret1", UserName: "alice"}
	require.NoError(t, validateRegister(ok))
	assert.Equal(t, "alice", ok.DisplayName)

	cases := []*CreateUserRequest{
		{Email: "not-an-email", Password: "secret1", UserName: "alice"},
		{Email: "a@b.io", Password: "123", UserName: "alice"},
		{Email: "a@b.io", Password: "secret1", UserName: "Al"},
		{Email: "a@b.io", Password: "secret1", UserName: "alice", DisplayName: strings.Repeat("x", 51)},
	}
	for _, c := range cases {
		assert.True(t, errno.Is(validateRegister(c), errno.ParamErr), "%+v", c)
	}
}

func TestCreateUserAlreadyExists(t *testing.T) {
	mock := setupMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `users` WHERE user_name = ? OR email = ?")).
		WithArgs("alice", "a@b.io").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	_, err := NewCreateUserService(context.Background()).CreateUser(&CreateUserRequest{
		Email: "A@b.io", Password: "secret1", UserName: "alice",
	})
	assert.True(t, errno.Is(err, errno.UserAlreadyExistErr))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginUser(t *testing.T) {
	hashed, err := utils.Crypt("secret1")
	require.NoError(t, err)

	mock := setupMock(t)
	rows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"user_id", "user_name", "email", "password"}).
			AddRow(7, "alice", "a@b.io", hashed)
	}
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE email = ?")).WillReturnRows(rows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE email = ?")).WillReturnRows(rows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE email = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	svc := NewLoginUserService(context.Background())
	user, err := svc.LoginUser("a@b.io", "secret1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.UserId)

	_, err = svc.LoginUser("a@b.io", "wrong")
	assert.True(t, errno.Is(err, errno.AuthorizationFailedErr))

	_, err = svc.LoginUser("ghost@b.io", "secret1")
	assert.True(t, errno.Is(err, errno.AuthorizationFailedErr))
}

func TestUpdateUserValidation(t *testing.T) {
	empty := "  "
	_, err := NewUpdateUserService(context.Background()).UpdateUser(1, &UpdateUserRequest{DisplayName: &empty})
	assert.True(t, errno.Is(err, errno.ParamErr))

	_, err = NewUpdateUserService(context.Background()).UpdateUser(0, &UpdateUserRequest{})
	assert.True(t, errno.Is(err, errno.AuthorizationErr))
}

func TestUpdateAvatarRejectsFormat(t *testing.T) {
	Init(nil, fakeAvatarStore{})
	defer func() { avatars = nil }()
	_, err := NewUpdateAvatarService(context.Background()).UpdateAvatar(1, strings.NewReader("gif"), 3, "image/gif")
	assert.True(t, errno.Is(err, errno.ParamErr))
}

type fakeAvatarStore struct{}

func (fakeAvatarStore) EnsureBucket(context.Context) error { return nil }
func (fakeAvatarStore) PutObject(_ context.Context, name string, _ io.Reader, _ int64, _ string) (string, error) {
	return "http://cdn/videos/" + name, nil
}
func (fakeAvatarStore) RemoveObject(context.Context, string) error { return nil }
func (fakeAvatarStore) ObjectNameFromURL(string) string            { return "" }

type failingProducer struct{}

func (failingProducer) PublishRelationEvent(context.Context, *mq.RelationEvent) error { return nil }
func (failingProducer) PublishVideoEvent(context.Context, *mq.VideoEvent) error       { return nil }
func (failingProducer) PublishUserEvent(context.Context, *mq.UserEvent) error {
	return errors.New("channel closed")
}

func TestPublishUserFailureLogged(t *testing.T) {
	var buf bytes.Buffer
	hlog.SetOutput(&buf)
	t.Cleanup(func() { hlog.SetOutput(os.Stderr) })
	Init(failingProducer{}, nil)
	t.Cleanup(func() { producer = nil })

	publishUser(context.Background(), &mq.UserEvent{Type: mq.EventCreated, UserID: 3})
	assert.Contains(t, buf.String(), "publish user event created of 3 failed: channel closed")
}
