package session

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"TikLite.com/cmd/model"
	"TikLite.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/cloudwego/hertz/pkg/route"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bigId int64 = 1834567890123456789

type envelope struct {
	Code int64 `json:"code"`
	Data struct {
		Token  string `json:"token"`
		Viewer int64  `json:"viewer"`
		User   struct {
			UserId string `json:"user_id"`
		} `json:"user"`
	} `json:"data"`
}

func fakeLogin(_ context.Context, email, password string) (*model.User, error) {
	if email == "a@b.io" && password == "secret1" {
		return &model.User{UserId: bigId, UserName: "alice"}, nil
	}
	return nil, errno.AuthorizationFailedErr
}

func newEngine(t *testing.T) *route.Engine {
	m, err := New("test-secret", time.Hour, 24*time.Hour, fakeLogin)
	require.NoError(t, err)
	whoami := func(ctx context.Context, c *app.RequestContext) {
		c.JSON(consts.StatusOK, map[string]interface{}{
			"code": 0,
			"data": map[string]int64{"viewer": CurrentUserID(c)},
		})
	}
	e := route.NewEngine(config.NewOptions([]config.Option{}))
	e.POST("/login", m.LoginHandler)
	e.POST("/logout", m.LogoutHandler)
	e.GET("/private", m.RequireAuth(), whoami)
	e.GET("/public", m.OptionalAuth(), whoami)
	return e
}

func decode(t *testing.T, body []byte) envelope {
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

func login(t *testing.T, e *route.Engine, body string) (int, envelope) {
	w := ut.PerformRequest(e, consts.MethodPost, "/login",
		&ut.Body{Body: bytes.NewBufferString(body), Len: len(body)},
		ut.Header{Key: "Content-Type", Value: "application/json"})
	resp := w.Result()
	return resp.StatusCode(), decode(t, resp.Body())
}

func TestLoginAndAccess(t *testing.T) {
	e := newEngine(t)
	status, env := login(t, e, `{"email":"a@b.io","password":"secret1"}`)
	require.Equal(t, consts.StatusOK, status)
	require.NotEmpty(t, env.Data.Token)
	assert.Equal(t, "1834567890123456789", env.Data.User.UserId)

	w := ut.PerformRequest(e, consts.MethodGet, "/private", nil,
		ut.Header{Key: "Authorization", Value: "Bearer " + env.Data.Token})
	assert.Equal(t, consts.StatusOK, w.Result().StatusCode())
	assert.Equal(t, bigId, decode(t, w.Result().Body()).Data.Viewer)

	w = ut.PerformRequest(e, consts.MethodGet, "/public?token="+env.Data.Token, nil)
	assert.Equal(t, bigId, decode(t, w.Result().Body()).Data.Viewer)
}

func TestLoginWrongPassword(t *testing.T) {
	e := newEngine(t)
	status, env := login(t, e, `{"email":"a@b.io","password":"nope"}`)
	assert.Equal(t, consts.StatusUnauthorized, status)
	assert.Equal(t, int64(errno.AuthorizationFailedCode), env.Code)
}

func TestPrivateWithoutToken(t *testing.T) {
	e := newEngine(t)
	w := ut.PerformRequest(e, consts.MethodGet, "/private", nil)
	assert.Equal(t, consts.StatusUnauthorized, w.Result().StatusCode())
	assert.Equal(t, int64(errno.AuthorizationErrCode), decode(t, w.Result().Body()).Code)
}

func TestPublicAsGuest(t *testing.T) {
	e := newEngine(t)
	w := ut.PerformRequest(e, consts.MethodGet, "/public", nil,
		ut.Header{Key: "Authorization", Value: "Bearer garbage"})
	assert.Equal(t, consts.StatusOK, w.Result().StatusCode())
	assert.Zero(t, decode(t, w.Result().Body()).Data.Viewer)
}

func TestNewRequiresSecret(t *testing.T) {
	_, err := New("", time.Hour, time.Hour, fakeLogin)
	assert.Error(t, err)
}
