package router

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"TikLite.com/cmd/api/handlers/live"
	"TikLite.com/cmd/model"
	"TikLite.com/pkg/errno"
	"TikLite.com/pkg/session"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *server.Hertz {
	s, err := session.New("router-secret", time.Hour, time.Hour,
		func(context.Context, string, string) (*model.User, error) {
			return nil, errno.AuthorizationFailedErr
		})
	require.NoError(t, err)
	h := server.New(server.WithHostPorts("127.0.0.1:0"))
	Register(h, s, live.NewHub())
	return h
}

func code(t *testing.T, body []byte) int64 {
	var env struct {
		Code int64 `json:"code"`
	}
	require.NoError(t, json.Unmarshal(body, &env))
	return env.Code
}

func TestProtectedRoutesRequireLogin(t *testing.T) {
	h := newServer(t)
	for _, r := range []struct{ method, path string }{
		{consts.MethodGet, "/api/auth/me"},
		{consts.MethodPut, "/api/users/me"},
		{consts.MethodPost, "/api/videos/1/like"},
		{consts.MethodPost, "/api/users/7/follow"},
		{consts.MethodDelete, "/api/comments/3"},
		{consts.MethodPost, "/api/storage/init"},
	} {
		w := ut.PerformRequest(h.Engine, r.method, r.path, nil)
		assert.Equal(t, consts.StatusUnauthorized, w.Result().StatusCode(), r.path)
		assert.Equal(t, int64(errno.AuthorizationErrCode), code(t, w.Result().Body()), r.path)
	}
}

func TestBlankSearchAsGuest(t *testing.T) {
	h := newServer(t)
	w := ut.PerformRequest(h.Engine, consts.MethodGet, "/api/search?q=", nil)
	assert.Equal(t, consts.StatusOK, w.Result().StatusCode())
	assert.Equal(t, int64(errno.SuccessCode), code(t, w.Result().Body()))
}

func TestInvalidVideoId(t *testing.T) {
	h := newServer(t)
	w := ut.PerformRequest(h.Engine, consts.MethodGet, "/api/videos/abc", nil)
	assert.Equal(t, consts.StatusBadRequest, w.Result().StatusCode())
	assert.Equal(t, int64(errno.ParamErrCode), code(t, w.Result().Body()))
}
