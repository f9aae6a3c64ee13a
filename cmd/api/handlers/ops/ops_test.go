package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"TikLite.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/cloudwego/hertz/pkg/route"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code int64           `json:"code"`
	Data json.RawMessage `json:"data"`
}

type fakeBucket struct {
	calls int
}

func (f *fakeBucket) EnsureBucket(context.Context) error {
	f.calls++
	return nil
}

func (f *fakeBucket) Bucket() string { return "videos" }

func engine() *route.Engine {
	e := route.NewEngine(config.NewOptions([]config.Option{}))
	e.GET("/health", Health)
	e.POST("/storage/init", InitBucket)
	return e
}

func TestHealthDegraded(t *testing.T) {
	RegisterCheck("db", func(context.Context) error { return nil })
	RegisterCheck("redis", func(context.Context) error { return errors.New("refused") })
	t.Cleanup(func() {
		mu.Lock()
		checks = map[string]CheckFunc{}
		mu.Unlock()
	})

	w := ut.PerformRequest(engine(), consts.MethodGet, "/health", nil)
	assert.Equal(t, consts.StatusInternalServerError, w.Result().StatusCode())

	var env envelope
	require.NoError(t, json.Unmarshal(w.Result().Body(), &env))
	assert.Equal(t, int64(errno.ServiceErrCode), env.Code)
	var status HealthStatus
	require.NoError(t, json.Unmarshal(env.Data, &status))
	assert.Equal(t, "degraded", status.Status)
	assert.Equal(t, "ok", status.Dependencies["db"])
	assert.Equal(t, "refused", status.Dependencies["redis"])
}

func TestHealthOK(t *testing.T) {
	w := ut.PerformRequest(engine(), consts.MethodGet, "/health", nil)
	assert.Equal(t, consts.StatusOK, w.Result().StatusCode())
}

func TestInitBucketIdempotent(t *testing.T) {
	b := &fakeBucket{}
	InitStorage(b)
	t.Cleanup(func() { InitStorage(nil) })

	for i := 0; i < 2; i++ {
		w := ut.PerformRequest(engine(), consts.MethodPost, "/storage/init", nil)
		assert.Equal(t, consts.StatusOK, w.Result().StatusCode())
	}
	assert.Equal(t, 2, b.calls)
}

func TestInitBucketWithoutStorage(t *testing.T) {
	InitStorage(nil)
	w := ut.PerformRequest(engine(), consts.MethodPost, "/storage/init", nil)
	assert.Equal(t, consts.StatusBadRequest, w.Result().StatusCode())
}
