package handlers

import (
	"context"

	"TikLite.com/pkg/errno"
	"TikLite.com/pkg/pack"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type BucketInitializer interface {
	EnsureBucket(ctx context.Context) error
	Bucket() string
}

var storage BucketInitializer

func InitStorage(s BucketInitializer) {
	storage = s
}

// InitBucket 幂等，桶已存在也返回成功
func InitBucket(ctx context.Context, c *app.RequestContext) {
	if storage == nil {
		pack.SendResponse(c, errno.UploadErr.WithMessage("object storage is not configured"), nil)
		return
	}
	if err := storage.EnsureBucket(ctx); err != nil {
		hlog.CtxErrorf(ctx, "init bucket failed: %v", err)
		pack.SendResponse(c, errno.UploadErr, nil)
		return
	}
	pack.SendResponse(c, errno.Success, map[string]string{"bucket": storage.Bucket()})
}
