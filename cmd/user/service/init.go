package service

import (
	"context"
	"io"

	"TikLite.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// AvatarStore 头像对象存储
type AvatarStore interface {
	EnsureBucket(ctx context.Context) error
	PutObject(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	RemoveObject(ctx context.Context, objectName string) error
	ObjectNameFromURL(url string) string
}

var (
	producer mq.MessageProducer
	avatars  AvatarStore
)

// Init 注入事件生产者和对象存储，均可为nil
func Init(p mq.MessageProducer, store AvatarStore) {
	producer = p
	if store != nil {
		avatars = store
	}
}

func publishUser(ctx context.Context, event *mq.UserEvent) {
	if producer == nil {
		return
	}
	if err := producer.PublishUserEvent(ctx, event); err != nil {
		hlog.CtxErrorf(ctx, "publish user event %s of %d failed: %v", event.Type, event.UserID, err)
	}
}
