package mq

import "context"

// MessageProducer 消息生产者接口
type MessageProducer interface {
	PublishRelationEvent(ctx context.Context, event *RelationEvent) error
	PublishVideoEvent(ctx context.Context, event *VideoEvent) error
	PublishUserEvent(ctx context.Context, event *UserEvent) error
}

type RelationEventHandler interface {
	HandleRelationEvent(ctx context.Context, event *RelationEvent) error
}

type IndexEventHandler interface {
	HandleVideoEvent(ctx context.Context, event *VideoEvent) error
	HandleUserEvent(ctx context.Context, event *UserEvent) error
}

// 确保Producer实现MessageProducer接口
var _ MessageProducer = (*Producer)(nil)

// 确保LocalBus实现MessageProducer接口
var _ MessageProducer = (*LocalBus)(nil)
