package mq

import (
	"context"
	"sync"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// LocalBus 未配置RabbitMQ时在进程内分发事件，由后台协程串行处理
type LocalBus struct {
	mu        sync.RWMutex
	relations []RelationEventHandler
	indexers  []IndexEventHandler
	queue     chan func()
	done      chan struct{}
	closeOnce sync.Once
}

func NewLocalBus(buffer int) *LocalBus {
	if buffer <= 0 {
		buffer = 1024
	}
	b := &LocalBus{
		queue: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
	go b.run()
	return b
}

func (b *LocalBus) run() {
	defer close(b.done)
	for fn := range b.queue {
		fn()
	}
}

func (b *LocalBus) ConsumeRelationEvents(_ context.Context, h RelationEventHandler) error {
	b.mu.Lock()
	b.relations = append(b.relations, h)
	b.mu.Unlock()
	return nil
}

func (b *LocalBus) ConsumeIndexEvents(_ context.Context, h IndexEventHandler) error {
	b.mu.Lock()
	b.indexers = append(b.indexers, h)
	b.mu.Unlock()
	return nil
}

func (b *LocalBus) enqueue(name string, fn func()) {
	defer func() {
		// Close之后发布的事件直接丢弃
		if recover() != nil {
			hlog.Warnf("local bus closed, dropped %s event", name)
		}
	}()
	select {
	case b.queue <- fn:
	default:
		hlog.Warnf("local bus full, dropped %s event", name)
	}
}

func (b *LocalBus) PublishRelationEvent(ctx context.Context, event *RelationEvent) error {
	stamp(&event.EventID, &event.Timestamp)
	b.mu.RLock()
	handlers := append([]RelationEventHandler(nil), b.relations...)
	b.mu.RUnlock()
	b.enqueue("relation", func() {
		for _, h := range handlers {
			if err := h.HandleRelationEvent(context.Background(), event); err != nil {
				hlog.Errorf("Failed to handle relation event %s: %v", event.EventID, err)
			}
		}
	})
	return nil
}

func (b *LocalBus) PublishVideoEvent(ctx context.Context, event *VideoEvent) error {
	stamp(&event.EventID, &event.Timestamp)
	b.mu.RLock()
	handlers := append([]IndexEventHandler(nil), b.indexers...)
	b.mu.RUnlock()
	b.enqueue("video", func() {
		for _, h := range handlers {
			if err := h.HandleVideoEvent(context.Background(), event); err != nil {
				hlog.Errorf("Failed to handle video event %s: %v", event.EventID, err)
			}
		}
	})
	return nil
}

func (b *LocalBus) PublishUserEvent(ctx context.Context, event *UserEvent) error {
	stamp(&event.EventID, &event.Timestamp)
	b.mu.RLock()
	handlers := append([]IndexEventHandler(nil), b.indexers...)
	b.mu.RUnlock()
	b.enqueue("user", func() {
		for _, h := range handlers {
			if err := h.HandleUserEvent(context.Background(), event); err != nil {
				hlog.Errorf("Failed to handle user event %s: %v", event.EventID, err)
			}
		}
	})
	return nil
}

// Close 处理完已入队的事件后返回
func (b *LocalBus) Close() error {
	b.closeOnce.Do(func() { close(b.queue) })
	<-b.done
	return nil
}
