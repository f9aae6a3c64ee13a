package search

import (
	"context"

	"TikLite.com/pkg/mq"
)

// Indexer 消费视频/用户事件维护索引
type Indexer struct {
	client *Client
}

func NewIndexer(client *Client) *Indexer {
	return &Indexer{client: client}
}

var _ mq.IndexEventHandler = (*Indexer)(nil)

func (i *Indexer) HandleVideoEvent(ctx context.Context, event *mq.VideoEvent) error {
	if event.Type == mq.EventDeleted {
		return i.client.DeleteVideo(ctx, event.VideoID)
	}
	return i.client.IndexVideo(ctx, &VideoDoc{
		VideoID:     event.VideoID,
		UserID:      event.UserID,
		Title:       event.Title,
		Description: event.Description,
		ViewCount:   event.ViewCount,
		CreatedAt:   event.CreatedAt,
	})
}

func (i *Indexer) HandleUserEvent(ctx context.Context, event *mq.UserEvent) error {
	return i.client.IndexUser(ctx, &UserDoc{
		UserID:      event.UserID,
		UserName:    event.UserName,
		DisplayName: event.DisplayName,
	})
}
