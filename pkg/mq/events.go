package mq

import (
	"time"

	"github.com/google/uuid"
)

// RelationEvent 点赞/关注状态变化
type RelationEvent struct {
	EventID   string `json:"event_id"`
	Kind      string `json:"kind"`       // video_like, comment_like, follow
	SubjectID int64  `json:"subject_id"` // 操作者
	ObjectID  int64  `json:"object_id"`  // 视频/评论/被关注用户
	Active    bool   `json:"active"`
	Count     int64  `json:"count"`
	Timestamp int64  `json:"timestamp"`
}

const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// VideoEvent 视频变更，驱动搜索索引
type VideoEvent struct {
	EventID     string `json:"event_id"`
	Type        string `json:"type"`
	VideoID     int64  `json:"video_id"`
	UserID      int64  `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ViewCount   int64  `json:"view_count"`
	CreatedAt   int64  `json:"created_at"`
	Timestamp   int64  `json:"timestamp"`
}

// UserEvent 用户资料变更，驱动搜索索引
type UserEvent struct {
	EventID     string `json:"event_id"`
	Type        string `json:"type"`
	UserID      int64  `json:"user_id"`
	UserName    string `json:"user_name"`
	DisplayName string `json:"display_name"`
	Timestamp   int64  `json:"timestamp"`
}

// 搜索队列按routing key区分事件类型
const (
	VideoRoutingKey = "video"
	UserRoutingKey  = "user"
)

func NewRelationEvent(kind string, subjectID, objectID int64, active bool, count int64) *RelationEvent {
	return &RelationEvent{
		EventID:   uuid.New().String(),
		Kind:      kind,
		SubjectID: subjectID,
		ObjectID:  objectID,
		Active:    active,
		Count:     count,
		Timestamp: time.Now().Unix(),
	}
}

func stamp(eventID *string, ts *int64) {
	if *eventID == "" {
		*eventID = uuid.New().String()
	}
	if *ts == 0 {
		*ts = time.Now().Unix()
	}
}
