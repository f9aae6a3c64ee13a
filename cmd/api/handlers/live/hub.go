package live

import (
	"context"
	"encoding/json"
	"sync"

	"TikLite.com/cmd/interaction/dal/db"
	"TikLite.com/cmd/model"
	"TikLite.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// Update 推送给观看者的计数变化
type Update struct {
	Kind     string `json:"kind"`
	ObjectID int64  `json:"object_id,string"`
	Count    int64  `json:"count"`
}

type client struct {
	send chan []byte
}

// Hub 按视频分房间广播点赞计数
type Hub struct {
	mu    sync.RWMutex
	rooms map[int64]map[*client]struct{}

	// 评论点赞事件只带评论ID，需要找到所属视频
	videoOfComment func(ctx context.Context, commentId int64) (int64, error)
}

func NewHub() *Hub {
	return &Hub{
		rooms:          make(map[int64]map[*client]struct{}),
		videoOfComment: commentVideo,
	}
}

func commentVideo(ctx context.Context, commentId int64) (int64, error) {
	c, err := db.GetComment(ctx, commentId)
	if err != nil {
		return 0, err
	}
	return c.VideoId, nil
}

var _ mq.RelationEventHandler = (*Hub)(nil)

func (h *Hub) join(videoId int64) (*client, func()) {
	c := &client{send: make(chan []byte, 16)}
	h.mu.Lock()
	room, ok := h.rooms[videoId]
	if !ok {
		room = make(map[*client]struct{})
		h.rooms[videoId] = room
	}
	room[c] = struct{}{}
	h.mu.Unlock()

	return c, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if room, ok := h.rooms[videoId]; ok {
			delete(room, c)
			if len(room) == 0 {
				delete(h.rooms, videoId)
			}
		}
	}
}

func (h *Hub) watchers(videoId int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[videoId])
}

// broadcast 慢连接直接丢弃本条消息
func (h *Hub) broadcast(videoId int64, msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[videoId] {
		select {
		case c.send <- msg:
		default:
		}
	}
}

// HandleRelationEvent 关注事件与视频无关，忽略
func (h *Hub) HandleRelationEvent(ctx context.Context, event *mq.RelationEvent) error {
	var videoId int64
	switch model.RelationKind(event.Kind) {
	case model.KindVideoLike:
		videoId = event.ObjectID
	case model.KindCommentLike:
		id, err := h.videoOfComment(ctx, event.ObjectID)
		if err != nil {
			hlog.CtxWarnf(ctx, "resolve video of comment %d failed: %v", event.ObjectID, err)
			return nil
		}
		videoId = id
	default:
		return nil
	}
	if h.watchers(videoId) == 0 {
		return nil
	}
	msg, err := json.Marshal(&Update{Kind: event.Kind, ObjectID: event.ObjectID, Count: event.Count})
	if err != nil {
		return err
	}
	h.broadcast(videoId, msg)
	return nil
}
