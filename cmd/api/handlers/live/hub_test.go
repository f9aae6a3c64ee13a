package live

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"TikLite.com/cmd/model"
	"TikLite.com/pkg/mq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, c *client) *Update {
	select {
	case msg := <-c.send:
		var u Update
		require.NoError(t, json.Unmarshal(msg, &u))
		return &u
	default:
		return nil
	}
}

func TestVideoLikeBroadcast(t *testing.T) {
	h := NewHub()
	watcher, leave := h.join(5)
	other, leaveOther := h.join(6)
	defer leaveOther()

	ctx := context.Background()
	require.NoError(t, h.HandleRelationEvent(ctx, mq.NewRelationEvent(string(model.KindVideoLike), 1, 5, true, 3)))

	u := receive(t, watcher)
	require.NotNil(t, u)
	assert.Equal(t, Update{Kind: "video_like", ObjectID: 5, Count: 3}, *u)
	assert.Nil(t, receive(t, other))

	leave()
	assert.Zero(t, h.watchers(5))
}

func TestCommentLikeRoutedToVideo(t *testing.T) {
	h := NewHub()
	h.videoOfComment = func(_ context.Context, commentId int64) (int64, error) {
		if commentId == 42 {
			return 5, nil
		}
		return 0, errors.New("not found")
	}
	watcher, leave := h.join(5)
	defer leave()

	ctx := context.Background()
	require.NoError(t, h.HandleRelationEvent(ctx, mq.NewRelationEvent(string(model.KindCommentLike), 1, 42, true, 1)))
	u := receive(t, watcher)
	require.NotNil(t, u)
	assert.Equal(t, int64(42), u.ObjectID)

	// 找不到评论时不报错
	require.NoError(t, h.HandleRelationEvent(ctx, mq.NewRelationEvent(string(model.KindCommentLike), 1, 43, true, 1)))
	assert.Nil(t, receive(t, watcher))
}

func TestFollowIgnored(t *testing.T) {
	h := NewHub()
	watcher, leave := h.join(5)
	defer leave()
	require.NoError(t, h.HandleRelationEvent(context.Background(), mq.NewRelationEvent(string(model.KindFollow), 1, 5, true, 9)))
	assert.Nil(t, receive(t, watcher))
}

func TestSlowClientDropsMessages(t *testing.T) {
	h := NewHub()
	watcher, leave := h.join(5)
	defer leave()
	for i := 0; i < 40; i++ {
		require.NoError(t, h.HandleRelationEvent(context.Background(), mq.NewRelationEvent(string(model.KindVideoLike), 1, 5, true, int64(i))))
	}
	assert.Len(t, watcher.send, cap(watcher.send))
}

func TestUpdateObjectIdIsString(t *testing.T) {
	h := NewHub()
	const id int64 = 2111581373364965377
	watcher, leave := h.join(id)
	defer leave()

	require.NoError(t, h.HandleRelationEvent(context.Background(), mq.NewRelationEvent(string(model.KindVideoLike), 1, id, true, 2)))
	msg := <-watcher.send
	raw := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(msg, &raw))
	assert.Equal(t, "2111581373364965377", raw["object_id"])
}
