package mq

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu        sync.Mutex
	relations []*RelationEvent
	videos    []*VideoEvent
	users     []*UserEvent
	fail      bool
}

func (r *recorder) HandleRelationEvent(_ context.Context, e *RelationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.relations = append(r.relations, e)
	if r.fail {
		return errors.New("handler failed")
	}
	return nil
}

func (r *recorder) HandleVideoEvent(_ context.Context, e *VideoEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.videos = append(r.videos, e)
	return nil
}

func (r *recorder) HandleUserEvent(_ context.Context, e *UserEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, e)
	return nil
}

func TestLocalBusDispatch(t *testing.T) {
	ctx := context.Background()
	bus := NewLocalBus(16)
	rec := &recorder{fail: true}
	require.NoError(t, bus.ConsumeRelationEvents(ctx, rec))
	require.NoError(t, bus.ConsumeIndexEvents(ctx, rec))

	require.NoError(t, bus.PublishRelationEvent(ctx, NewRelationEvent("follow", 1, 2, true, 1)))
	require.NoError(t, bus.PublishRelationEvent(ctx, NewRelationEvent("follow", 1, 2, false, 0)))
	require.NoError(t, bus.PublishVideoEvent(ctx, &VideoEvent{Type: EventCreated, VideoID: 9}))
	require.NoError(t, bus.PublishUserEvent(ctx, &UserEvent{Type: EventCreated, UserID: 1}))
	require.NoError(t, bus.Close())

	require.Len(t, rec.relations, 2)
	assert.True(t, rec.relations[0].Active)
	assert.False(t, rec.relations[1].Active)
	require.Len(t, rec.videos, 1)
	assert.NotEmpty(t, rec.videos[0].EventID)
	assert.NotZero(t, rec.videos[0].Timestamp)
	require.Len(t, rec.users, 1)
}

func TestLocalBusPublishAfterClose(t *testing.T) {
	bus := NewLocalBus(1)
	require.NoError(t, bus.Close())
	assert.NotPanics(t, func() {
		_ = bus.PublishUserEvent(context.Background(), &UserEvent{UserID: 1})
	})
}
