package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"TikLite.com/cmd/video/dal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	pending  map[int64]int64
	restored map[int64]int64
}

func (f *fakeSource) Drain(context.Context) (map[int64]int64, error) {
	out := f.pending
	f.pending = map[int64]int64{}
	return out, nil
}

func (f *fakeSource) Restore(_ context.Context, id, delta int64) error {
	f.restored[id] += delta
	return nil
}

func TestSyncViews(t *testing.T) {
	src := &fakeSource{
		pending:  map[int64]int64{1: 3, 2: 5, 3: 7},
		restored: map[int64]int64{},
	}
	applied := map[int64]int64{}
	s := NewViewSyncman(src, time.Minute)
	s.apply = func(_ context.Context, id, delta int64) error {
		switch id {
		case 2:
			return db.ErrVideoNotFound
		case 3:
			return errors.New("db down")
		}
		applied[id] += delta
		return nil
	}

	err := s.SyncViews(context.Background())
	require.Error(t, err)
	assert.Equal(t, map[int64]int64{1: 3}, applied)
	// 删除的视频丢弃，失败的放回
	assert.Equal(t, map[int64]int64{3: 7}, src.restored)
}

func TestRunAndStop(t *testing.T) {
	src := &fakeSource{pending: map[int64]int64{9: 2}, restored: map[int64]int64{}}
	applied := make(chan int64, 4)
	s := NewViewSyncman(src, time.Hour)
	s.apply = func(_ context.Context, id, delta int64) error {
		applied <- delta
		return nil
	}
	s.Run()
	s.Stop()
	select {
	case d := <-applied:
		assert.Equal(t, int64(2), d)
	default:
		t.Fatal("final sync did not flush pending views")
	}
}
