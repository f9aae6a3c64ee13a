package common

import (
	"context"
	"time"

	"TikLite.com/cmd/video/dal/db"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

// ViewSource 缓冲中的播放量增量
type ViewSource interface {
	Drain(ctx context.Context) (map[int64]int64, error)
	Restore(ctx context.Context, videoId, delta int64) error
}

// ViewSyncman 定期把redis中的播放量增量刷回videos.view_count
type ViewSyncman struct {
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	source ViewSource
	period time.Duration
	apply  func(ctx context.Context, videoId, delta int64) error
}

func NewViewSyncman(source ViewSource, period time.Duration) *ViewSyncman {
	if period <= 0 {
		period = 10 * time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &ViewSyncman{
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
		source: source,
		period: period,
		apply:  db.AddVideoViews,
	}
}

func (s *ViewSyncman) Run() {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.period)
		defer ticker.Stop()
		for {
			select {
			case <-s.ctx.Done():
				hlog.Info("Ok,停止同步[views]")
				return
			case <-ticker.C:
				if err := s.SyncViews(context.Background()); err != nil {
					hlog.Errorf("sync views failed: %v", err)
				}
			}
		}
	}()
}

// Stop 停止定时任务并做最后一次刷新
func (s *ViewSyncman) Stop() {
	s.cancel()
	<-s.done
	if err := s.SyncViews(context.Background()); err != nil {
		hlog.Errorf("final view sync failed: %v", err)
	}
}

// SyncViews 刷库失败的增量放回缓冲，视频已删除的增量丢弃
func (s *ViewSyncman) SyncViews(ctx context.Context) error {
	deltas, err := s.source.Drain(ctx)
	var firstErr error
	if err != nil {
		firstErr = err
	}
	for videoId, delta := range deltas {
		err := s.apply(ctx, videoId, delta)
		if err == nil {
			continue
		}
		if errors.Is(err, db.ErrVideoNotFound) {
			continue
		}
		if rerr := s.source.Restore(ctx, videoId, delta); rerr != nil {
			hlog.Errorf("restore %d views of video %d failed: %v", delta, videoId, rerr)
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
