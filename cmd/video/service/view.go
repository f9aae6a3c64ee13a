package service

import (
	"context"

	"TikLite.com/cmd/video/dal/db"
	"TikLite.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type ViewService struct {
	ctx context.Context
}

func NewViewService(ctx context.Context) *ViewService {
	return &ViewService{ctx: ctx}
}

// RecordView 有redis时只累加缓冲，由ViewSyncman定期刷库
func (s *ViewService) RecordView(videoId int64) error {
	if videoId <= 0 {
		return errno.ParamErr
	}
	if views != nil {
		_, err := views.Incr(s.ctx, videoId)
		if err == nil {
			return nil
		}
		hlog.CtxWarnf(s.ctx, "buffer view of %d failed, writing through: %v", videoId, err)
	}
	if err := db.AddVideoViews(s.ctx, videoId, 1); err != nil {
		return translate(s.ctx, err)
	}
	return nil
}
