package service

import (
	"context"

	"TikLite.com/cmd/video/dal/db"
	"TikLite.com/pkg/errno"
	"TikLite.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type DeleteVideoService struct {
	ctx context.Context
}

func NewDeleteVideoService(ctx context.Context) *DeleteVideoService {
	return &DeleteVideoService{ctx: ctx}
}

// DeleteVideo 只有作者可以删除；对象存储清理失败只记录日志
func (s *DeleteVideoService) DeleteVideo(userId, videoId int64) error {
	if userId <= 0 {
		return errno.AuthorizationErr
	}
	if videoId <= 0 {
		return errno.ParamErr
	}
	video, err := db.DeleteVideo(s.ctx, videoId, userId)
	if err != nil {
		return translate(s.ctx, err)
	}
	if store != nil {
		objects := []string{video.ObjectName, store.ObjectNameFromURL(video.CoverUrl)}
		for _, name := range objects {
			if name == "" {
				continue
			}
			if err := store.RemoveObject(s.ctx, name); err != nil {
				hlog.CtxWarnf(s.ctx, "remove object %s failed: %v", name, err)
			}
		}
	}
	publishVideo(s.ctx, &mq.VideoEvent{
		Type:    mq.EventDeleted,
		VideoID: video.VideoId,
		UserID:  video.UserId,
	})
	invalidateExplore(s.ctx)
	return nil
}
