package service

import (
	"context"

	"TikLite.com/cmd/model"
	userdb "TikLite.com/cmd/user/dal/db"
	"TikLite.com/cmd/video/dal/db"
	"TikLite.com/pkg/constants"
	"TikLite.com/pkg/errno"
	"TikLite.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

type FeedService struct {
	ctx context.Context
}

func NewFeedService(ctx context.Context) *FeedService {
	return &FeedService{ctx: ctx}
}

// Feed 按发布时间倒序，before为毫秒时间戳游标，0表示从最新开始
func (s *FeedService) Feed(viewerId, before int64, limit int) ([]*model.VideoInfo, error) {
	if limit <= 0 || limit > constants.MaxPageSize {
		limit = constants.FeedLimit
	}
	videos, err := db.Feedlist(s.ctx, utils.UnixMilliToTime(before), limit)
	if err != nil {
		hlog.CtxErrorf(s.ctx, "feed query failed: %+v", err)
		return nil, errno.ServiceErr.WithMessage("Internal service error")
	}
	return s.decorate(viewerId, videos), nil
}

// Explore 按播放量倒序，ID列表缓存在redis
func (s *FeedService) Explore(viewerId int64, limit int) ([]*model.VideoInfo, error) {
	if limit <= 0 || limit > constants.MaxPageSize {
		limit = constants.ExploreLimit
	}
	ids, hit := s.cachedExplore(limit)
	if !hit {
		var err error
		if ids, err = db.ExploreIds(s.ctx, limit); err != nil {
			hlog.CtxErrorf(s.ctx, "explore query failed: %+v", err)
			return nil, errno.ServiceErr.WithMessage("Internal service error")
		}
		if explore != nil {
			if err := explore.CacheExplore(s.ctx, limit, ids); err != nil {
				hlog.CtxWarnf(s.ctx, "cache explore failed: %v", err)
			}
		}
	}
	videos, err := db.GetVideosByIds(s.ctx, ids)
	if err != nil {
		hlog.CtxErrorf(s.ctx, "load explore videos failed: %+v", err)
		return nil, errno.ServiceErr.WithMessage("Internal service error")
	}
	return s.decorate(viewerId, videos), nil
}

func (s *FeedService) cachedExplore(limit int) ([]int64, bool) {
	if explore == nil {
		return nil, false
	}
	ids, ok, err := explore.GetExplore(s.ctx, limit)
	if err != nil {
		hlog.CtxWarnf(s.ctx, "read explore cache failed: %v", err)
		return nil, false
	}
	return ids, ok
}

// UserVideos 某用户发布的视频
func (s *FeedService) UserVideos(viewerId int64, userName string, page, size int64) ([]*model.VideoInfo, error) {
	user, err := userdb.GetUserByName(s.ctx, userName)
	if err != nil {
		if errors.Is(err, userdb.ErrUserNotFound) {
			return nil, errno.NotFoundErr.WithMessage("user not found")
		}
		hlog.CtxErrorf(s.ctx, "get user %s failed: %+v", userName, err)
		return nil, errno.ServiceErr.WithMessage("Internal service error")
	}
	offset, limit := utils.NormalizePage(page, size, constants.DefaultPageSize, constants.MaxPageSize)
	videos, err := db.Videolist(s.ctx, user.UserId, offset, limit)
	if err != nil {
		hlog.CtxErrorf(s.ctx, "list videos failed: %+v", err)
		return nil, errno.ServiceErr.WithMessage("Internal service error")
	}
	return s.decorate(viewerId, videos), nil
}

func (s *FeedService) Detail(viewerId, videoId int64) (*model.VideoInfo, error) {
	if videoId <= 0 {
		return nil, errno.ParamErr
	}
	video, err := db.GetVideo(s.ctx, videoId)
	if err != nil {
		return nil, translate(s.ctx, err)
	}
	return s.decorate(viewerId, []*model.Video{video})[0], nil
}

// decorate 补充当前用户的点赞状态，查询失败只记录日志
func (s *FeedService) decorate(viewerId int64, videos []*model.Video) []*model.VideoInfo {
	ids := make([]int64, 0, len(videos))
	for _, v := range videos {
		ids = append(ids, v.VideoId)
	}
	liked, err := db.GetLikedVideoIds(s.ctx, viewerId, ids)
	if err != nil {
		hlog.CtxWarnf(s.ctx, "load liked videos failed: %v", err)
	}
	likedSet := make(map[int64]struct{}, len(liked))
	for _, id := range liked {
		likedSet[id] = struct{}{}
	}
	res := make([]*model.VideoInfo, 0, len(videos))
	for _, v := range videos {
		_, ok := likedSet[v.VideoId]
		res = append(res, &model.VideoInfo{Video: v, IsLiked: ok})
	}
	return res
}

func translate(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, db.ErrVideoNotFound):
		return errno.NotFoundErr.WithMessage("video not found")
	case errors.Is(err, db.ErrNotOwner):
		return errno.AuthorizationFailedErr.WithMessage("only the owner can delete this video")
	}
	hlog.CtxErrorf(ctx, "video service failed: %+v", err)
	return errno.ServiceErr.WithMessage("Internal service error")
}
