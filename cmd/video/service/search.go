package service

import (
	"context"
	"strings"

	"TikLite.com/cmd/model"
	userdb "TikLite.com/cmd/user/dal/db"
	"TikLite.com/cmd/video/dal/db"
	"TikLite.com/pkg/constants"
	"TikLite.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type SearchResult struct {
	Videos []*model.VideoInfo `json:"videos"`
	Users  []*model.User      `json:"users"`
}

type SearchService struct {
	ctx context.Context
}

func NewSearchService(ctx context.Context) *SearchService {
	return &SearchService{ctx: ctx}
}

// Search 优先走elasticsearch，失败或未配置时回退到LIKE查询
func (s *SearchService) Search(viewerId int64, query string) (*SearchResult, error) {
	res := &SearchResult{Videos: []*model.VideoInfo{}, Users: []*model.User{}}
	query = strings.TrimSpace(query)
	if query == "" {
		return res, nil
	}
	videos, err := s.searchVideos(query)
	if err != nil {
		hlog.CtxErrorf(s.ctx, "search videos failed: %+v", err)
		return nil, errno.ServiceErr.WithMessage("Internal service error")
	}
	users, err := s.searchUsers(query)
	if err != nil {
		hlog.CtxErrorf(s.ctx, "search users failed: %+v", err)
		return nil, errno.ServiceErr.WithMessage("Internal service error")
	}
	res.Videos = NewFeedService(s.ctx).decorate(viewerId, videos)
	res.Users = users
	return res, nil
}

func (s *SearchService) searchVideos(query string) ([]*model.Video, error) {
	if searcher != nil {
		ids, err := searcher.SearchVideos(s.ctx, query, constants.SearchLimit)
		if err == nil {
			return db.GetVideosByIds(s.ctx, ids)
		}
		hlog.CtxWarnf(s.ctx, "elasticsearch video search failed, falling back: %v", err)
	}
	return db.Videosearch(s.ctx, query, constants.SearchLimit)
}

func (s *SearchService) searchUsers(query string) ([]*model.User, error) {
	if searcher != nil {
		ids, err := searcher.SearchUsers(s.ctx, query, constants.SearchLimit)
		if err == nil {
			return userdb.GetUsersByIds(s.ctx, ids)
		}
		hlog.CtxWarnf(s.ctx, "elasticsearch user search failed, falling back: %v", err)
	}
	return userdb.SearchUsers(s.ctx, query, constants.SearchLimit)
}
