package service

import (
	"context"

	"TikLite.com/cmd/model"
	"TikLite.com/cmd/relation/dal/db"
	"TikLite.com/cmd/relation/infras"
	userdb "TikLite.com/cmd/user/dal/db"
	"TikLite.com/pkg/constants"
	"TikLite.com/pkg/errno"
	"TikLite.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

const (
	ListFollowers = "followers"
	ListFollowing = "following"
	ListFriends   = "friends"
)

type FollowListService struct {
	ctx   context.Context
	users infras.UserFetcher
}

func NewFollowListService(ctx context.Context) *FollowListService {
	return &FollowListService{ctx: ctx, users: infras.UserClient}
}

// List 按用户名查询粉丝/关注/好友列表，附带viewer是否已关注
func (s *FollowListService) List(viewerId int64, userName, which string, page, size int64) ([]*model.Profile, error) {
	owner, err := s.users.GetUserByName(s.ctx, userName)
	if err != nil {
		if errors.Is(err, userdb.ErrUserNotFound) {
			return nil, errno.NotFoundErr.WithMessage("user not found")
		}
		return nil, s.fail("load user", err)
	}
	offset, limit := utils.NormalizePage(page, size, constants.DefaultPageSize, constants.MaxPageSize)

	var ids []int64
	switch which {
	case ListFollowers:
		ids, err = db.GetFollowerIdsPaged(s.ctx, owner.UserId, offset, limit)
	case ListFollowing:
		ids, err = db.GetFollowingIdsPaged(s.ctx, owner.UserId, offset, limit)
	case ListFriends:
		ids, err = db.GetFriendIdsPaged(s.ctx, owner.UserId, offset, limit)
	default:
		return nil, errno.ParamErr
	}
	if err != nil {
		return nil, s.fail("load relation ids", err)
	}

	users, err := s.users.GetUsersByIds(s.ctx, ids)
	if err != nil {
		return nil, s.fail("batch get user info", err)
	}
	followed, err := db.GetFollowingSubset(s.ctx, viewerId, ids)
	if err != nil {
		hlog.CtxWarnf(s.ctx, "load follow state failed: %v", err)
	}
	set := make(map[int64]struct{}, len(followed))
	for _, id := range followed {
		set[id] = struct{}{}
	}
	res := make([]*model.Profile, 0, len(users))
	for _, u := range users {
		_, ok := set[u.UserId]
		res = append(res, &model.Profile{User: u, IsFollowing: ok, IsSelf: u.UserId == viewerId})
	}
	return res, nil
}

func (s *FollowListService) fail(what string, err error) error {
	hlog.CtxErrorf(s.ctx, "%s failed: %+v", what, err)
	return errno.ServiceErr.WithMessage("Internal service error")
}
