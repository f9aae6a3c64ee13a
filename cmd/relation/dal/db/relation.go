package db

import (
	"context"

	"TikLite.com/cmd/model"
	"github.com/pkg/errors"
)

// follower_id 表示发起关注的用户，following_id 表示被关注的用户
// GetFollowerIdsPaged 关注了userId的用户(粉丝)，最近关注的在前
func GetFollowerIdsPaged(ctx context.Context, userId, offset, limit int64) ([]int64, error) {
	list := make([]int64, 0, limit)
	if err := DB.WithContext(ctx).Model(&model.Follow{}).
		Where("following_id = ?", userId).
		Order("created_at DESC").
		Offset(int(offset)).Limit(int(limit)).
		Pluck("follower_id", &list).Error; err != nil {
		return nil, errors.Wrapf(err, "followers of %d", userId)
	}
	return list, nil
}

// GetFollowingIdsPaged userId关注的用户
func GetFollowingIdsPaged(ctx context.Context, userId, offset, limit int64) ([]int64, error) {
	list := make([]int64, 0, limit)
	if err := DB.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ?", userId).
		Order("created_at DESC").
		Offset(int(offset)).Limit(int(limit)).
		Pluck("following_id", &list).Error; err != nil {
		return nil, errors.Wrapf(err, "following of %d", userId)
	}
	return list, nil
}

// GetFollowingSubset 返回ids中viewerId已关注的部分
func GetFollowingSubset(ctx context.Context, viewerId int64, ids []int64) ([]int64, error) {
	list := make([]int64, 0)
	if viewerId <= 0 || len(ids) == 0 {
		return list, nil
	}
	if err := DB.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ? AND following_id IN ?", viewerId, ids).
		Pluck("following_id", &list).Error; err != nil {
		return nil, errors.Wrapf(err, "following subset of %d", viewerId)
	}
	return list, nil
}

// GetFriendIdsPaged 互相关注
func GetFriendIdsPaged(ctx context.Context, userId, offset, limit int64) ([]int64, error) {
	list := make([]int64, 0, limit)
	if err := DB.WithContext(ctx).Model(&model.Follow{}).
		Where(`follower_id = ? AND following_id IN (
	SELECT follower_id FROM follows WHERE following_id = ?)`, userId, userId).
		Order("created_at DESC").
		Offset(int(offset)).Limit(int(limit)).
		Pluck("following_id", &list).Error; err != nil {
		return nil, errors.Wrapf(err, "friends of %d", userId)
	}
	return list, nil
}
