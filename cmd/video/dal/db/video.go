package db

import (
	"context"
	"time"

	"TikLite.com/cmd/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	ErrVideoNotFound = errors.New("video not found")
	ErrNotOwner      = errors.New("video belongs to another user")
)

// Feedlist 最新视频，before为零值时不限制
func Feedlist(ctx context.Context, before time.Time, limit int) ([]*model.Video, error) {
	list := make([]*model.Video, 0, limit)
	tx := DB.WithContext(ctx).Preload("Author")
	if !before.IsZero() {
		tx = tx.Where("created_at < ?", before)
	}
	if err := tx.Order("created_at DESC").Limit(limit).Find(&list).Error; err != nil {
		return nil, errors.Wrap(err, "feed query failed")
	}
	return list, nil
}

// ExploreIds 按播放量倒序
func ExploreIds(ctx context.Context, limit int) ([]int64, error) {
	ids := make([]int64, 0, limit)
	if err := DB.WithContext(ctx).Model(&model.Video{}).
		Order("view_count DESC").Order("created_at DESC").
		Limit(limit).
		Pluck("video_id", &ids).Error; err != nil {
		return nil, errors.Wrap(err, "explore query failed")
	}
	return ids, nil
}

// Videolist 某个用户发布的视频
func Videolist(ctx context.Context, userId, offset, limit int64) ([]*model.Video, error) {
	list := make([]*model.Video, 0, limit)
	if err := DB.WithContext(ctx).Preload("Author").
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Offset(int(offset)).Limit(int(limit)).
		Find(&list).Error; err != nil {
		return nil, errors.Wrapf(err, "videos of user %d", userId)
	}
	return list, nil
}

// Videosearch 标题或简介模糊匹配
func Videosearch(ctx context.Context, keyword string, limit int) ([]*model.Video, error) {
	list := make([]*model.Video, 0, limit)
	like := "%" + escapeLike(keyword) + "%"
	if err := DB.WithContext(ctx).Preload("Author").
		Where("title LIKE ? OR description LIKE ?", like, like).
		Order("view_count DESC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, errors.Wrap(err, "video search failed")
	}
	return list, nil
}

// GetVideosByIds 按传入顺序返回
func GetVideosByIds(ctx context.Context, ids []int64) ([]*model.Video, error) {
	if len(ids) == 0 {
		return []*model.Video{}, nil
	}
	list := make([]*model.Video, 0, len(ids))
	if err := DB.WithContext(ctx).Preload("Author").Where("video_id IN ?", ids).Find(&list).Error; err != nil {
		return nil, errors.Wrap(err, "batch query videos failed")
	}
	byId := make(map[int64]*model.Video, len(list))
	for _, v := range list {
		byId[v.VideoId] = v
	}
	res := make([]*model.Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := byId[id]; ok {
			res = append(res, v)
		}
	}
	return res, nil
}

func GetVideo(ctx context.Context, videoId int64) (*model.Video, error) {
	video := &model.Video{}
	if err := DB.WithContext(ctx).Preload("Author").Where("video_id = ?", videoId).Take(video).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, errors.Wrapf(err, "get video %d", videoId)
	}
	return video, nil
}

// InsertVideo 服务端以已认证的发布者身份写入
func InsertVideo(ctx context.Context, video *model.Video) error {
	if err := DB.WithContext(ctx).Omit("Author").Create(video).Error; err != nil {
		return errors.Wrapf(err, "insert video %d", video.VideoId)
	}
	return nil
}

// AddVideoViews 累加播放量
func AddVideoViews(ctx context.Context, videoId, delta int64) error {
	res := DB.WithContext(ctx).Model(&model.Video{}).Where("video_id = ?", videoId).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", delta))
	if res.Error != nil {
		return errors.Wrapf(res.Error, "add views to video %d", videoId)
	}
	if res.RowsAffected == 0 {
		return ErrVideoNotFound
	}
	return nil
}

// DeleteVideo 作者删除视频，连同点赞与评论
func DeleteVideo(ctx context.Context, videoId, userId int64) (*model.Video, error) {
	video := &model.Video{}
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("video_id = ?", videoId).Take(video).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVideoNotFound
			}
			return errors.Wrapf(err, "load video %d", videoId)
		}
		if video.UserId != userId {
			return ErrNotOwner
		}
		if err := tx.Where("comment_id IN (?)",
			tx.Model(&model.Comment{}).Select("comment_id").Where("video_id = ?", videoId),
		).Delete(&model.CommentLike{}).Error; err != nil {
			return errors.Wrap(err, "delete comment likes")
		}
		if err := tx.Where("video_id = ?", videoId).Delete(&model.Comment{}).Error; err != nil {
			return errors.Wrap(err, "delete comments")
		}
		if err := tx.Where("video_id = ?", videoId).Delete(&model.VideoLike{}).Error; err != nil {
			return errors.Wrap(err, "delete video likes")
		}
		if err := tx.Where("video_id = ?", videoId).Delete(&model.Video{}).Error; err != nil {
			return errors.Wrap(err, "delete video")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return video, nil
}

// GetLikedVideoIds ids中userId点赞过的
func GetLikedVideoIds(ctx context.Context, userId int64, ids []int64) ([]int64, error) {
	liked := make([]int64, 0)
	if userId <= 0 || len(ids) == 0 {
		return liked, nil
	}
	if err := DB.WithContext(ctx).Model(&model.VideoLike{}).
		Where("user_id = ? AND video_id IN ?", userId, ids).
		Pluck("video_id", &liked).Error; err != nil {
		return nil, errors.Wrapf(err, "liked videos of user %d", userId)
	}
	return liked, nil
}

func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
