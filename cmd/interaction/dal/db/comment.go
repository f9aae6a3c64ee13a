package db

import (
	"context"

	"TikLite.com/cmd/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CreateComment 写评论并在同一事务内累加视频评论数
func CreateComment(ctx context.Context, comment *model.Comment) error {
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Author").Create(comment).Error; err != nil {
			return errors.Wrapf(err, "create comment on video %d", comment.VideoId)
		}
		return bump(tx, schemas[model.KindVideoLike].object.withColumn("comment_count"), comment.VideoId, "+ 1")
	})
}

// DeleteComment 只有作者本人可以删除，返回是否删除成功
func DeleteComment(ctx context.Context, commentId, userId int64) (bool, error) {
	var deleted bool
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comment := &model.Comment{}
		if err := tx.Where("comment_id = ? AND user_id = ?", commentId, userId).Take(comment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return errors.Wrapf(err, "load comment %d", commentId)
		}
		if err := tx.Where("comment_id = ?", commentId).Delete(&model.CommentLike{}).Error; err != nil {
			return errors.Wrapf(err, "delete likes of comment %d", commentId)
		}
		if err := tx.Where("comment_id = ?", commentId).Delete(&model.Comment{}).Error; err != nil {
			return errors.Wrapf(err, "delete comment %d", commentId)
		}
		deleted = true
		return decrement(tx, schemas[model.KindVideoLike].object.withColumn("comment_count"), comment.VideoId)
	})
	return deleted, err
}

func GetComment(ctx context.Context, commentId int64) (*model.Comment, error) {
	comment := &model.Comment{}
	if err := DB.WithContext(ctx).Preload("Author").Where("comment_id = ?", commentId).Take(comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(ErrObjectNotFound, "comment %d", commentId)
		}
		return nil, errors.Wrapf(err, "get comment %d", commentId)
	}
	return comment, nil
}

// ListVideoComments 视频评论，新的在前
func ListVideoComments(ctx context.Context, videoId, offset, limit int64) ([]*model.Comment, error) {
	list := make([]*model.Comment, 0, limit)
	if err := DB.WithContext(ctx).Preload("Author").
		Where("video_id = ?", videoId).
		Order("created_at DESC").
		Offset(int(offset)).Limit(int(limit)).
		Find(&list).Error; err != nil {
		return nil, errors.Wrapf(err, "list comments of video %d", videoId)
	}
	return list, nil
}

// GetLikedCommentIds 当前用户在给定评论中点赞过的
func GetLikedCommentIds(ctx context.Context, userId int64, commentIds []int64) ([]int64, error) {
	liked := make([]int64, 0)
	if userId <= 0 || len(commentIds) == 0 {
		return liked, nil
	}
	if err := DB.WithContext(ctx).Model(&model.CommentLike{}).
		Where("user_id = ? AND comment_id IN ?", userId, commentIds).
		Pluck("comment_id", &liked).Error; err != nil {
		return nil, errors.Wrapf(err, "liked comments of user %d", userId)
	}
	return liked, nil
}

func (c counterRef) withColumn(column string) counterRef {
	c.column = column
	return c
}
