package service

import (
	"context"
	"strings"
	"time"

	"TikLite.com/cmd/interaction/dal/db"
	"TikLite.com/cmd/model"
	"TikLite.com/pkg/constants"
	"TikLite.com/pkg/errno"
	"TikLite.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

type CommentService struct {
	ctx context.Context
}

func NewCommentService(ctx context.Context) *CommentService {
	return &CommentService{ctx: ctx}
}

func (s *CommentService) CreateComment(userId, videoId int64, content string) (*model.Comment, error) {
	if userId <= 0 {
		return nil, errno.AuthorizationErr
	}
	content = strings.TrimSpace(content)
	if videoId <= 0 || content == "" {
		return nil, errno.ParamErr.WithMessage("comment content is required")
	}
	if utils.RuneLen(content) > constants.MaxCommentLength {
		return nil, errno.ParamErr.WithMessage("comment is too long")
	}
	comment := &model.Comment{
		CommentId: utils.GenerateID(),
		UserId:    userId,
		VideoId:   videoId,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := db.CreateComment(s.ctx, comment); err != nil {
		if errors.Is(err, db.ErrObjectNotFound) {
			return nil, errno.NotFoundErr.WithMessage("video not found")
		}
		hlog.CtxErrorf(s.ctx, "create comment failed: %+v", err)
		return nil, errno.ServiceErr.WithMessage("Internal service error")
	}
	if full, err := db.GetComment(s.ctx, comment.CommentId); err == nil {
		return full, nil
	}
	return comment, nil
}

// ListComments 视频评论列表，viewerId>0时标记是否已点赞
func (s *CommentService) ListComments(videoId, viewerId, page, size int64) ([]*model.CommentInfo, error) {
	if videoId <= 0 {
		return nil, errno.ParamErr
	}
	offset, limit := utils.NormalizePage(page, size, constants.DefaultPageSize, constants.MaxPageSize)
	comments, err := db.ListVideoComments(s.ctx, videoId, offset, limit)
	if err != nil {
		hlog.CtxErrorf(s.ctx, "list comments failed: %+v", err)
		return nil, errno.ServiceErr.WithMessage("Internal service error")
	}
	ids := make([]int64, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.CommentId)
	}
	liked, err := db.GetLikedCommentIds(s.ctx, viewerId, ids)
	if err != nil {
		// 点赞状态不影响列表展示
		hlog.CtxWarnf(s.ctx, "load liked comments failed: %v", err)
	}
	likedSet := make(map[int64]struct{}, len(liked))
	for _, id := range liked {
		likedSet[id] = struct{}{}
	}
	res := make([]*model.CommentInfo, 0, len(comments))
	for _, c := range comments {
		_, ok := likedSet[c.CommentId]
		res = append(res, &model.CommentInfo{Comment: c, IsLiked: ok})
	}
	return res, nil
}

func (s *CommentService) DeleteComment(userId, commentId int64) error {
	if userId <= 0 {
		return errno.AuthorizationErr
	}
	if commentId <= 0 {
		return errno.ParamErr
	}
	deleted, err := db.DeleteComment(s.ctx, commentId, userId)
	if err != nil {
		hlog.CtxErrorf(s.ctx, "delete comment failed: %+v", err)
		return errno.ServiceErr.WithMessage("Internal service error")
	}
	if deleted {
		return nil
	}
	// 区分评论不存在和不是作者
	if _, err := db.GetComment(s.ctx, commentId); err != nil {
		if errors.Is(err, db.ErrObjectNotFound) {
			return errno.NotFoundErr.WithMessage("comment not found")
		}
		return errno.ServiceErr.WithMessage("Internal service error")
	}
	return errno.AuthorizationFailedErr.WithMessage("only the author can delete this comment")
}
