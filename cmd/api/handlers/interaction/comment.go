package handlers

import (
	"context"

	"TikLite.com/cmd/interaction/service"
	"TikLite.com/cmd/model"
	"TikLite.com/pkg/errno"
	"TikLite.com/pkg/pack"
	"TikLite.com/pkg/session"
	"github.com/cloudwego/hertz/pkg/app"
)

func ListComments(ctx context.Context, c *app.RequestContext) {
	videoId, err := pathId(c, "video")
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	var req ListCommentParam
	if err := c.Bind(&req); err != nil {
		pack.SendResponse(c, errno.ParamErr, nil)
		return
	}
	comments, err := service.NewCommentService(ctx).ListComments(videoId, session.CurrentUserID(c), req.Page, req.Size)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.SendResponse(c, errno.Success, comments)
}

func CreateComment(ctx context.Context, c *app.RequestContext) {
	videoId, err := pathId(c, "video")
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	var req CreateCommentParam
	if err := c.Bind(&req); err != nil {
		pack.SendResponse(c, errno.ParamErr, nil)
		return
	}
	comment, err := service.NewCommentService(ctx).CreateComment(session.CurrentUserID(c), videoId, req.Content)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.SendResponse(c, errno.Success, comment)
}

func DeleteComment(ctx context.Context, c *app.RequestContext) {
	commentId, err := pathId(c, "comment")
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	if err := service.NewCommentService(ctx).DeleteComment(session.CurrentUserID(c), commentId); err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.SendResponse(c, errno.Success, nil)
}

// LikeComment 评论点赞切换
func LikeComment(ctx context.Context, c *app.RequestContext) {
	commentId, err := pathId(c, "comment")
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	state, err := service.NewToggleService(ctx).Toggle(session.CurrentUserID(c), commentId, model.KindCommentLike)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.SendResponse(c, errno.Success, state)
}
