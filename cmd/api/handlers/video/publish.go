package handlers

import (
	"context"

	"TikLite.com/cmd/video/service"
	"TikLite.com/pkg/errno"
	"TikLite.com/pkg/pack"
	"TikLite.com/pkg/session"
	"TikLite.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// Publish multipart上传：file、title、description、duration(可选)
func Publish(ctx context.Context, c *app.RequestContext) {
	file, err := c.FormFile("file")
	if err != nil {
		pack.SendResponse(c, errno.ParamErr.WithMessage("video file is required"), nil)
		return
	}
	f, err := file.Open()
	if err != nil {
		hlog.CtxErrorf(ctx, "open upload failed: %v", err)
		pack.SendResponse(c, errno.UploadErr, nil)
		return
	}
	defer f.Close()

	var duration int64
	if raw := c.PostForm("duration"); raw != "" {
		if duration, err = utils.ConvertStringToInt64(raw); err != nil || duration < 0 {
			pack.SendResponse(c, errno.ParamErr.WithMessage("invalid duration"), nil)
			return
		}
	}
	video, err := service.NewUploadVideoService(ctx).Upload(&service.UploadRequest{
		UserId:      session.CurrentUserID(c),
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Duration:    duration,
		ContentType: file.Header.Get("Content-Type"),
		Size:        file.Size,
		Body:        f,
	})
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.SendResponse(c, errno.Success, video)
}

func Delete(ctx context.Context, c *app.RequestContext) {
	id, err := videoId(c)
	if err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	if err := service.NewDeleteVideoService(ctx).DeleteVideo(session.CurrentUserID(c), id); err != nil {
		pack.SendResponse(c, err, nil)
		return
	}
	pack.SendResponse(c, errno.Success, nil)
}
