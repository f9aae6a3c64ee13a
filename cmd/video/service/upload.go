package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"TikLite.com/cmd/model"
	"TikLite.com/cmd/video/dal/db"
	"TikLite.com/config"
	"TikLite.com/pkg/constants"
	"TikLite.com/pkg/errno"
	"TikLite.com/pkg/mq"
	"TikLite.com/pkg/oss"
	"TikLite.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type UploadRequest struct {
	UserId      int64
	Title       string
	Description string
	Duration    int64 // 秒，<=0时由ffprobe读取
	ContentType string
	Size        int64
	Body        io.Reader
}

type UploadVideoService struct {
	ctx context.Context
}

func NewUploadVideoService(ctx context.Context) *UploadVideoService {
	return &UploadVideoService{ctx: ctx}
}

func maxUploadSize() int64 {
	if n := config.ConfigInfo.Upload.MaxSize; n > 0 {
		return n
	}
	return constants.MaxUploadSize
}

func validateUpload(req *UploadRequest) error {
	if req.UserId <= 0 {
		return errno.AuthorizationErr
	}
	if !strings.HasPrefix(req.ContentType, "video/") {
		return errno.ParamErr.WithMessage("file must be a video")
	}
	if req.Size > maxUploadSize() {
		return errno.ParamErr.WithMessage(fmt.Sprintf("video must be smaller than %dMB", maxUploadSize()>>20))
	}
	if utils.IsBlank(req.Title) {
		return errno.ParamErr.WithMessage("title is required")
	}
	if utils.RuneLen(req.Title) > constants.MaxTitleLength {
		return errno.ParamErr.WithMessage("title is too long")
	}
	if utils.RuneLen(req.Description) > constants.MaxDescriptionLen {
		return errno.ParamErr.WithMessage("description is too long")
	}
	return nil
}

// Upload 落盘、探测时长、截封面、上传对象存储，最后写入视频记录
func (s *UploadVideoService) Upload(req *UploadRequest) (*model.Video, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if err := validateUpload(req); err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errno.UploadErr.WithMessage("object storage is not configured")
	}

	workDir, err := os.MkdirTemp(config.ConfigInfo.Upload.TempDir, "upload-*")
	if err != nil {
		hlog.CtxErrorf(s.ctx, "create temp dir failed: %v", err)
		return nil, errno.UploadErr
	}
	defer os.RemoveAll(workDir)

	path, err := s.spool(workDir, req.Body)
	if err != nil {
		return nil, err
	}

	duration := req.Duration
	if duration <= 0 {
		if duration, err = prober.Duration(path); err != nil {
			hlog.CtxWarnf(s.ctx, "probe duration failed: %v", err)
			duration = 0
		}
	}

	if err := store.EnsureBucket(s.ctx); err != nil {
		hlog.CtxErrorf(s.ctx, "ensure bucket failed: %v", err)
		return nil, errno.UploadErr
	}
	now := time.Now()
	objectName := oss.VideoObjectName(now)
	videoUrl, err := store.FPutObject(s.ctx, objectName, path, req.ContentType)
	if err != nil {
		hlog.CtxErrorf(s.ctx, "upload video object failed: %v", err)
		return nil, errno.UploadErr
	}

	video := &model.Video{
		VideoId:     utils.GenerateID(),
		UserId:      req.UserId,
		Title:       req.Title,
		Description: req.Description,
		VideoUrl:    videoUrl,
		ObjectName:  objectName,
		Duration:    duration,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	video.CoverUrl = s.uploadCover(path, workDir, video.VideoId)

	if err := db.InsertVideo(s.ctx, video); err != nil {
		s.removeObjects(video)
		return nil, translate(s.ctx, err)
	}
	hlog.CtxInfof(s.ctx, "video %d uploaded by user %d", video.VideoId, video.UserId)

	publishVideo(s.ctx, &mq.VideoEvent{
		Type:        mq.EventCreated,
		VideoID:     video.VideoId,
		UserID:      video.UserId,
		Title:       video.Title,
		Description: video.Description,
		CreatedAt:   video.CreatedAt.UnixMilli(),
	})
	invalidateExplore(s.ctx)
	return video, nil
}

func (s *UploadVideoService) spool(dir string, body io.Reader) (string, error) {
	f, err := os.CreateTemp(dir, "video-*"+constants.VideoObjectSuffix)
	if err != nil {
		hlog.CtxErrorf(s.ctx, "create temp file failed: %v", err)
		return "", errno.UploadErr
	}
	defer f.Close()
	limit := maxUploadSize()
	n, err := io.Copy(f, io.LimitReader(body, limit+1))
	if err != nil {
		hlog.CtxErrorf(s.ctx, "spool upload failed: %v", err)
		return "", errno.UploadErr
	}
	if n == 0 {
		return "", errno.ParamErr.WithMessage("video file is empty")
	}
	if n > limit {
		return "", errno.ParamErr.WithMessage(fmt.Sprintf("video must be smaller than %dMB", limit>>20))
	}
	return f.Name(), nil
}

// uploadCover 封面失败不影响视频发布
func (s *UploadVideoService) uploadCover(videoPath, dir string, videoId int64) string {
	coverPath, err := prober.Cover(videoPath, dir)
	if err != nil {
		hlog.CtxWarnf(s.ctx, "extract cover of %d failed: %v", videoId, err)
		return ""
	}
	name := fmt.Sprintf("%s%d.jpg", constants.CoverObjectPrefix, videoId)
	url, err := store.FPutObject(s.ctx, name, coverPath, "image/jpeg")
	if err != nil {
		hlog.CtxWarnf(s.ctx, "upload cover of %d failed: %v", videoId, err)
		return ""
	}
	return url
}

func (s *UploadVideoService) removeObjects(video *model.Video) {
	if err := store.RemoveObject(s.ctx, video.ObjectName); err != nil {
		hlog.CtxWarnf(s.ctx, "remove object %s failed: %v", video.ObjectName, err)
	}
	if cover := store.ObjectNameFromURL(video.CoverUrl); cover != "" {
		if err := store.RemoveObject(s.ctx, cover); err != nil {
			hlog.CtxWarnf(s.ctx, "remove cover %s failed: %v", cover, err)
		}
	}
}
