package service

import (
	"context"

	"TikLite.com/pkg/mq"
	"TikLite.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// ObjectStore 视频与封面的对象存储
type ObjectStore interface {
	EnsureBucket(ctx context.Context) error
	FPutObject(ctx context.Context, objectName, path, contentType string) (string, error)
	RemoveObject(ctx context.Context, objectName string) error
	ObjectNameFromURL(url string) string
}

// Prober 读取视频时长并截取封面
type Prober interface {
	Duration(path string) (int64, error)
	Cover(videoPath, outputDir string) (string, error)
}

// Searcher 全文检索，返回按相关度排序的ID
type Searcher interface {
	SearchVideos(ctx context.Context, text string, size int) ([]int64, error)
	SearchUsers(ctx context.Context, text string, size int) ([]int64, error)
}

// ViewBuffer 播放量缓冲
type ViewBuffer interface {
	Incr(ctx context.Context, videoId int64) (int64, error)
}

// ExploreCache 热门列表缓存
type ExploreCache interface {
	GetExplore(ctx context.Context, limit int) ([]int64, bool, error)
	CacheExplore(ctx context.Context, limit int, ids []int64) error
	InvalidateExplore(ctx context.Context) error
}

type ffmpegProber struct{}

func (ffmpegProber) Duration(path string) (int64, error) { return utils.ProbeDuration(path) }

func (ffmpegProber) Cover(videoPath, outputDir string) (string, error) {
	return utils.GetVideoThumbnail(videoPath, outputDir)
}

// Deps 均为可选，nil表示对应功能未启用
type Deps struct {
	Producer mq.MessageProducer
	Store    ObjectStore
	Search   Searcher
	Views    ViewBuffer
	Explore  ExploreCache
	Prober   Prober
}

var (
	producer mq.MessageProducer
	store    ObjectStore
	searcher Searcher
	views    ViewBuffer
	explore  ExploreCache
	prober   Prober = ffmpegProber{}
)

func Init(d Deps) {
	producer = d.Producer
	store = d.Store
	searcher = d.Search
	views = d.Views
	explore = d.Explore
	if d.Prober != nil {
		prober = d.Prober
	}
}

func publishVideo(ctx context.Context, event *mq.VideoEvent) {
	if producer == nil {
		return
	}
	if err := producer.PublishVideoEvent(ctx, event); err != nil {
		hlog.CtxErrorf(ctx, "publish video event %s of %d failed: %v", event.Type, event.VideoID, err)
	}
}

func invalidateExplore(ctx context.Context) {
	if explore == nil {
		return
	}
	if err := explore.InvalidateExplore(ctx); err != nil {
		hlog.CtxErrorf(ctx, "invalidate explore cache failed: %v", err)
	}
}
