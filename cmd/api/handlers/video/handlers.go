package handlers

import (
	"TikLite.com/pkg/errno"
	"TikLite.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
)

type FeedParam struct {
	Before int64 `query:"before"` // 毫秒时间戳
	Limit  int   `query:"limit"`
}

type ExploreParam struct {
	Limit int `query:"limit"`
}

type LikeParam struct {
	Like *bool `json:"like" form:"like" query:"like"`
}

type SearchParam struct {
	Q string `query:"q"`
}

func videoId(c *app.RequestContext) (int64, error) {
	id, err := utils.ConvertStringToInt64(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, errno.ParamErr.WithMessage("invalid video id")
	}
	return id, nil
}
