package handlers

import (
	"TikLite.com/pkg/errno"
	"TikLite.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
)

type FollowParam struct {
	// 为空时切换，否则设置为指定状态
	Follow *bool `json:"follow" form:"follow" query:"follow"`
}

type ListParam struct {
	Page int64 `query:"page"`
	Size int64 `query:"size"`
}

func targetId(c *app.RequestContext) (int64, error) {
	id, err := utils.ConvertStringToInt64(c.Param("user"))
	if err != nil || id <= 0 {
		return 0, errno.ParamErr.WithMessage("invalid user id")
	}
	return id, nil
}
