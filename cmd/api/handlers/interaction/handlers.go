package handlers

import (
	"TikLite.com/pkg/errno"
	"TikLite.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
)

type CreateCommentParam struct {
	Content string `json:"content" form:"content"`
}

type ListCommentParam struct {
	Page int64 `query:"page"`
	Size int64 `query:"size"`
}

func pathId(c *app.RequestContext, what string) (int64, error) {
	id, err := utils.ConvertStringToInt64(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, errno.ParamErr.WithMessage("invalid " + what + " id")
	}
	return id, nil
}
