package pack

import (
	"TikLite.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Response struct {
	Code    int64       `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// SendResponse pack response
func SendResponse(c *app.RequestContext, err error, data interface{}) {
	Err := errno.ConvertErr(err)
	c.JSON(StatusFor(Err), Response{
		Code:    Err.ErrCode,
		Message: Err.ErrMsg,
		Data:    data,
	})
}

// StatusFor 业务错误码映射到HTTP状态码
func StatusFor(e errno.ErrNo) int {
	switch e.ErrCode {
	case errno.SuccessCode:
		return consts.StatusOK
	case errno.ParamErrCode, errno.UploadErrCode:
		return consts.StatusBadRequest
	case errno.AuthorizationErrCode, errno.AuthorizationFailedCode, errno.TokenInvailedErrCode:
		return consts.StatusUnauthorized
	case errno.NotFoundErrCode:
		return consts.StatusNotFound
	case errno.UserAlreadyExistErrCode:
		return consts.StatusConflict
	case errno.RateLimitErrCode:
		return consts.StatusTooManyRequests
	default:
		return consts.StatusInternalServerError
	}
}
