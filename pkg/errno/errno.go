package errno

import (
	"errors"
	"fmt"
)

const (
	SuccessCode             = 0
	ServiceErrCode          = 10001
	ParamErrCode            = 10002
	AuthorizationErrCode    = 10003
	NotFoundErrCode         = 10004
	UserAlreadyExistErrCode = 10005
	AuthorizationFailedCode = 10006
	UploadErrCode           = 10007
	RateLimitErrCode        = 10008
	TokenInvailedErrCode    = 10009
)

type ErrNo struct {
	ErrCode int64
	ErrMsg  string
}

func (e ErrNo) Error() string {
	return fmt.Sprintf("err_code=%d, err_msg=%s", e.ErrCode, e.ErrMsg)
}

func NewErrNo(code int64, msg string) ErrNo {
	return ErrNo{code, msg}
}

// WithMessage 保留错误码，替换返回给客户端的信息
func (e ErrNo) WithMessage(msg string) ErrNo {
	e.ErrMsg = msg
	return e
}

var (
	Success                = NewErrNo(SuccessCode, "Success")
	ServiceErr             = NewErrNo(ServiceErrCode, "Service is unable to start successfully")
	ParamErr               = NewErrNo(ParamErrCode, "Wrong Parameter has been given")
	AuthorizationErr       = NewErrNo(AuthorizationErrCode, "Authentication required")
	NotFoundErr            = NewErrNo(NotFoundErrCode, "Resource not found")
	UserAlreadyExistErr    = NewErrNo(UserAlreadyExistErrCode, "User already exists")
	AuthorizationFailedErr = NewErrNo(AuthorizationFailedCode, "Authorization failed")
	UploadErr              = NewErrNo(UploadErrCode, "Upload failed")
	RateLimitErr           = NewErrNo(RateLimitErrCode, "Too many requests")
	TokenInvailedErr       = NewErrNo(TokenInvailedErrCode, "Token is invalid or expired")
)

// ConvertErr convert error to Errno
func ConvertErr(err error) ErrNo {
	if err == nil {
		return Success
	}
	Err := ErrNo{}
	if errors.As(err, &Err) {
		return Err
	}
	// 内部错误不透传给客户端
	return ServiceErr.WithMessage("Internal service error")
}

// Is 判断err是否携带指定错误码
func Is(err error, target ErrNo) bool {
	Err := ErrNo{}
	if errors.As(err, &Err) {
		return Err.ErrCode == target.ErrCode
	}
	return false
}
