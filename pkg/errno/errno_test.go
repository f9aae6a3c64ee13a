package errno

import (
	"errors"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestConvertErr(t *testing.T) {
	assert.Equal(t, Success, ConvertErr(nil))
	assert.Equal(t, ParamErr, ConvertErr(ParamErr))

	wrapped := pkgerrors.Wrap(NotFoundErr, "video 42")
	assert.Equal(t, NotFoundErr, ConvertErr(wrapped))

	internal := ConvertErr(errors.New("dial tcp 10.0.0.1:3306: connection refused"))
	assert.Equal(t, int64(ServiceErrCode), internal.ErrCode)
	assert.NotContains(t, internal.ErrMsg, "10.0.0.1")
}

func TestWithMessageKeepsCode(t *testing.T) {
	e := ParamErr.WithMessage("title is required")
	assert.Equal(t, int64(ParamErrCode), e.ErrCode)
	assert.Equal(t, "title is required", e.ErrMsg)
	assert.True(t, Is(e, ParamErr))
	assert.False(t, Is(e, NotFoundErr))
	assert.False(t, Is(errors.New("x"), ParamErr))
}
