package web

import (
	"errors"

	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/uniform/internal/order/internal/domain"
	"github.com/ecodeclub/uniform/internal/order/internal/errs"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
)

// bizErrorResult 业务错误直接把原因返回给前端, 其余按系统错误处理
func bizErrorResult(err error) (ginx.Result, error) {
	switch {
	case errors.Is(err, domain.ErrInvalidState):
		return ginx.Result{Code: errs.InvalidState.Code, Msg: err.Error()}, nil
	case errors.Is(err, domain.ErrNotFound):
		return ginx.Result{Code: errs.NotFound.Code, Msg: err.Error()}, nil
	default:
		return systemErrorResult, err
	}
}
