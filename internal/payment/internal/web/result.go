// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package web

import (
	"errors"

	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/uniform/internal/order"
	"github.com/ecodeclub/uniform/internal/payment/internal/domain"
	"github.com/ecodeclub/uniform/internal/payment/internal/errs"
	"github.com/gotomicro/ego/core/elog"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
)

func (h *Handler) bizErrorResult(err error) (ginx.Result, error) {
	switch {
	case errors.Is(err, order.ErrInvalidState):
		return ginx.Result{Code: errs.InvalidState.Code, Msg: err.Error()}, nil
	case errors.Is(err, order.ErrNotFound), errors.Is(err, domain.ErrSessionNotFound):
		return ginx.Result{Code: errs.NotFound.Code, Msg: err.Error()}, nil
	case errors.Is(err, domain.ErrDuplicatePrepay):
		return ginx.Result{Code: errs.DuplicatePrepay.Code, Msg: errs.DuplicatePrepay.Msg}, nil
	case errors.Is(err, domain.ErrGateway):
		// 网关的原因对用户有帮助, 例如金额不正确
		h.l.Warn("调用支付网关失败", elog.FieldErr(err))
		return ginx.Result{Code: errs.GatewayError.Code, Msg: err.Error()}, nil
	default:
		return systemErrorResult, err
	}
}
