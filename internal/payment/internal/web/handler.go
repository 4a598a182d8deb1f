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
	"io"
	"net/http"

	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/uniform/internal/payment/internal/domain"
	"github.com/ecodeclub/uniform/internal/payment/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

// CallbackAck 网关只认这个应答, 其它内容都会触发重试
const CallbackAck = "success"

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc service.Service
	// 只在测试环境打开
	mockCallback bool
	l            *elog.Component
}

func NewHandler(svc service.Service, mockCallback bool) *Handler {
	return &Handler{
		svc:          svc,
		mockCallback: mockCallback,
		l:            elog.DefaultLogger.With(elog.FieldComponent("payment.web")),
	}
}

func (h *Handler) PrivateRoutes(_ *gin.Engine) {}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	g := server.Group("/pay")
	g.POST("/prepay", ginx.B[PrepayReq](h.Prepay))
	g.GET("/status/:clientSn", ginx.W(h.Status))
	g.POST("/callback", ginx.W(h.Callback))
	if h.mockCallback {
		g.POST("/mock_cb", ginx.B[MockCallbackReq](h.MockCallback))
	}
}

func (h *Handler) Prepay(ctx *ginx.Context, req PrepayReq) (ginx.Result, error) {
	sess, err := h.svc.Prepay(ctx.Request.Context(), req.IDCard, domain.PayWay(req.PayWay))
	if err != nil {
		return h.bizErrorResult(err)
	}
	return ginx.Result{
		Data: PrepayResp{
			ClientSn:       sess.ID,
			QRCode:         sess.QRCode,
			QRCodeImageURL: sess.QRCodeImageURL,
			TotalAmount:    sess.TotalAmount,
			Subject:        sess.Subject,
			OrderIDs:       sess.OrderIDs,
			Ctime:          sess.Ctime,
			ExpireAt:       sess.ExpireAt(),
		},
	}, nil
}

func (h *Handler) Status(ctx *ginx.Context) (ginx.Result, error) {
	res, err := h.svc.OnClientPoll(ctx.Request.Context(), ctx.Context.Param("clientSn"))
	if err != nil {
		return h.bizErrorResult(err)
	}
	return ginx.Result{
		Data: StatusResp{
			ClientSn: res.SessionID,
			Status:   string(res.Status),
			Paid:     res.Status.IsPaid(),
			ExpireAt: res.ExpireAt,
		},
	}, nil
}

// Callback 签名基于原始请求体, 所以不能先绑定再校验
func (h *Handler) Callback(ctx *ginx.Context) (ginx.Result, error) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		ctx.String(http.StatusBadRequest, "bad request")
		return ginx.Result{}, ginx.ErrNoResponse
	}
	_, err = h.svc.OnGatewayCallback(ctx.Request.Context(), body, ctx.GetHeader("Authorization"))
	switch {
	case err == nil:
		ctx.String(http.StatusOK, CallbackAck)
	case errors.Is(err, domain.ErrSignatureInvalid):
		ctx.String(http.StatusUnauthorized, "invalid signature")
	case errors.Is(err, domain.ErrMalformedCallback):
		ctx.String(http.StatusBadRequest, "bad request")
	default:
		// 网关会重试
		h.l.Error("处理支付回调失败", elog.FieldErr(err))
		ctx.String(http.StatusInternalServerError, "error")
	}
	return ginx.Result{}, ginx.ErrNoResponse
}

func (h *Handler) MockCallback(ctx *ginx.Context, req MockCallbackReq) (ginx.Result, error) {
	res, err := h.svc.MockCallback(ctx.Request.Context(), req.ClientSn)
	if err != nil {
		return h.bizErrorResult(err)
	}
	return ginx.Result{
		Data: MockCallbackResp{
			Transitioned: res.Transitioned,
			Notified:     res.Notified,
		},
	}, nil
}
