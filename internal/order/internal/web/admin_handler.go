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
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/uniform/internal/order/internal/domain"
	"github.com/ecodeclub/uniform/internal/order/internal/service"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	svc service.Service
}

func NewAdminHandler(svc service.Service) *AdminHandler {
	return &AdminHandler{
		svc: svc,
	}
}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/order")
	g.POST("/list", ginx.B[StudentIDReq](h.List))
	g.POST("/edit", ginx.B[EditOrderReq](h.Edit))
	g.POST("/supplement", ginx.B[SupplementReq](h.Supplement))
	g.POST("/delete", ginx.B[OrderIDReq](h.Delete))
}

func (h *AdminHandler) List(ctx *ginx.Context, req StudentIDReq) (ginx.Result, error) {
	list, err := h.svc.ListStudentOrders(ctx.Request.Context(), req.StudentID)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: slice.Map(list, func(idx int, src domain.Order) Order {
			return toOrderVO(src)
		}),
	}, nil
}

func (h *AdminHandler) Edit(ctx *ginx.Context, req EditOrderReq) (ginx.Result, error) {
	res, err := h.svc.ApplyEdit(ctx.Request.Context(), req.OrderID, req.quantities())
	if err != nil {
		return bizErrorResult(err)
	}
	return ginx.Result{
		Data: EditOrderResp{
			Order:         toOrderVO(res.Order),
			Supplementary: res.Supplementary,
			Noop:          res.Noop,
		},
	}, nil
}

func (h *AdminHandler) Supplement(ctx *ginx.Context, req SupplementReq) (ginx.Result, error) {
	o, err := h.svc.CreateSupplementary(ctx.Request.Context(), req.StudentID, req.quantities())
	if err != nil {
		return bizErrorResult(err)
	}
	return ginx.Result{Data: toOrderVO(o)}, nil
}

func (h *AdminHandler) Delete(ctx *ginx.Context, req OrderIDReq) (ginx.Result, error) {
	err := h.svc.DeleteOrder(ctx.Request.Context(), req.OrderID)
	if err != nil {
		return bizErrorResult(err)
	}
	return ginx.Result{Msg: "OK"}, nil
}
