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
	"fmt"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/uniform/internal/order/internal/domain"
	"github.com/ecodeclub/uniform/internal/order/internal/service"
	"github.com/gin-gonic/gin"
)

var _ ginx.Handler = &Handler{}

// Handler 学生端, 通过身份证号查询订单
type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PrivateRoutes(_ *gin.Engine) {}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	server.POST("/student/orders", ginx.B[StudentReq](h.StudentOrders))
}

func (h *Handler) StudentOrders(ctx *ginx.Context, req StudentReq) (ginx.Result, error) {
	if req.IDCard == "" {
		return bizErrorResult(fmt.Errorf("%w: 身份证号为空", domain.ErrNotFound))
	}
	stu, err := h.svc.FindStudentByIDCard(ctx.Request.Context(), req.IDCard)
	if err != nil {
		return bizErrorResult(err)
	}
	orders, err := h.svc.ListStudentOrders(ctx.Request.Context(), stu.ID)
	if err != nil {
		return systemErrorResult, fmt.Errorf("查询学生订单失败: %w", err)
	}
	return ginx.Result{
		Data: StudentOrdersResp{
			Student: Student{
				ID:       stu.ID,
				SchoolID: stu.SchoolID,
				ClassID:  stu.ClassID,
				Name:     stu.Name,
			},
			Orders: slice.Map(orders, func(idx int, src domain.Order) Order {
				return toOrderVO(src)
			}),
		},
	}, nil
}
