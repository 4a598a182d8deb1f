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

package ioc

import (
	"net/http"

	"github.com/ecodeclub/uniform/internal/order"
	"github.com/ecodeclub/uniform/internal/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/server/egin"
)

type AdminServer *egin.Component

// InitAdminServer 管理端只应部署在内网, 登录校验由网关负责
func InitAdminServer(orderAdminHdl *order.AdminHandler, metrics *middleware.MetricsBuilder) AdminServer {
	res := egin.Load("server.admin").Build()
	res.Use(metrics.Build())
	res.Use(corsMiddleware("server.admin.cors"))
	res.GET("/hello", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "hello, world!")
	})
	orderAdminHdl.PrivateRoutes(res.Engine)
	return res
}
