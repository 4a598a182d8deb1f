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
	"strings"

	"github.com/ecodeclub/uniform/config"
	"github.com/ecodeclub/uniform/internal/notification"
	"github.com/ecodeclub/uniform/internal/order"
	"github.com/ecodeclub/uniform/internal/payment"
	"github.com/ecodeclub/uniform/internal/pkg/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/server/egin"
)

func initGinxServer(
	orderHdl *order.Handler,
	payHdl *payment.Handler,
	notifyHdl *notification.Handler,
	metrics *middleware.MetricsBuilder,
) *egin.Component {
	res := egin.Load("server.web").Build()
	res.Use(metrics.Build())
	res.Use(corsMiddleware("server.web.cors"))
	res.GET("/hello", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "hello, world!")
	})
	// 学生端没有登录态, 全部是公开接口
	orderHdl.PublicRoutes(res.Engine)
	payHdl.PublicRoutes(res.Engine)
	notifyHdl.PublicRoutes(res.Engine)
	return res
}

func corsMiddleware(key string) gin.HandlerFunc {
	var cfg config.CORSConfig
	_ = econf.UnmarshalKey(key, &cfg)
	return cors.New(cors.Config{
		AllowCredentials: true,
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowOriginFunc: func(origin string) bool {
			if strings.HasPrefix(origin, "http://localhost") {
				return true
			}
			for _, allowed := range cfg.AllowOrigins {
				if strings.Contains(origin, allowed) {
					return true
				}
			}
			return false
		},
	})
}
