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
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/uniform/internal/notification/internal/domain"
	"github.com/ecodeclub/uniform/internal/notification/internal/service"
	"github.com/fasthttp/websocket"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

type Config struct {
	WriteTimeout time.Duration `yaml:"writeTimeout"`
	// CheckOrigin 为 false 时允许任意来源
	CheckOrigin bool `yaml:"checkOrigin"`
}

var _ ginx.Handler = &Handler{}

// Handler 支付页面通过 websocket 等待支付结果
type Handler struct {
	svc          service.Service
	upgrader     websocket.Upgrader
	writeTimeout time.Duration
	l            *elog.Component
}

func NewHandler(svc service.Service, cfg Config) *Handler {
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 5 * time.Second
	}
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	if !cfg.CheckOrigin {
		upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	}
	return &Handler{
		svc:          svc,
		upgrader:     upgrader,
		writeTimeout: cfg.WriteTimeout,
		l:            elog.DefaultLogger.With(elog.FieldComponent("notification")),
	}
}

func (h *Handler) PrivateRoutes(_ *gin.Engine) {}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	server.GET("/pay/ws", ginx.W(h.Subscribe))
}

func (h *Handler) Subscribe(ctx *ginx.Context) (ginx.Result, error) {
	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		// Upgrade 失败时已经写回了错误响应
		h.l.Warn("websocket 升级失败", elog.FieldErr(err))
		return ginx.Result{}, ginx.ErrNoResponse
	}
	sessionID := ctx.Request.URL.Query().Get("client_sn")
	if sessionID == "" {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "client_sn required"),
			time.Now().Add(h.writeTimeout))
		_ = conn.Close()
		return ginx.Result{}, ginx.ErrNoResponse
	}

	sub := newWsSubscriber(conn, h.writeTimeout)
	if evicted := h.svc.Subscribe(sessionID, sub); evicted != nil {
		h.l.Info("同一支付会话建立了新连接, 旧连接已关闭", elog.String("client_sn", sessionID))
	}
	defer func() {
		h.svc.Unsubscribe(sessionID, sub)
		_ = sub.Close()
	}()

	err = sub.Send(ctx.Request.Context(), domain.Message{
		Type: domain.MessageTypeConnectionEstablished,
		Data: map[string]any{"client_sn": sessionID},
	})
	if err != nil {
		return ginx.Result{}, ginx.ErrNoResponse
	}
	// 客户端不会发业务消息, 读取只是为了感知断开
	for {
		if _, _, err = conn.ReadMessage(); err != nil {
			return ginx.Result{}, ginx.ErrNoResponse
		}
	}
}

// wsSubscriber 同一个连接上的写操作需要串行
type wsSubscriber struct {
	conn         *websocket.Conn
	mu           sync.Mutex
	writeTimeout time.Duration
	closeOnce    sync.Once
	closeErr     error
}

func newWsSubscriber(conn *websocket.Conn, writeTimeout time.Duration) *wsSubscriber {
	return &wsSubscriber{conn: conn, writeTimeout: writeTimeout}
}

func (s *wsSubscriber) Send(_ context.Context, msg domain.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err = s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout)); err != nil {
		return err
	}
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

func (s *wsSubscriber) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.conn.Close()
	})
	return s.closeErr
}
