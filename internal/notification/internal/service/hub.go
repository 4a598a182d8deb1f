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

package service

import (
	"context"
	"strconv"
	"sync"

	"github.com/ecodeclub/uniform/internal/notification/internal/domain"
	"github.com/gotomicro/ego/core/elog"
)

// Subscriber 一个等待支付结果的连接
type Subscriber interface {
	Send(ctx context.Context, msg domain.Message) error
	Close() error
}

//go:generate mockgen -source=./hub.go -package=notificationmocks -destination=../../mocks/notification.mock.go Service Subscriber
type Service interface {
	// Subscribe 每个会话只保留最新的订阅者, 返回被替换掉的订阅者
	Subscribe(sessionID string, sub Subscriber) Subscriber
	// Unsubscribe 只有 sub 仍然是当前订阅者时才会移除
	Unsubscribe(sessionID string, sub Subscriber) bool
	// Publish 返回消息是否送达, 没有订阅者或者发送失败都是 false
	Publish(ctx context.Context, sessionID string, msg domain.Message) bool
	Len() int
}

var _ Service = &Hub{}

type Hub struct {
	mu   sync.Mutex
	subs map[string]Subscriber
	l    *elog.Component
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]Subscriber),
		l:    elog.DefaultLogger.With(elog.FieldComponent("notification")),
	}
}

func (h *Hub) Subscribe(sessionID string, sub Subscriber) Subscriber {
	h.mu.Lock()
	evicted := h.subs[sessionID]
	h.subs[sessionID] = sub
	subscriberGauge.Set(float64(len(h.subs)))
	h.mu.Unlock()
	if evicted != nil && evicted != sub {
		_ = evicted.Close()
		return evicted
	}
	return nil
}

func (h *Hub) Unsubscribe(sessionID string, sub Subscriber) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if cur, ok := h.subs[sessionID]; !ok || cur != sub {
		return false
	}
	delete(h.subs, sessionID)
	subscriberGauge.Set(float64(len(h.subs)))
	return true
}

func (h *Hub) Publish(ctx context.Context, sessionID string, msg domain.Message) bool {
	h.mu.Lock()
	sub, ok := h.subs[sessionID]
	h.mu.Unlock()
	if !ok {
		h.l.Warn("支付页面不在线, 等待客户端轮询", elog.String("client_sn", sessionID))
		deliveryCounter.WithLabelValues(strconv.FormatBool(false)).Inc()
		return false
	}
	if err := sub.Send(ctx, msg); err != nil {
		h.l.Warn("推送支付结果失败",
			elog.FieldErr(err),
			elog.String("client_sn", sessionID))
		h.Unsubscribe(sessionID, sub)
		_ = sub.Close()
		deliveryCounter.WithLabelValues(strconv.FormatBool(false)).Inc()
		return false
	}
	deliveryCounter.WithLabelValues(strconv.FormatBool(true)).Inc()
	return true
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
