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

package paystatus

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/fasthttp/websocket"
)

var _ PushChannel = &WebsocketChannel{}

// WebsocketChannel 订阅服务端 /pay/ws 推送
type WebsocketChannel struct {
	endpoint string
	dialer   *websocket.Dialer
}

// NewWebsocketChannel baseURL 形如 http://host:port, 会被转换成 ws 协议
func NewWebsocketChannel(baseURL string) *WebsocketChannel {
	endpoint := strings.TrimSuffix(baseURL, "/")
	switch {
	case strings.HasPrefix(endpoint, "https://"):
		endpoint = "wss://" + strings.TrimPrefix(endpoint, "https://")
	case strings.HasPrefix(endpoint, "http://"):
		endpoint = "ws://" + strings.TrimPrefix(endpoint, "http://")
	}
	return &WebsocketChannel{
		endpoint: endpoint + "/pay/ws",
		dialer:   websocket.DefaultDialer,
	}
}

func (w *WebsocketChannel) Dial(ctx context.Context, sessionID string) (Subscription, error) {
	u := w.endpoint + "?client_sn=" + url.QueryEscape(sessionID)
	conn, resp, err := w.dialer.DialContext(ctx, u, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}
	return &wsSubscription{conn: conn}, nil
}

type wsSubscription struct {
	conn      *websocket.Conn
	closeOnce sync.Once
}

// Receive 在连接关闭之前一直阻塞, 关闭连接可以让它立刻返回
func (s *wsSubscription) Receive(_ context.Context) (Message, error) {
	var msg Message
	err := s.conn.ReadJSON(&msg)
	return msg, err
}

func (s *wsSubscription) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.conn.Close()
	})
	return err
}
