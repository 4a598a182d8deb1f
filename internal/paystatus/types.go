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

import "context"

const (
	MessageTypePaymentSuccess        = "PAYMENT_SUCCESS"
	MessageTypeConnectionEstablished = "CONNECTION_ESTABLISHED"

	StatusPaid     = "PAID"
	StatusCanceled = "PAY_CANCELED"
)

// Message 推送通道上的一条消息
type Message struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data,omitempty"`
}

// Result 一次主动查询的结果
type Result struct {
	SessionID string
	Status    string
	ExpireAt  int64
	Payload   map[string]any
}

func (r Result) IsPaid() bool {
	return r.Status == StatusPaid
}

//go:generate mockgen -source=./types.go -package=paystatusmocks -destination=./mocks/paystatus.mock.go PushChannel Subscription StatusChecker
type PushChannel interface {
	Dial(ctx context.Context, sessionID string) (Subscription, error)
}

type Subscription interface {
	// Receive 阻塞直到收到消息; 连接关闭后返回 error
	Receive(ctx context.Context) (Message, error)
	Close() error
}

type StatusChecker interface {
	Check(ctx context.Context, sessionID string) (Result, error)
}
