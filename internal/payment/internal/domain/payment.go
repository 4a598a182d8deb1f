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

package domain

import (
	"errors"
	"time"
)

var (
	ErrGateway           = errors.New("支付网关业务失败")
	ErrSignatureInvalid  = errors.New("回调签名校验失败")
	ErrMalformedCallback = errors.New("回调缺少必要字段")
	ErrSessionNotFound   = errors.New("支付会话不存在")
	ErrDuplicatePrepay   = errors.New("重复的预下单请求")
)

// SessionTTL 支付会话从创建开始计算的有效期
const SessionTTL = 5 * time.Minute

type PayWay string

const (
	PayWayAlipay PayWay = "2"
	PayWayWechat PayWay = "3"
)

func (p PayWay) OrDefault() PayWay {
	if p == PayWayAlipay || p == PayWayWechat {
		return p
	}
	return PayWayWechat
}

// GatewayStatus 网关报告的订单状态, 未识别的值原样透传
type GatewayStatus string

const (
	GatewayStatusPaid     GatewayStatus = "PAID"
	GatewayStatusCreated  GatewayStatus = "CREATED"
	GatewayStatusCanceled GatewayStatus = "PAY_CANCELED"
	GatewayStatusPayError GatewayStatus = "PAY_ERROR"
	GatewayStatusUnknown  GatewayStatus = ""
)

func (s GatewayStatus) IsPaid() bool {
	return s == GatewayStatusPaid
}

// Session 支付会话, 不单独落库, 状态体现在所属订单上
type Session struct {
	ID             string
	StudentID      int64
	OrderIDs       []int64
	TotalAmount    int64
	Subject        string
	QRCode         string
	QRCodeImageURL string
	GatewaySN      string
	Ctime          int64
}

func (s Session) ExpireAt() int64 {
	return s.Ctime + SessionTTL.Milliseconds()
}

// Confirmation 一次来自网关的支付结果, 回调或者主动查询都会产生
type Confirmation struct {
	SessionID     string
	Status        GatewayStatus
	TransactionID string
	// 毫秒
	FinishTime  int64
	TotalAmount int64
	// 回调原始内容, 推送给客户端
	Payload map[string]any
}

type CallbackResult struct {
	SessionID string
	Status    GatewayStatus
	// 本次回调完成了订单状态迁移
	Transitioned bool
	Notified     bool
}

type StatusResult struct {
	SessionID string
	Status    GatewayStatus
	ExpireAt  int64
}
