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

package payment

import (
	"github.com/ecodeclub/uniform/internal/payment/internal/domain"
	"github.com/ecodeclub/uniform/internal/payment/internal/event"
	"github.com/ecodeclub/uniform/internal/payment/internal/job"
	"github.com/ecodeclub/uniform/internal/payment/internal/service"
	"github.com/ecodeclub/uniform/internal/payment/internal/web"
)

type (
	Handler                = web.Handler
	Service                = service.Service
	Session                = domain.Session
	GatewayStatus          = domain.GatewayStatus
	PayWay                 = domain.PayWay
	SucceededEvent         = event.PaymentSucceededEvent
	SyncPendingSessionsJob = job.SyncPendingSessionsJob
)

const (
	PayWayAlipay = domain.PayWayAlipay
	PayWayWechat = domain.PayWayWechat

	GatewayStatusPaid     = domain.GatewayStatusPaid
	GatewayStatusCreated  = domain.GatewayStatusCreated
	GatewayStatusCanceled = domain.GatewayStatusCanceled

	SucceededEventName = event.PaymentSucceededEventName
	CallbackAck        = web.CallbackAck
)

var (
	ErrGateway          = domain.ErrGateway
	ErrSignatureInvalid = domain.ErrSignatureInvalid
	ErrSessionNotFound  = domain.ErrSessionNotFound
)

type Module struct {
	Hdl                    *Handler
	Svc                    Service
	SyncPendingSessionsJob *SyncPendingSessionsJob
}
