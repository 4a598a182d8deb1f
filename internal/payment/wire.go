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

//go:build wireinject

package payment

import (
	"sync"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/uniform/internal/notification"
	"github.com/ecodeclub/uniform/internal/order"
	"github.com/ecodeclub/uniform/internal/payment/internal/event"
	"github.com/ecodeclub/uniform/internal/payment/internal/job"
	"github.com/ecodeclub/uniform/internal/payment/internal/repository/cache"
	"github.com/ecodeclub/uniform/internal/payment/internal/repository/dao"
	"github.com/ecodeclub/uniform/internal/payment/internal/service"
	"github.com/ecodeclub/uniform/internal/payment/internal/web"
	"github.com/ecodeclub/uniform/internal/payment/ioc"
	"github.com/ecodeclub/uniform/internal/pkg/sequencenumber"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
	"github.com/gotomicro/ego/core/econf"
)

var ProviderSet = wire.NewSet(
	initTerminalDAO,
	ioc.InitGatewayConfig,
	ioc.InitVerifier,
	ioc.InitGatewayClient,
	cache.NewPrepayLockCache,
	event.NewPaymentEventProducer,
	sequencenumber.NewGenerator,
	service.NewService,
	initHandler,
	initSyncPendingSessionsJob)

func InitModule(db *egorm.Component,
	c ecache.Cache,
	q mq.MQ,
	om *order.Module,
	nm *notification.Module) (*Module, error) {
	wire.Build(ProviderSet,
		wire.FieldsOf(new(*order.Module), "Svc"),
		wire.FieldsOf(new(*notification.Module), "Svc"),
		wire.Struct(new(Module), "*"))
	return new(Module), nil
}

var once = &sync.Once{}

func initTerminalDAO(db *egorm.Component) dao.TerminalDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewTerminalGORMDAO(db)
}

func initHandler(svc service.Service) *web.Handler {
	return web.NewHandler(svc, econf.GetBool("payment.mockCallback"))
}

func initSyncPendingSessionsJob(svc service.Service) *job.SyncPendingSessionsJob {
	minutes := econf.GetInt64("cron.syncPendingSessions.minutes")
	limit := econf.GetInt("cron.syncPendingSessions.limit")
	return job.NewSyncPendingSessionsJob(svc, minutes, limit)
}
