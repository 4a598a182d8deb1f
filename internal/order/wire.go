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

package order

import (
	"sync"

	"github.com/ecodeclub/uniform/internal/order/internal/repository"
	"github.com/ecodeclub/uniform/internal/order/internal/repository/dao"
	"github.com/ecodeclub/uniform/internal/order/internal/service"
	"github.com/ecodeclub/uniform/internal/order/internal/web"
	"github.com/ecodeclub/uniform/internal/pkg/snowflake"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
	"github.com/gotomicro/ego/core/econf"
)

var ProviderSet = wire.NewSet(
	InitTablesOnce,
	initOrderNoGenerator,
	repository.NewRepository,
	service.NewService,
	web.NewHandler,
	web.NewAdminHandler)

func InitModule(db *egorm.Component) (*Module, error) {
	wire.Build(ProviderSet, wire.Struct(new(Module), "*"))
	return new(Module), nil
}

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.OrderDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewOrderGORMDAO(db)
}

func initOrderNoGenerator() (*snowflake.OrderNoGenerator, error) {
	return snowflake.NewOrderNoGenerator(int64(econf.GetInt("order.nodeId")), "UO")
}
