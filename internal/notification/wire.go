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

package notification

import (
	"github.com/ecodeclub/uniform/internal/notification/internal/service"
	"github.com/ecodeclub/uniform/internal/notification/internal/web"
	"github.com/google/wire"
	"github.com/gotomicro/ego/core/econf"
)

var ProviderSet = wire.NewSet(
	initHub,
	initHandlerConfig,
	web.NewHandler)

func InitModule() *Module {
	wire.Build(ProviderSet, wire.Struct(new(Module), "*"))
	return new(Module)
}

func initHub() service.Service {
	return service.NewHub()
}

func initHandlerConfig() web.Config {
	var cfg web.Config
	_ = econf.UnmarshalKey("notification.websocket", &cfg)
	return cfg
}
