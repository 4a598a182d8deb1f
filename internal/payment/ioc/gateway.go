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
	"strings"

	"github.com/ecodeclub/uniform/internal/payment/internal/gateway"
	"github.com/ecodeclub/uniform/internal/payment/internal/repository/dao"
	"github.com/gotomicro/ego/core/econf"
)

func InitGatewayConfig() gateway.Config {
	var cfg gateway.Config
	err := econf.UnmarshalKey("payment.gateway", &cfg)
	if err != nil {
		panic(err)
	}
	return cfg
}

// InitVerifier 公钥错误时启动失败, 否则所有回调都会被拒绝.
// 没有配置公钥时使用网关公布的公钥
func InitVerifier(cfg gateway.Config) *gateway.Verifier {
	key := cfg.PublicKey
	if strings.TrimSpace(key) == "" {
		key = gateway.DefaultPublicKey
	}
	v, err := gateway.NewVerifier(key)
	if err != nil {
		panic(err)
	}
	return v
}

func InitGatewayClient(cfg gateway.Config, terminals dao.TerminalDAO, verifier *gateway.Verifier) gateway.Client {
	return gateway.NewUpayClient(cfg, terminals, verifier)
}
