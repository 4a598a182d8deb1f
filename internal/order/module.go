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

package order

import (
	"github.com/ecodeclub/uniform/internal/order/internal/domain"
	"github.com/ecodeclub/uniform/internal/order/internal/service"
	"github.com/ecodeclub/uniform/internal/order/internal/web"
)

type (
	Handler      = web.Handler
	AdminHandler = web.AdminHandler
	Service      = service.Service
	Order        = domain.Order
	OrderItem    = domain.OrderItem
	Student      = domain.Student
	Status       = domain.OrderStatus
	ProductType  = domain.ProductType
	Quantities   = domain.Quantities
	EditResult   = domain.EditResult
	MarkResult   = domain.MarkResult
)

const (
	StatusPending   = domain.StatusPending
	StatusPaid      = domain.StatusPaid
	StatusCancelled = domain.StatusCancelled

	ProductTypeSummer       = domain.ProductTypeSummer
	ProductTypeSpringAutumn = domain.ProductTypeSpringAutumn
	ProductTypeWinter       = domain.ProductTypeWinter
)

var (
	ErrInvalidState = domain.ErrInvalidState
	ErrNotFound     = domain.ErrNotFound
)

type Module struct {
	Svc      Service
	Hdl      *Handler
	AdminHdl *AdminHandler
}
