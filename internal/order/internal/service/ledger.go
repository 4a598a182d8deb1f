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
	"fmt"

	"github.com/ecodeclub/uniform/internal/order/internal/domain"
	"github.com/ecodeclub/uniform/internal/order/internal/repository"
)

// ReconcileItems 计算待支付订单从当前订单项调整到目标数量所需的变更.
// requested 中没有出现的商品类型保持不变.
// 返回调整后的订单项, 用于重新计算订单总额.
func ReconcileItems(current []domain.OrderItem,
	requested domain.Quantities,
	catalog map[domain.ProductType]domain.Product) (repository.ItemChanges, []domain.OrderItem, error) {
	var changes repository.ItemChanges
	existing := make(map[domain.ProductType]domain.OrderItem, len(current))
	for _, item := range current {
		existing[item.ProductType] = item
	}

	result := make([]domain.OrderItem, 0, len(domain.ProductTypes()))
	for _, typ := range domain.ProductTypes() {
		item, has := existing[typ]
		want, asked := requested[typ]
		if !asked {
			if has {
				result = append(result, item)
			}
			continue
		}
		if want < 0 {
			return repository.ItemChanges{}, nil, fmt.Errorf("%w: %s 数量不能为负数", domain.ErrInvalidState, typ.Name())
		}
		switch {
		case has && want == 0:
			changes.Deleted = append(changes.Deleted, item.ID)
		case has && want != item.Quantity:
			// 保留原有价格快照, 只改数量
			item.Quantity = want
			changes.Updated = append(changes.Updated, item)
			result = append(result, item)
		case has:
			result = append(result, item)
		case want > 0:
			p, ok := catalog[typ]
			if !ok {
				return repository.ItemChanges{}, nil, fmt.Errorf("%w: 学校未配置%s价格", domain.ErrNotFound, typ.Name())
			}
			newItem := newOrderItem(p, want)
			changes.Inserted = append(changes.Inserted, newItem)
			result = append(result, newItem)
		}
	}
	return changes, result, nil
}

// LifetimeTotals 汇总学生所有未取消订单的各类型数量, 待支付订单也计入
func LifetimeTotals(orders []domain.Order) domain.Quantities {
	res := make(domain.Quantities, len(domain.ProductTypes()))
	for _, o := range orders {
		if o.Status == domain.StatusCancelled {
			continue
		}
		for _, item := range o.Items {
			res[item.ProductType] += item.Quantity
		}
	}
	return res
}

// SupplementDelta 逐类型计算 max(0, requested - lifetime), 只返回大于零的部分
func SupplementDelta(requested, lifetime domain.Quantities) domain.Quantities {
	res := make(domain.Quantities, len(requested))
	for typ, want := range requested {
		if d := want - lifetime[typ]; d > 0 {
			res[typ] = d
		}
	}
	return res
}

// BuildItems 按当前价目表为正数增量生成订单项
func BuildItems(deltas domain.Quantities, catalog map[domain.ProductType]domain.Product) ([]domain.OrderItem, error) {
	items := make([]domain.OrderItem, 0, len(deltas))
	for _, typ := range domain.ProductTypes() {
		qty := deltas[typ]
		if qty <= 0 {
			continue
		}
		p, ok := catalog[typ]
		if !ok {
			return nil, fmt.Errorf("%w: 学校未配置%s价格", domain.ErrNotFound, typ.Name())
		}
		items = append(items, newOrderItem(p, qty))
	}
	return items, nil
}

func newOrderItem(p domain.Product, qty int64) domain.OrderItem {
	return domain.OrderItem{
		ProductID:     p.ID,
		ProductType:   p.Type,
		ProductName:   p.Name,
		Quantity:      qty,
		PriceSnapshot: p.Price,
	}
}
