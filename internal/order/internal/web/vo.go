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

package web

import (
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/uniform/internal/order/internal/domain"
)

type StudentReq struct {
	IDCard string `json:"idCard"`
}

type StudentOrdersResp struct {
	Student Student `json:"student"`
	Orders  []Order `json:"orders"`
}

type Student struct {
	ID       int64  `json:"id"`
	SchoolID int64  `json:"schoolId"`
	ClassID  int64  `json:"classId"`
	Name     string `json:"name"`
}

type Order struct {
	ID          int64       `json:"id"`
	OrderNo     string      `json:"orderNo"`
	StudentID   int64       `json:"studentId"`
	Status      string      `json:"status"`
	TotalAmount int64       `json:"totalAmount"`
	ClientSN    string      `json:"clientSn,omitempty"`
	PaidAt      int64       `json:"paidAt,omitempty"`
	Items       []OrderItem `json:"items"`
	Ctime       int64       `json:"ctime"`
}

type OrderItem struct {
	ProductType uint8  `json:"productType"`
	ProductName string `json:"productName"`
	Quantity    int64  `json:"quantity"`
	Price       int64  `json:"price"`
	Amount      int64  `json:"amount"`
}

// EditOrderReq 数量为空表示该类型保持不变
type EditOrderReq struct {
	OrderID      int64  `json:"orderId"`
	Summer       *int64 `json:"summer"`
	SpringAutumn *int64 `json:"springAutumn"`
	Winter       *int64 `json:"winter"`
}

func (r EditOrderReq) quantities() domain.Quantities {
	res := make(domain.Quantities, 3)
	if r.Summer != nil {
		res[domain.ProductTypeSummer] = *r.Summer
	}
	if r.SpringAutumn != nil {
		res[domain.ProductTypeSpringAutumn] = *r.SpringAutumn
	}
	if r.Winter != nil {
		res[domain.ProductTypeWinter] = *r.Winter
	}
	return res
}

type EditOrderResp struct {
	Order         Order `json:"order"`
	Supplementary bool  `json:"supplementary"`
	Noop          bool  `json:"noop"`
}

type SupplementReq struct {
	StudentID    int64 `json:"studentId"`
	Summer       int64 `json:"summer"`
	SpringAutumn int64 `json:"springAutumn"`
	Winter       int64 `json:"winter"`
}

func (r SupplementReq) quantities() domain.Quantities {
	return domain.Quantities{
		domain.ProductTypeSummer:       r.Summer,
		domain.ProductTypeSpringAutumn: r.SpringAutumn,
		domain.ProductTypeWinter:       r.Winter,
	}
}

type OrderIDReq struct {
	OrderID int64 `json:"orderId"`
}

type StudentIDReq struct {
	StudentID int64 `json:"studentId"`
}

func toOrderVO(src domain.Order) Order {
	return Order{
		ID:          src.ID,
		OrderNo:     src.OrderNo,
		StudentID:   src.StudentID,
		Status:      src.Status.String(),
		TotalAmount: src.TotalAmount,
		ClientSN:    src.SessionID,
		PaidAt:      src.PaidAt,
		Items: slice.Map(src.Items, func(idx int, src domain.OrderItem) OrderItem {
			return OrderItem{
				ProductType: src.ProductType.ToUint8(),
				ProductName: src.ProductName,
				Quantity:    src.Quantity,
				Price:       src.PriceSnapshot,
				Amount:      src.Amount(),
			}
		}),
		Ctime: src.Ctime,
	}
}
