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

import "errors"

var (
	ErrInvalidState = errors.New("订单状态不允许该操作")
	ErrNotFound     = errors.New("记录不存在")
)

type OrderStatus string

func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal 终态订单不允许再被修改
func (s OrderStatus) IsTerminal() bool {
	return s == StatusPaid || s == StatusCancelled
}

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusCancelled OrderStatus = "CANCELLED"
)

type ProductType uint8

func (t ProductType) ToUint8() uint8 {
	return uint8(t)
}

func (t ProductType) Name() string {
	switch t {
	case ProductTypeSummer:
		return "夏装"
	case ProductTypeSpringAutumn:
		return "春秋装"
	case ProductTypeWinter:
		return "冬装"
	default:
		return "未知"
	}
}

func (t ProductType) Valid() bool {
	return t <= ProductTypeWinter
}

const (
	ProductTypeSummer       ProductType = 0
	ProductTypeSpringAutumn ProductType = 1
	ProductTypeWinter       ProductType = 2
)

func ProductTypes() []ProductType {
	return []ProductType{ProductTypeSummer, ProductTypeSpringAutumn, ProductTypeWinter}
}

// Quantities 按商品类型统计的数量
type Quantities map[ProductType]int64

func (q Quantities) IsZero() bool {
	for _, v := range q {
		if v != 0 {
			return false
		}
	}
	return true
}

type Student struct {
	ID       int64
	SchoolID int64
	ClassID  int64
	Name     string
	IDCard   string
}

type Product struct {
	ID       int64
	SchoolID int64
	Type     ProductType
	Name     string
	// 单位为分
	Price int64
}

type Order struct {
	ID            int64
	OrderNo       string
	StudentID     int64
	TotalAmount   int64
	Status        OrderStatus
	SessionID     string
	QRCode        string
	TransactionID string
	PaidAt        int64
	SessionCtime  int64
	Items         []OrderItem
	Ctime         int64
	Utime         int64
}

// Total 按价格快照重新计算订单总额
func (o Order) Total() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Amount()
	}
	return total
}

func (o Order) Quantities() Quantities {
	res := make(Quantities, len(o.Items))
	for _, item := range o.Items {
		res[item.ProductType] += item.Quantity
	}
	return res
}

type OrderItem struct {
	ID            int64
	OrderID       int64
	ProductID     int64
	ProductType   ProductType
	ProductName   string
	Quantity      int64
	PriceSnapshot int64
}

func (i OrderItem) Amount() int64 {
	return i.Quantity * i.PriceSnapshot
}

type EditResult struct {
	// 待支付订单直接修改后的订单, 或者已支付订单产生的补单
	Order         Order
	Supplementary bool
	Noop          bool
}

type MarkResult struct {
	Orders      []Order
	AlreadyPaid bool
}
