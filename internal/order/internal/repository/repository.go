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

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/uniform/internal/order/internal/domain"
	"github.com/ecodeclub/uniform/internal/order/internal/repository/dao"
)

//go:generate mockgen -source=./repository.go -package=repomocks -destination=mocks/order.mock.go OrderRepository
type OrderRepository interface {
	FindStudentByIDCard(ctx context.Context, idCard string) (domain.Student, error)
	FindStudentByID(ctx context.Context, id int64) (domain.Student, error)
	// FindCatalog 学校当前的商品价目表
	FindCatalog(ctx context.Context, schoolID int64) (map[domain.ProductType]domain.Product, error)

	FindOrderByID(ctx context.Context, id int64) (domain.Order, error)
	FindOrdersByStudentID(ctx context.Context, studentID int64) ([]domain.Order, error)
	FindOrdersBySessionID(ctx context.Context, sessionID string) ([]domain.Order, error)
	FindPendingSessionIDs(ctx context.Context, sessionCtimeAfter int64, afterSessionID string, limit int) ([]string, error)

	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	UpdatePendingOrder(ctx context.Context, order domain.Order, changes ItemChanges) error
	DeleteOrder(ctx context.Context, id int64) error
	AttachSession(ctx context.Context, orderIDs []int64, sessionID string, qrCode string, sessionCtime int64) error
	MarkSessionPaid(ctx context.Context, sessionID string, transactionID string, paidAt int64) (domain.MarkResult, error)
}

type ItemChanges struct {
	Deleted      []int64
	Updated      []domain.OrderItem
	Inserted     []domain.OrderItem
	ClearSession bool
}

func (c ItemChanges) Empty() bool {
	return len(c.Deleted) == 0 && len(c.Updated) == 0 && len(c.Inserted) == 0
}

func NewRepository(d dao.OrderDAO) OrderRepository {
	return &orderRepository{
		d: d,
	}
}

type orderRepository struct {
	d dao.OrderDAO
}

func (o *orderRepository) FindStudentByIDCard(ctx context.Context, idCard string) (domain.Student, error) {
	s, err := o.d.FindStudentByIDCard(ctx, idCard)
	if err != nil {
		return domain.Student{}, o.wrapNotFound(err, "学生")
	}
	return o.toStudentDomain(s), nil
}

func (o *orderRepository) FindStudentByID(ctx context.Context, id int64) (domain.Student, error) {
	s, err := o.d.FindStudentByID(ctx, id)
	if err != nil {
		return domain.Student{}, o.wrapNotFound(err, "学生")
	}
	return o.toStudentDomain(s), nil
}

func (o *orderRepository) FindCatalog(ctx context.Context, schoolID int64) (map[domain.ProductType]domain.Product, error) {
	ps, err := o.d.FindProductsBySchoolID(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	res := make(map[domain.ProductType]domain.Product, len(ps))
	for _, p := range ps {
		res[domain.ProductType(p.Type)] = domain.Product{
			ID:       p.Id,
			SchoolID: p.SchoolId,
			Type:     domain.ProductType(p.Type),
			Name:     p.Name,
			Price:    p.Price,
		}
	}
	return res, nil
}

func (o *orderRepository) FindOrderByID(ctx context.Context, id int64) (domain.Order, error) {
	order, items, err := o.d.FindOrderByID(ctx, id)
	if err != nil {
		return domain.Order{}, o.wrapNotFound(err, "订单")
	}
	return o.toOrderDomain(order, items), nil
}

func (o *orderRepository) FindOrdersByStudentID(ctx context.Context, studentID int64) ([]domain.Order, error) {
	os, err := o.d.FindOrdersByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return o.withItems(ctx, os)
}

func (o *orderRepository) FindOrdersBySessionID(ctx context.Context, sessionID string) ([]domain.Order, error) {
	os, err := o.d.FindOrdersBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return o.withItems(ctx, os)
}

func (o *orderRepository) withItems(ctx context.Context, os []dao.Order) ([]domain.Order, error) {
	ids := slice.Map(os, func(idx int, src dao.Order) int64 {
		return src.Id
	})
	items, err := o.d.FindOrderItemsByOrderIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("查找订单项失败: %w", err)
	}
	grouped := make(map[int64][]dao.OrderItem, len(os))
	for _, item := range items {
		grouped[item.OrderId] = append(grouped[item.OrderId], item)
	}
	return slice.Map(os, func(idx int, src dao.Order) domain.Order {
		return o.toOrderDomain(src, grouped[src.Id])
	}), nil
}

func (o *orderRepository) FindPendingSessionIDs(ctx context.Context, sessionCtimeAfter int64, afterSessionID string, limit int) ([]string, error) {
	return o.d.FindPendingSessionIDs(ctx, sessionCtimeAfter, afterSessionID, limit)
}

func (o *orderRepository) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	oid, err := o.d.CreateOrder(ctx, o.toOrderEntity(order), o.toOrderItemEntities(order.Items))
	if err != nil {
		return domain.Order{}, err
	}
	order.ID = oid
	for i := range order.Items {
		order.Items[i].OrderID = oid
	}
	return order, nil
}

func (o *orderRepository) UpdatePendingOrder(ctx context.Context, order domain.Order, changes ItemChanges) error {
	err := o.d.UpdatePendingOrder(ctx, o.toOrderEntity(order), dao.ItemChanges{
		Deleted:      changes.Deleted,
		Updated:      o.toOrderItemEntities(changes.Updated),
		Inserted:     o.toOrderItemEntities(changes.Inserted),
		ClearSession: changes.ClearSession,
	})
	if errors.Is(err, dao.ErrOrderNotPending) {
		return fmt.Errorf("%w: %w", domain.ErrInvalidState, err)
	}
	return o.wrapNotFound(err, "订单")
}

func (o *orderRepository) DeleteOrder(ctx context.Context, id int64) error {
	err := o.d.DeleteOrder(ctx, id)
	if errors.Is(err, dao.ErrOrderPaid) {
		return fmt.Errorf("%w: %w", domain.ErrInvalidState, err)
	}
	return o.wrapNotFound(err, "订单")
}

func (o *orderRepository) AttachSession(ctx context.Context, orderIDs []int64, sessionID string, qrCode string, sessionCtime int64) error {
	err := o.d.AttachSession(ctx, orderIDs, sessionID, qrCode, sessionCtime)
	if errors.Is(err, dao.ErrOrderNotPending) {
		return fmt.Errorf("%w: %w", domain.ErrInvalidState, err)
	}
	return err
}

func (o *orderRepository) MarkSessionPaid(ctx context.Context, sessionID string, transactionID string, paidAt int64) (domain.MarkResult, error) {
	os, transitioned, err := o.d.MarkSessionPaid(ctx, sessionID, transactionID, paidAt)
	if err != nil {
		return domain.MarkResult{}, o.wrapNotFound(err, "支付会话")
	}
	return domain.MarkResult{
		Orders: slice.Map(os, func(idx int, src dao.Order) domain.Order {
			return o.toOrderDomain(src, nil)
		}),
		AlreadyPaid: !transitioned,
	}, nil
}

func (o *orderRepository) wrapNotFound(err error, what string) error {
	if errors.Is(err, dao.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, what)
	}
	return err
}

func (o *orderRepository) toStudentDomain(s dao.Student) domain.Student {
	return domain.Student{
		ID:       s.Id,
		SchoolID: s.SchoolId,
		ClassID:  s.ClassId,
		Name:     s.Name,
		IDCard:   s.IdCard,
	}
}

func (o *orderRepository) toOrderEntity(order domain.Order) dao.Order {
	return dao.Order{
		Id:            order.ID,
		OrderNo:       order.OrderNo,
		StudentId:     order.StudentID,
		TotalAmount:   order.TotalAmount,
		Status:        order.Status.String(),
		SessionId:     order.SessionID,
		QrCode:        order.QRCode,
		SessionCtime:  order.SessionCtime,
		TransactionId: order.TransactionID,
		PaidAt:        order.PaidAt,
	}
}

func (o *orderRepository) toOrderItemEntities(orderItems []domain.OrderItem) []dao.OrderItem {
	return slice.Map(orderItems, func(idx int, src domain.OrderItem) dao.OrderItem {
		return dao.OrderItem{
			Id:            src.ID,
			OrderId:       src.OrderID,
			ProductId:     src.ProductID,
			ProductType:   src.ProductType.ToUint8(),
			ProductName:   src.ProductName,
			Quantity:      src.Quantity,
			PriceSnapshot: src.PriceSnapshot,
		}
	})
}

func (o *orderRepository) toOrderDomain(order dao.Order, orderItems []dao.OrderItem) domain.Order {
	return domain.Order{
		ID:            order.Id,
		OrderNo:       order.OrderNo,
		StudentID:     order.StudentId,
		TotalAmount:   order.TotalAmount,
		Status:        domain.OrderStatus(order.Status),
		SessionID:     order.SessionId,
		QRCode:        order.QrCode,
		SessionCtime:  order.SessionCtime,
		TransactionID: order.TransactionId,
		PaidAt:        order.PaidAt,
		Items: slice.Map(orderItems, func(idx int, src dao.OrderItem) domain.OrderItem {
			return domain.OrderItem{
				ID:            src.Id,
				OrderID:       src.OrderId,
				ProductID:     src.ProductId,
				ProductType:   domain.ProductType(src.ProductType),
				ProductName:   src.ProductName,
				Quantity:      src.Quantity,
				PriceSnapshot: src.PriceSnapshot,
			}
		}),
		Ctime: order.Ctime,
		Utime: order.Utime,
	}
}
