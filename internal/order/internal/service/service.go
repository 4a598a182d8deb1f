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
	"context"
	"fmt"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/uniform/internal/order/internal/domain"
	"github.com/ecodeclub/uniform/internal/order/internal/repository"
	"github.com/ecodeclub/uniform/internal/pkg/snowflake"
	"github.com/gotomicro/ego/core/elog"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=./service.go -package=ordermocks -destination=../../mocks/order.mock.go Service
type Service interface {
	FindStudentByIDCard(ctx context.Context, idCard string) (domain.Student, error)
	ListStudentOrders(ctx context.Context, studentID int64) ([]domain.Order, error)
	ListPendingOrders(ctx context.Context, studentID int64) ([]domain.Order, error)
	FindOrdersBySessionID(ctx context.Context, sessionID string) ([]domain.Order, error)
	FindPendingSessionIDs(ctx context.Context, sessionCtimeAfter int64, afterSessionID string, limit int) ([]string, error)

	// CreateSupplementary 为已有已支付订单的学生创建补单, 只包含正数增量
	CreateSupplementary(ctx context.Context, studentID int64, deltas domain.Quantities) (domain.Order, error)
	// ApplyEdit 待支付订单按绝对数量调整; 已支付订单按终身总量补差额生成补单
	ApplyEdit(ctx context.Context, orderID int64, requested domain.Quantities) (domain.EditResult, error)
	DeleteOrder(ctx context.Context, orderID int64) error

	AttachSession(ctx context.Context, orderIDs []int64, sessionID string, qrCode string, sessionCtime int64) error
	// MarkSessionPaid 把会话下的所有待支付订单原子地置为已支付, 重复调用返回 AlreadyPaid
	MarkSessionPaid(ctx context.Context, sessionID string, transactionID string, paidAt int64) (domain.MarkResult, error)
}

type service struct {
	repo  repository.OrderRepository
	noGen *snowflake.OrderNoGenerator
	l     *elog.Component
}

func NewService(repo repository.OrderRepository, noGen *snowflake.OrderNoGenerator) Service {
	return &service{
		repo:  repo,
		noGen: noGen,
		l:     elog.DefaultLogger.With(elog.FieldComponent("order")),
	}
}

func (s *service) FindStudentByIDCard(ctx context.Context, idCard string) (domain.Student, error) {
	return s.repo.FindStudentByIDCard(ctx, idCard)
}

func (s *service) ListStudentOrders(ctx context.Context, studentID int64) ([]domain.Order, error) {
	return s.repo.FindOrdersByStudentID(ctx, studentID)
}

func (s *service) ListPendingOrders(ctx context.Context, studentID int64) ([]domain.Order, error) {
	os, err := s.repo.FindOrdersByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return slice.FilterMap(os, func(idx int, src domain.Order) (domain.Order, bool) {
		return src, src.Status == domain.StatusPending
	}), nil
}

func (s *service) FindOrdersBySessionID(ctx context.Context, sessionID string) ([]domain.Order, error) {
	return s.repo.FindOrdersBySessionID(ctx, sessionID)
}

func (s *service) FindPendingSessionIDs(ctx context.Context, sessionCtimeAfter int64, afterSessionID string, limit int) ([]string, error) {
	return s.repo.FindPendingSessionIDs(ctx, sessionCtimeAfter, afterSessionID, limit)
}

func (s *service) CreateSupplementary(ctx context.Context, studentID int64, deltas domain.Quantities) (domain.Order, error) {
	if err := s.checkQuantities(deltas); err != nil {
		return domain.Order{}, err
	}
	positive := SupplementDelta(deltas, nil)
	if positive.IsZero() {
		return domain.Order{}, fmt.Errorf("%w: 补单数量必须大于0", domain.ErrInvalidState)
	}

	var (
		eg      errgroup.Group
		student domain.Student
		orders  []domain.Order
	)
	eg.Go(func() error {
		var err error
		student, err = s.repo.FindStudentByID(ctx, studentID)
		return err
	})
	eg.Go(func() error {
		var err error
		orders, err = s.repo.FindOrdersByStudentID(ctx, studentID)
		return err
	})
	if err := eg.Wait(); err != nil {
		return domain.Order{}, err
	}

	_, hasPaid := slice.Find(orders, func(src domain.Order) bool {
		return src.Status == domain.StatusPaid
	})
	if !hasPaid {
		return domain.Order{}, fmt.Errorf("%w: 不存在已支付订单, 请直接编辑订单", domain.ErrInvalidState)
	}
	return s.createSupplementaryOrder(ctx, student, positive)
}

func (s *service) createSupplementaryOrder(ctx context.Context, student domain.Student, deltas domain.Quantities) (domain.Order, error) {
	catalog, err := s.repo.FindCatalog(ctx, student.SchoolID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("查找学校价目表失败: %w", err)
	}
	items, err := BuildItems(deltas, catalog)
	if err != nil {
		return domain.Order{}, err
	}
	order := domain.Order{
		OrderNo:   s.noGen.Generate(),
		StudentID: student.ID,
		Status:    domain.StatusPending,
		Items:     items,
	}
	order.TotalAmount = order.Total()
	created, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		return domain.Order{}, fmt.Errorf("创建补单失败: %w", err)
	}
	s.l.Info("创建补单",
		elog.Int64("student_id", student.ID),
		elog.String("order_no", created.OrderNo),
		elog.Int64("total_amount", created.TotalAmount))
	return created, nil
}

func (s *service) ApplyEdit(ctx context.Context, orderID int64, requested domain.Quantities) (domain.EditResult, error) {
	if err := s.checkQuantities(requested); err != nil {
		return domain.EditResult{}, err
	}
	order, err := s.repo.FindOrderByID(ctx, orderID)
	if err != nil {
		return domain.EditResult{}, err
	}
	switch order.Status {
	case domain.StatusPending:
		return s.editPendingOrder(ctx, order, requested)
	case domain.StatusPaid:
		return s.supplementPaidOrder(ctx, order, requested)
	default:
		return domain.EditResult{}, fmt.Errorf("%w: 订单 %s 状态为 %s", domain.ErrInvalidState, order.OrderNo, order.Status)
	}
}

func (s *service) editPendingOrder(ctx context.Context, order domain.Order, requested domain.Quantities) (domain.EditResult, error) {
	student, err := s.repo.FindStudentByID(ctx, order.StudentID)
	if err != nil {
		return domain.EditResult{}, err
	}
	catalog, err := s.repo.FindCatalog(ctx, student.SchoolID)
	if err != nil {
		return domain.EditResult{}, fmt.Errorf("查找学校价目表失败: %w", err)
	}
	changes, items, err := ReconcileItems(order.Items, requested, catalog)
	if err != nil {
		return domain.EditResult{}, err
	}
	if changes.Empty() {
		return domain.EditResult{Order: order, Noop: true}, nil
	}
	if len(items) == 0 {
		return domain.EditResult{}, fmt.Errorf("%w: 订单至少保留一件商品, 如需取消请删除订单", domain.ErrInvalidState)
	}
	order.Items = items
	order.TotalAmount = order.Total()
	// 金额变化后旧二维码失效
	changes.ClearSession = true
	order.SessionID, order.QRCode, order.SessionCtime = "", "", 0
	if err = s.repo.UpdatePendingOrder(ctx, order, changes); err != nil {
		return domain.EditResult{}, fmt.Errorf("更新待支付订单失败: %w", err)
	}
	return domain.EditResult{Order: order}, nil
}

func (s *service) supplementPaidOrder(ctx context.Context, order domain.Order, requested domain.Quantities) (domain.EditResult, error) {
	var (
		eg      errgroup.Group
		student domain.Student
		orders  []domain.Order
	)
	eg.Go(func() error {
		var err error
		student, err = s.repo.FindStudentByID(ctx, order.StudentID)
		return err
	})
	eg.Go(func() error {
		var err error
		orders, err = s.repo.FindOrdersByStudentID(ctx, order.StudentID)
		return err
	})
	if err := eg.Wait(); err != nil {
		return domain.EditResult{}, err
	}
	deltas := SupplementDelta(requested, LifetimeTotals(orders))
	if deltas.IsZero() {
		return domain.EditResult{Order: order, Noop: true}, nil
	}
	sup, err := s.createSupplementaryOrder(ctx, student, deltas)
	if err != nil {
		return domain.EditResult{}, err
	}
	return domain.EditResult{Order: sup, Supplementary: true}, nil
}

func (s *service) DeleteOrder(ctx context.Context, orderID int64) error {
	order, err := s.repo.FindOrderByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status == domain.StatusPaid {
		return fmt.Errorf("%w: 已支付订单 %s 不允许删除", domain.ErrInvalidState, order.OrderNo)
	}
	return s.repo.DeleteOrder(ctx, orderID)
}

func (s *service) AttachSession(ctx context.Context, orderIDs []int64, sessionID string, qrCode string, sessionCtime int64) error {
	if len(orderIDs) == 0 {
		return fmt.Errorf("%w: 没有可绑定的订单", domain.ErrInvalidState)
	}
	return s.repo.AttachSession(ctx, orderIDs, sessionID, qrCode, sessionCtime)
}

func (s *service) MarkSessionPaid(ctx context.Context, sessionID string, transactionID string, paidAt int64) (domain.MarkResult, error) {
	res, err := s.repo.MarkSessionPaid(ctx, sessionID, transactionID, paidAt)
	if err != nil {
		return domain.MarkResult{}, err
	}
	if !res.AlreadyPaid {
		s.l.Info("支付会话订单已置为已支付",
			elog.String("session_id", sessionID),
			elog.String("transaction_id", transactionID),
			elog.Int("orders", len(res.Orders)))
	}
	return res, nil
}

func (s *service) checkQuantities(q domain.Quantities) error {
	for typ, v := range q {
		if !typ.Valid() {
			return fmt.Errorf("%w: 未知商品类型 %d", domain.ErrInvalidState, typ)
		}
		if v < 0 {
			return fmt.Errorf("%w: %s 数量不能为负数", domain.ErrInvalidState, typ.Name())
		}
	}
	return nil
}
