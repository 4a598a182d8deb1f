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

package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrRecordNotFound  = gorm.ErrRecordNotFound
	ErrOrderNotPending = errors.New("订单不是待支付状态")
	ErrOrderPaid       = errors.New("订单已支付")
)

const (
	statusPending   = "PENDING"
	statusPaid      = "PAID"
	statusCancelled = "CANCELLED"
)

//go:generate mockgen -source=./order.go -package=daomocks -destination=mocks/order.mock.go OrderDAO
type OrderDAO interface {
	FindStudentByIDCard(ctx context.Context, idCard string) (Student, error)
	FindStudentByID(ctx context.Context, id int64) (Student, error)
	FindProductsBySchoolID(ctx context.Context, schoolID int64) ([]Product, error)

	FindOrderByID(ctx context.Context, id int64) (Order, []OrderItem, error)
	FindOrdersByStudentID(ctx context.Context, studentID int64) ([]Order, error)
	FindOrdersBySessionID(ctx context.Context, sessionID string) ([]Order, error)
	FindOrderItemsByOrderIDs(ctx context.Context, orderIDs []int64) ([]OrderItem, error)
	FindPendingSessionIDs(ctx context.Context, sessionCtimeAfter int64, afterSessionID string, limit int) ([]string, error)

	CreateOrder(ctx context.Context, o Order, items []OrderItem) (int64, error)
	UpdatePendingOrder(ctx context.Context, o Order, changes ItemChanges) error
	DeleteOrder(ctx context.Context, id int64) error
	AttachSession(ctx context.Context, orderIDs []int64, sessionID string, qrCode string, sessionCtime int64) error
	MarkSessionPaid(ctx context.Context, sessionID string, transactionID string, paidAt int64) ([]Order, bool, error)
}

// ItemChanges 一次订单项集合调整
type ItemChanges struct {
	Deleted  []int64
	Updated  []OrderItem
	Inserted []OrderItem
	// 订单内容变化后, 旧的支付会话必须作废
	ClearSession bool
}

type OrderGORMDAO struct {
	db *gorm.DB
}

func NewOrderGORMDAO(db *gorm.DB) OrderDAO {
	return &OrderGORMDAO{db: db}
}

func (g *OrderGORMDAO) FindStudentByIDCard(ctx context.Context, idCard string) (Student, error) {
	var res Student
	err := g.db.WithContext(ctx).Where("id_card = ?", idCard).First(&res).Error
	return res, err
}

func (g *OrderGORMDAO) FindStudentByID(ctx context.Context, id int64) (Student, error) {
	var res Student
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&res).Error
	return res, err
}

func (g *OrderGORMDAO) FindProductsBySchoolID(ctx context.Context, schoolID int64) ([]Product, error) {
	var res []Product
	err := g.db.WithContext(ctx).Where("school_id = ?", schoolID).Order("type asc").Find(&res).Error
	return res, err
}

func (g *OrderGORMDAO) FindOrderByID(ctx context.Context, id int64) (Order, []OrderItem, error) {
	var (
		o     Order
		items []OrderItem
	)
	db := g.db.WithContext(ctx)
	if err := db.Where("id = ?", id).First(&o).Error; err != nil {
		return Order{}, nil, err
	}
	err := db.Where("order_id = ?", id).Order("product_type asc").Find(&items).Error
	return o, items, err
}

func (g *OrderGORMDAO) FindOrdersByStudentID(ctx context.Context, studentID int64) ([]Order, error) {
	var res []Order
	err := g.db.WithContext(ctx).Where("student_id = ?", studentID).Order("id asc").Find(&res).Error
	return res, err
}

func (g *OrderGORMDAO) FindOrdersBySessionID(ctx context.Context, sessionID string) ([]Order, error) {
	var res []Order
	err := g.db.WithContext(ctx).Where("session_id = ?", sessionID).Order("id asc").Find(&res).Error
	return res, err
}

func (g *OrderGORMDAO) FindOrderItemsByOrderIDs(ctx context.Context, orderIDs []int64) ([]OrderItem, error) {
	var res []OrderItem
	if len(orderIDs) == 0 {
		return res, nil
	}
	err := g.db.WithContext(ctx).Where("order_id IN ?", orderIDs).Order("order_id asc, product_type asc").Find(&res).Error
	return res, err
}

func (g *OrderGORMDAO) FindPendingSessionIDs(ctx context.Context, sessionCtimeAfter int64, afterSessionID string, limit int) ([]string, error) {
	var res []string
	err := g.db.WithContext(ctx).Model(&Order{}).
		Distinct("session_id").
		Where("status = ? AND session_id > ? AND session_ctime > ?", statusPending, afterSessionID, sessionCtimeAfter).
		Order("session_id asc").
		Limit(limit).
		Pluck("session_id", &res).Error
	return res, err
}

func (g *OrderGORMDAO) CreateOrder(ctx context.Context, o Order, items []OrderItem) (int64, error) {
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UnixMilli()
		o.Ctime, o.Utime = now, now
		if err := tx.Create(&o).Error; err != nil {
			return fmt.Errorf("创建订单失败: %w", err)
		}
		for i := range items {
			items[i].OrderId = o.Id
			items[i].Ctime, items[i].Utime = now, now
		}
		if len(items) == 0 {
			return nil
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("创建订单项失败: %w", err)
		}
		return nil
	})
	return o.Id, err
}

func (g *OrderGORMDAO) UpdatePendingOrder(ctx context.Context, o Order, changes ItemChanges) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur Order
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", o.Id).First(&cur).Error
		if err != nil {
			return err
		}
		if cur.Status != statusPending {
			return fmt.Errorf("%w: order_id = %d, status = %s", ErrOrderNotPending, cur.Id, cur.Status)
		}
		now := time.Now().UnixMilli()
		if len(changes.Deleted) > 0 {
			err = tx.Where("order_id = ? AND id IN ?", o.Id, changes.Deleted).Delete(&OrderItem{}).Error
			if err != nil {
				return fmt.Errorf("删除订单项失败: %w", err)
			}
		}
		for _, item := range changes.Updated {
			err = tx.Model(&OrderItem{}).Where("order_id = ? AND id = ?", o.Id, item.Id).
				Updates(map[string]any{
					"quantity": item.Quantity,
					"utime":    now,
				}).Error
			if err != nil {
				return fmt.Errorf("更新订单项失败: %w", err)
			}
		}
		if len(changes.Inserted) > 0 {
			inserted := make([]OrderItem, len(changes.Inserted))
			copy(inserted, changes.Inserted)
			for i := range inserted {
				inserted[i].OrderId = o.Id
				inserted[i].Ctime, inserted[i].Utime = now, now
			}
			if err = tx.Create(&inserted).Error; err != nil {
				return fmt.Errorf("新增订单项失败: %w", err)
			}
		}
		fields := map[string]any{
			"total_amount": o.TotalAmount,
			"utime":        now,
		}
		if changes.ClearSession {
			fields["session_id"] = ""
			fields["qr_code"] = ""
			fields["session_ctime"] = 0
		}
		return tx.Model(&Order{}).Where("id = ?", o.Id).Updates(fields).Error
	})
}

func (g *OrderGORMDAO) DeleteOrder(ctx context.Context, id int64) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur Order
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&cur).Error
		if err != nil {
			return err
		}
		if cur.Status == statusPaid {
			return fmt.Errorf("%w: order_id = %d", ErrOrderPaid, id)
		}
		if err = tx.Where("order_id = ?", id).Delete(&OrderItem{}).Error; err != nil {
			return fmt.Errorf("删除订单项失败: %w", err)
		}
		return tx.Where("id = ?", id).Delete(&Order{}).Error
	})
}

func (g *OrderGORMDAO) AttachSession(ctx context.Context, orderIDs []int64, sessionID string, qrCode string, sessionCtime int64) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Order{}).
			Where("id IN ? AND status = ?", orderIDs, statusPending).
			Updates(map[string]any{
				"session_id":    sessionID,
				"qr_code":       qrCode,
				"session_ctime": sessionCtime,
				"utime":         time.Now().UnixMilli(),
			})
		if res.Error != nil {
			return res.Error
		}
		// 一个会话内的订单必须同时绑定成功
		if res.RowsAffected != int64(len(orderIDs)) {
			return fmt.Errorf("%w: 期望 %d 条, 实际 %d 条", ErrOrderNotPending, len(orderIDs), res.RowsAffected)
		}
		return nil
	})
}

// MarkSessionPaid 在一个事务里锁住会话下的所有订单并统一置为已支付.
// 第二个返回值为 true 表示本次调用完成了状态迁移.
func (g *OrderGORMDAO) MarkSessionPaid(ctx context.Context, sessionID string, transactionID string, paidAt int64) ([]Order, bool, error) {
	var (
		orders       []Order
		transitioned bool
	)
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("session_id = ?", sessionID).Order("id asc").Find(&orders).Error
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			return ErrRecordNotFound
		}
		pending := make([]int64, 0, len(orders))
		for _, o := range orders {
			if o.Status == statusPending {
				pending = append(pending, o.Id)
			}
		}
		if len(pending) == 0 {
			return nil
		}
		now := time.Now().UnixMilli()
		res := tx.Model(&Order{}).
			Where("id IN ? AND status = ?", pending, statusPending).
			Updates(map[string]any{
				"status":         statusPaid,
				"transaction_id": transactionID,
				"paid_at":        paidAt,
				"utime":          now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(pending)) {
			return fmt.Errorf("会话订单更新不完整: 期望 %d 条, 实际 %d 条", len(pending), res.RowsAffected)
		}
		for i := range orders {
			if orders[i].Status == statusPending {
				orders[i].Status = statusPaid
				orders[i].TransactionId = transactionID
				orders[i].PaidAt = paidAt
				orders[i].Utime = now
			}
		}
		transitioned = true
		return nil
	})
	return orders, transitioned, err
}

type Student struct {
	Id       int64  `gorm:"primaryKey;autoIncrement;comment:学生自增ID"`
	SchoolId int64  `gorm:"not null;index:idx_school_id;comment:学校ID"`
	ClassId  int64  `gorm:"not null;comment:班级ID"`
	Name     string `gorm:"type:varchar(64);not null;comment:学生姓名"`
	IdCard   string `gorm:"type:varchar(32);not null;uniqueIndex:uniq_id_card;comment:身份证号"`
	Ctime    int64
	Utime    int64
}

type Product struct {
	Id       int64  `gorm:"primaryKey;autoIncrement;comment:商品自增ID"`
	SchoolId int64  `gorm:"not null;uniqueIndex:uniq_school_type;comment:学校ID"`
	Type     uint8  `gorm:"type:tinyint unsigned;not null;uniqueIndex:uniq_school_type;comment:商品类型 0=夏装 1=春秋装 2=冬装"`
	Name     string `gorm:"type:varchar(255);not null;comment:商品名称"`
	Price    int64  `gorm:"not null;comment:单价;单位为分, 999表示9.99元"`
	Ctime    int64
	Utime    int64
}

type Order struct {
	Id            int64  `gorm:"primaryKey;autoIncrement;comment:订单自增ID"`
	OrderNo       string `gorm:"type:varchar(64);not null;uniqueIndex:uniq_order_no;comment:订单号"`
	StudentId     int64  `gorm:"not null;index:idx_student_id;comment:学生ID"`
	TotalAmount   int64  `gorm:"not null;comment:订单总额;单位为分, 999表示9.99元"`
	Status        string `gorm:"type:varchar(16);not null;default:PENDING;index:idx_status;comment:订单状态 PENDING PAID CANCELLED"`
	SessionId     string `gorm:"type:varchar(64);not null;default:'';index:idx_session_id;comment:支付会话号, 即网关 client_sn"`
	QrCode        string `gorm:"type:varchar(1024);not null;default:'';comment:网关二维码内容"`
	SessionCtime  int64  `gorm:"not null;default:0;comment:支付会话创建时间"`
	TransactionId string `gorm:"type:varchar(128);not null;default:'';comment:网关交易号"`
	PaidAt        int64  `gorm:"not null;default:0;comment:支付时间"`
	Ctime         int64
	Utime         int64
}

type OrderItem struct {
	Id            int64  `gorm:"primaryKey;autoIncrement;comment:订单项自增ID"`
	OrderId       int64  `gorm:"not null;index:idx_order_id;comment:订单自增ID"`
	ProductId     int64  `gorm:"not null;comment:商品ID"`
	ProductType   uint8  `gorm:"type:tinyint unsigned;not null;comment:商品类型 0=夏装 1=春秋装 2=冬装"`
	ProductName   string `gorm:"type:varchar(255);not null;comment:商品名称"`
	Quantity      int64  `gorm:"not null;comment:购买数量"`
	PriceSnapshot int64  `gorm:"not null;comment:下单时单价快照;单位为分"`
	Ctime         int64
	Utime         int64
}
