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
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ecodeclub/ekit/retry"
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/uniform/internal/notification"
	"github.com/ecodeclub/uniform/internal/order"
	"github.com/ecodeclub/uniform/internal/payment/internal/domain"
	"github.com/ecodeclub/uniform/internal/payment/internal/event"
	"github.com/ecodeclub/uniform/internal/payment/internal/gateway"
	"github.com/ecodeclub/uniform/internal/payment/internal/repository/cache"
	"github.com/ecodeclub/uniform/internal/pkg/sequencenumber"
	"github.com/gotomicro/ego/core/elog"
	"golang.org/x/sync/singleflight"
)

const (
	SourceCallback = "callback"
	SourcePoll     = "poll"
	SourceJob      = "job"
	SourceMock     = "mock"
)

const sharedQueryTimeout = 10 * time.Second

//go:generate mockgen -source=./service.go -package=paymentmocks -destination=../../mocks/payment.mock.go Service
type Service interface {
	// Prepay 为学生所有待支付订单创建一个支付会话
	Prepay(ctx context.Context, idCard string, payWay domain.PayWay) (domain.Session, error)
	// OnGatewayCallback 只有签名错误和缺少必要字段会返回错误, 其余情况都应该应答网关
	OnGatewayCallback(ctx context.Context, rawBody []byte, signature string) (domain.CallbackResult, error)
	// OnClientPoll 本地已支付时不再请求网关
	OnClientPoll(ctx context.Context, sessionID string) (domain.StatusResult, error)
	// SyncPendingSessions 主动查询创建时间晚于 ctimeAfter 的待支付会话, 返回完成迁移的会话数
	SyncPendingSessions(ctx context.Context, ctimeAfter int64, limit int) (int, error)
	// MockCallback 测试环境使用, 不校验签名
	MockCallback(ctx context.Context, sessionID string) (domain.CallbackResult, error)
}

type service struct {
	orderSvc order.Service
	hub      notification.Service
	gw       gateway.Client
	lock     cache.PrepayLockCache
	producer event.PaymentEventProducer
	snGen    *sequencenumber.Generator
	group    singleflight.Group
	l        *elog.Component
}

func NewService(orderSvc order.Service,
	hub notification.Service,
	gw gateway.Client,
	lock cache.PrepayLockCache,
	producer event.PaymentEventProducer,
	snGen *sequencenumber.Generator) Service {
	return &service{
		orderSvc: orderSvc,
		hub:      hub,
		gw:       gw,
		lock:     lock,
		producer: producer,
		snGen:    snGen,
		l:        elog.DefaultLogger.With(elog.FieldComponent("payment")),
	}
}

func (s *service) Prepay(ctx context.Context, idCard string, payWay domain.PayWay) (domain.Session, error) {
	stu, err := s.orderSvc.FindStudentByIDCard(ctx, idCard)
	if err != nil {
		return domain.Session{}, err
	}
	ok, err := s.lock.Lock(ctx, stu.ID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("获取预下单锁失败: %w", err)
	}
	if !ok {
		return domain.Session{}, fmt.Errorf("%w: student_id=%d", domain.ErrDuplicatePrepay, stu.ID)
	}
	defer func() {
		if er := s.lock.Unlock(ctx, stu.ID); er != nil {
			s.l.Warn("释放预下单锁失败", elog.FieldErr(er), elog.Int64("student_id", stu.ID))
		}
	}()

	pending, err := s.orderSvc.ListPendingOrders(ctx, stu.ID)
	if err != nil {
		return domain.Session{}, err
	}
	if len(pending) == 0 {
		return domain.Session{}, fmt.Errorf("%w: 没有待支付订单", order.ErrInvalidState)
	}
	sess := domain.Session{
		StudentID: stu.ID,
		OrderIDs: slice.Map(pending, func(idx int, src order.Order) int64 {
			return src.ID
		}),
		Subject: BuildSubject(pending),
	}
	for _, o := range pending {
		sess.TotalAmount += o.TotalAmount
	}
	if sess.TotalAmount <= 0 {
		return domain.Session{}, fmt.Errorf("%w: 待支付金额必须大于0", order.ErrInvalidState)
	}
	if reused, ok := s.reusableSession(pending); ok {
		reused.StudentID, reused.OrderIDs = sess.StudentID, sess.OrderIDs
		reused.TotalAmount, reused.Subject = sess.TotalAmount, sess.Subject
		return reused, nil
	}

	sess.ID, err = s.snGen.Generate(stu.ID)
	if err != nil {
		return domain.Session{}, err
	}
	res, err := s.gw.CreatePrepayment(ctx, gateway.PrepayRequest{
		SessionID:   sess.ID,
		AmountCents: sess.TotalAmount,
		Subject:     sess.Subject,
		PayWay:      string(payWay.OrDefault()),
	})
	if err != nil {
		return domain.Session{}, err
	}
	sess.QRCode, sess.QRCodeImageURL, sess.GatewaySN = res.QRCode, res.QRCodeImageURL, res.SN
	sess.Ctime = time.Now().UnixMilli()
	if err = s.orderSvc.AttachSession(ctx, sess.OrderIDs, sess.ID, sess.QRCode, sess.Ctime); err != nil {
		return domain.Session{}, fmt.Errorf("绑定支付会话失败: %w", err)
	}
	return sess, nil
}

// reusableSession 所有待支付订单仍然属于同一个未过期的会话时直接复用,
// 避免旧二维码被支付后找不到订单
func (s *service) reusableSession(pending []order.Order) (domain.Session, bool) {
	first := pending[0]
	if first.SessionID == "" || first.QRCode == "" {
		return domain.Session{}, false
	}
	for _, o := range pending[1:] {
		if o.SessionID != first.SessionID {
			return domain.Session{}, false
		}
	}
	sess := domain.Session{ID: first.SessionID, QRCode: first.QRCode, Ctime: first.SessionCtime}
	if time.Now().UnixMilli() >= sess.ExpireAt() {
		return domain.Session{}, false
	}
	return sess, true
}

func (s *service) OnGatewayCallback(ctx context.Context, rawBody []byte, signature string) (domain.CallbackResult, error) {
	if len(rawBody) == 0 || signature == "" {
		callbackCounter.WithLabelValues("malformed").Inc()
		return domain.CallbackResult{}, fmt.Errorf("%w: 缺少签名或请求体", domain.ErrMalformedCallback)
	}
	if !s.gw.VerifyCallbackSignature(rawBody, signature) {
		callbackCounter.WithLabelValues("invalid_signature").Inc()
		s.l.Error("支付回调签名校验失败", elog.String("body", string(rawBody)))
		return domain.CallbackResult{}, domain.ErrSignatureInvalid
	}
	conf, err := gateway.ParseCallback(rawBody)
	if err != nil {
		callbackCounter.WithLabelValues("malformed").Inc()
		return domain.CallbackResult{}, err
	}
	res := domain.CallbackResult{SessionID: conf.SessionID, Status: conf.Status}
	if !conf.Status.IsPaid() {
		callbackCounter.WithLabelValues("ignored").Inc()
		s.l.Info("支付回调状态无需处理",
			elog.String("client_sn", conf.SessionID),
			elog.String("order_status", string(conf.Status)))
		return res, nil
	}
	res.Transitioned, res.Notified, err = s.confirm(ctx, conf, SourceCallback)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		// 应答网关, 避免反复重试
		callbackCounter.WithLabelValues("unknown_session").Inc()
		s.l.Error("支付回调找不到对应订单", elog.String("client_sn", conf.SessionID), elog.FieldErr(err))
		return res, nil
	case err != nil:
		callbackCounter.WithLabelValues("error").Inc()
		return res, err
	case res.Transitioned:
		callbackCounter.WithLabelValues("paid").Inc()
	default:
		callbackCounter.WithLabelValues("duplicate").Inc()
	}
	return res, nil
}

func (s *service) OnClientPoll(ctx context.Context, sessionID string) (domain.StatusResult, error) {
	orders, err := s.orderSvc.FindOrdersBySessionID(ctx, sessionID)
	if err != nil {
		return domain.StatusResult{}, err
	}
	if len(orders) == 0 {
		return domain.StatusResult{}, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}
	res := domain.StatusResult{
		SessionID: sessionID,
		ExpireAt:  domain.Session{Ctime: orders[0].SessionCtime}.ExpireAt(),
	}
	if slice.Contains(slice.Map(orders, func(idx int, src order.Order) order.Status {
		return src.Status
	}), order.StatusPaid) {
		res.Status = domain.GatewayStatusPaid
		return res, nil
	}
	ch := s.group.DoChan(sessionID, func() (any, error) {
		// 合并后的查询被多个请求共享, 不能因为第一个请求取消而失败
		qctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedQueryTimeout)
		defer cancel()
		conf, er := s.gw.QueryStatus(qctx, sessionID)
		if er != nil {
			return domain.GatewayStatusUnknown, er
		}
		if conf.Status.IsPaid() {
			if _, _, er = s.confirm(qctx, conf, SourcePoll); er != nil {
				return domain.GatewayStatusUnknown, er
			}
		}
		return conf.Status, nil
	})
	select {
	case r := <-ch:
		if r.Err != nil {
			return domain.StatusResult{}, r.Err
		}
		res.Status = r.Val.(domain.GatewayStatus)
		return res, nil
	case <-ctx.Done():
		return domain.StatusResult{}, ctx.Err()
	}
}

func (s *service) SyncPendingSessions(ctx context.Context, ctimeAfter int64, limit int) (int, error) {
	lastSeen, transitioned := "", 0
	for {
		ids, err := s.orderSvc.FindPendingSessionIDs(ctx, ctimeAfter, lastSeen, limit)
		if err != nil {
			return transitioned, fmt.Errorf("查找待支付会话失败: %w", err)
		}
		done := 0
		for _, id := range ids {
			conf, er := s.gw.QueryStatus(ctx, id)
			if er != nil {
				s.l.Error("查询支付会话状态失败", elog.FieldErr(er), elog.String("client_sn", id))
				continue
			}
			if !conf.Status.IsPaid() {
				continue
			}
			ok, _, er := s.confirm(ctx, conf, SourceJob)
			if er != nil {
				s.l.Error("同步支付会话状态失败", elog.FieldErr(er), elog.String("client_sn", id))
				continue
			}
			if ok {
				done++
			}
		}
		transitioned += done
		if len(ids) < limit {
			return transitioned, nil
		}
		// 按 session_id 翻页, 期间被回调或者轮询改成已支付的会话不影响后续页
		lastSeen = ids[len(ids)-1]
	}
}

func (s *service) MockCallback(ctx context.Context, sessionID string) (domain.CallbackResult, error) {
	now := time.Now().UnixMilli()
	conf := domain.Confirmation{
		SessionID:     sessionID,
		Status:        domain.GatewayStatusPaid,
		TransactionID: "MOCK-" + sessionID,
		FinishTime:    now,
		Payload: map[string]any{
			"client_sn":    sessionID,
			"order_status": string(domain.GatewayStatusPaid),
			"trade_no":     "MOCK-" + sessionID,
			"finish_time":  fmt.Sprintf("%d", now),
		},
	}
	res := domain.CallbackResult{SessionID: sessionID, Status: conf.Status}
	var err error
	res.Transitioned, res.Notified, err = s.confirm(ctx, conf, SourceMock)
	return res, err
}

// confirm 所有渠道观察到的已支付都经过这里, 订单只会迁移一次, 也只会推送一次
func (s *service) confirm(ctx context.Context, conf domain.Confirmation, source string) (transitioned bool, notified bool, err error) {
	paidAt := conf.FinishTime
	if paidAt <= 0 {
		paidAt = time.Now().UnixMilli()
	}
	mr, err := s.orderSvc.MarkSessionPaid(ctx, conf.SessionID, conf.TransactionID, paidAt)
	if errors.Is(err, order.ErrNotFound) {
		return false, false, fmt.Errorf("%w: %w", domain.ErrSessionNotFound, err)
	}
	if err != nil {
		return false, false, err
	}
	if mr.AlreadyPaid {
		s.l.Info("支付会话已是已支付状态, 忽略重复确认",
			elog.String("client_sn", conf.SessionID),
			elog.String("source", source))
		return false, false, nil
	}
	transitionCounter.WithLabelValues(source).Inc()

	var total int64
	for _, o := range mr.Orders {
		total += o.TotalAmount
	}
	if conf.TotalAmount > 0 && conf.TotalAmount != total {
		s.l.Error("网关支付金额与订单金额不一致",
			elog.String("client_sn", conf.SessionID),
			elog.Int64("gateway_amount", conf.TotalAmount),
			elog.Int64("order_amount", total))
	}

	notified = s.hub.Publish(ctx, conf.SessionID, notification.NewPaymentSuccessMessage(conf.SessionID, conf.Payload))
	s.sendEvent(ctx, event.PaymentSucceededEvent{
		SessionID: conf.SessionID,
		StudentID: studentOf(mr.Orders),
		OrderIDs: slice.Map(mr.Orders, func(idx int, src order.Order) int64 {
			return src.ID
		}),
		TransactionID: conf.TransactionID,
		TotalAmount:   total,
		PaidAt:        paidAt,
		Source:        source,
	})
	return true, notified, nil
}

// sendEvent 订单已经提交, 事件发送失败只记录日志
func (s *service) sendEvent(ctx context.Context, evt event.PaymentSucceededEvent) {
	strategy, err := retry.NewExponentialBackoffRetryStrategy(100*time.Millisecond, time.Second, 3)
	if err != nil {
		s.l.Error("创建重试策略失败", elog.FieldErr(err))
		return
	}
	for {
		err = s.producer.Produce(ctx, evt)
		if err == nil {
			return
		}
		next, ok := strategy.Next()
		if !ok {
			s.l.Error("发送支付成功事件失败",
				elog.FieldErr(err),
				elog.String("client_sn", evt.SessionID))
			return
		}
		time.Sleep(next)
	}
}

func studentOf(orders []order.Order) int64 {
	if len(orders) == 0 {
		return 0
	}
	return orders[0].StudentID
}

// BuildSubject 例如 "夏装2套,冬装1套", 同类商品跨订单合并
func BuildSubject(orders []order.Order) string {
	qty := make(map[order.ProductType]int64)
	names := make(map[order.ProductType]string)
	for _, o := range orders {
		for _, item := range o.Items {
			qty[item.ProductType] += item.Quantity
			names[item.ProductType] = item.ProductName
		}
	}
	types := make([]order.ProductType, 0, len(qty))
	for typ, q := range qty {
		if q > 0 {
			types = append(types, typ)
		}
	}
	sort.Slice(types, func(i, j int) bool {
		return types[i] < types[j]
	})
	parts := slice.Map(types, func(idx int, typ order.ProductType) string {
		return fmt.Sprintf("%s%d套", names[typ], qty[typ])
	})
	return gateway.TruncateSubject(strings.Join(parts, ","))
}
