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

package paystatus

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gotomicro/ego/core/elog"
)

var (
	ErrStarted    = errors.New("支付状态监听已经启动")
	ErrClosed     = errors.New("支付状态监听已经关闭")
	ErrNotStarted = errors.New("支付状态监听尚未启动")
)

type Config struct {
	// 推送通道建立前的检查间隔
	HealthCheckInterval time.Duration
	// 从开始连接算起, 超过这个时间仍未连上就降级为轮询
	ConnectTimeout time.Duration
	MaxReconnects  int
	SessionTTL     time.Duration
	Cadence        func(elapsed time.Duration) (time.Duration, bool)
	// 整个会话只会调用一次.
	// 回调按发生顺序在单独的 goroutine 上执行, 可以在回调里调用 Close
	OnSuccess     func(payload map[string]any)
	OnStateChange func(from, to State)
}

func DefaultConfig() Config {
	return Config{
		HealthCheckInterval: time.Second,
		ConnectTimeout:      10 * time.Second,
		MaxReconnects:       3,
		SessionTTL:          5 * time.Minute,
		Cadence:             PollInterval,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.HealthCheckInterval <= 0 {
		c.HealthCheckInterval = def.HealthCheckInterval
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = def.ConnectTimeout
	}
	if c.MaxReconnects < 0 {
		c.MaxReconnects = def.MaxReconnects
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = def.SessionTTL
	}
	if c.Cadence == nil {
		c.Cadence = def.Cadence
	}
	return c
}

type dialResult struct {
	sub Subscription
	err error
}

type pushEvent struct {
	sub Subscription
	msg Message
	err error
}

type pollResult struct {
	res Result
	err error
}

// Controller 一个支付会话的状态监听, 同时使用推送和轮询两个通道.
// 所有状态都由 loop 所在的 goroutine 持有, 其它 goroutine 只通过 channel 上报结果.
type Controller struct {
	sessionID string
	createdAt time.Time
	deadline  time.Time
	cfg       Config
	push      PushChannel
	checker   StatusChecker
	l         *elog.Component

	dialCh    chan dialResult
	pushCh    chan pushEvent
	pollResCh chan pollResult
	checkCh   chan Result
	resumeCh  chan struct{}
	done      chan struct{}

	mu        sync.Mutex
	state     State
	started   bool
	closed    bool
	cancel    context.CancelFunc
	closeOnce sync.Once
	wg        sync.WaitGroup

	cbMu       sync.Mutex
	cbQueue    []func()
	cbClosed   bool
	cbNotify   chan struct{}
	inCallback atomic.Bool

	// 以下字段只在 loop 中访问
	sub          Subscription
	dialing      bool
	reconnects   int
	connectStart time.Time
	polling      bool
	pollTimer    *time.Timer
	healthTicker *time.Ticker
}

func NewController(sessionID string, createdAt time.Time, push PushChannel, checker StatusChecker, cfg Config) *Controller {
	cfg = cfg.withDefaults()
	return &Controller{
		sessionID: sessionID,
		createdAt: createdAt,
		deadline:  createdAt.Add(cfg.SessionTTL),
		cfg:       cfg,
		push:      push,
		checker:   checker,
		l:         elog.DefaultLogger.With(elog.FieldComponent("paystatus")),
		dialCh:    make(chan dialResult),
		pushCh:    make(chan pushEvent),
		pollResCh: make(chan pollResult),
		checkCh:   make(chan Result),
		resumeCh:  make(chan struct{}, 1),
		cbNotify:  make(chan struct{}, 1),
		done:      make(chan struct{}),
		state:     StateConnecting,
	}
}

func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.started {
		return ErrStarted
	}
	c.started = true
	ctx, c.cancel = context.WithCancel(ctx)
	c.wg.Add(1)
	go c.loop(ctx)
	go c.dispatch()
	return nil
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Deadline() time.Time {
	return c.deadline
}

// Done 进入终态或者 Close 之后, 并且所有回调都执行完毕才关闭
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// Resume 页面重新可见时调用, 用绝对截止时间重新判断是否过期
func (c *Controller) Resume() {
	select {
	case c.resumeCh <- struct{}{}:
	default:
	}
}

// CheckNow 用户手动查询一次, 只有支付成功会影响状态机
func (c *Controller) CheckNow(ctx context.Context) (Result, error) {
	c.mu.Lock()
	started := c.started
	c.mu.Unlock()
	if !started {
		return Result{}, ErrNotStarted
	}
	res, err := c.checker.Check(ctx, c.sessionID)
	if err != nil {
		return Result{}, err
	}
	if !res.IsPaid() {
		return res, nil
	}
	select {
	case c.checkCh <- res:
	case <-c.done:
	case <-ctx.Done():
		return res, ctx.Err()
	}
	return res, nil
}

// Close 可以重复调用, 返回时所有 goroutine 都已经退出.
// 在 OnSuccess 或 OnStateChange 中调用时不等待回调队列, 否则会等自己
func (c *Controller) Close() error {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		started := c.started
		if started {
			c.cancel()
		}
		c.mu.Unlock()
		if !started {
			close(c.done)
			return
		}
		c.wg.Wait()
	})
	if c.inCallback.Load() {
		return nil
	}
	<-c.done
	return nil
}

func (c *Controller) loop(ctx context.Context) {
	defer c.wg.Done()
	defer c.finishCallbacks()
	defer c.teardown()

	if c.expired() {
		c.transit(StateExpired)
		return
	}
	deadline := time.NewTimer(time.Until(c.deadline))
	defer deadline.Stop()
	c.superviseConnect(ctx)

	for !c.State().IsTerminal() {
		select {
		case <-ctx.Done():
			return
		case <-deadline.C:
			c.transit(StateExpired)
		case <-c.healthC():
			c.onHealthCheck(ctx)
		case <-c.pollC():
			c.poll(ctx)
		case r := <-c.dialCh:
			c.onDial(ctx, r)
		case e := <-c.pushCh:
			c.onPush(ctx, e)
		case r := <-c.pollResCh:
			c.onPollResult(r)
		case r := <-c.checkCh:
			c.succeed(r.Payload)
		case <-c.resumeCh:
			if c.expired() {
				c.transit(StateExpired)
			}
		}
	}
}

func (c *Controller) teardown() {
	c.stopHealthCheck()
	if c.pollTimer != nil {
		c.pollTimer.Stop()
	}
	c.closeSub()
	c.mu.Lock()
	c.cancel()
	c.mu.Unlock()
}

func (c *Controller) superviseConnect(ctx context.Context) {
	c.connectStart = time.Now()
	c.reconnects = 0
	if c.healthTicker == nil {
		c.healthTicker = time.NewTicker(c.cfg.HealthCheckInterval)
	} else {
		c.healthTicker.Reset(c.cfg.HealthCheckInterval)
	}
	c.dial(ctx)
}

func (c *Controller) dial(ctx context.Context) {
	c.dialing = true
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		dctx, cancel := context.WithTimeout(ctx, c.cfg.ConnectTimeout)
		sub, err := c.push.Dial(dctx, c.sessionID)
		cancel()
		select {
		case c.dialCh <- dialResult{sub: sub, err: err}:
		case <-ctx.Done():
			if sub != nil {
				_ = sub.Close()
			}
		}
	}()
}

func (c *Controller) onDial(ctx context.Context, r dialResult) {
	c.dialing = false
	if r.err != nil {
		c.l.Warn("建立推送连接失败", elog.String("clientSn", c.sessionID), elog.FieldErr(r.err))
		return
	}
	if c.State() != StateConnecting {
		_ = r.sub.Close()
		return
	}
	c.sub = r.sub
	c.stopHealthCheck()
	c.transit(StateConnected)
	c.wg.Add(1)
	go c.receive(ctx, r.sub)
}

func (c *Controller) receive(ctx context.Context, sub Subscription) {
	defer c.wg.Done()
	for {
		msg, err := sub.Receive(ctx)
		select {
		case c.pushCh <- pushEvent{sub: sub, msg: msg, err: err}:
		case <-ctx.Done():
			return
		}
		if err != nil {
			return
		}
	}
}

func (c *Controller) onPush(ctx context.Context, e pushEvent) {
	if e.sub != c.sub {
		return
	}
	if e.err != nil {
		c.closeSub()
		if c.transit(StateConnecting) {
			c.l.Warn("推送连接断开, 重新连接", elog.String("clientSn", c.sessionID), elog.FieldErr(e.err))
			c.superviseConnect(ctx)
		}
		return
	}
	if e.msg.Type == MessageTypePaymentSuccess {
		c.succeed(e.msg.Data)
	}
}

func (c *Controller) onHealthCheck(ctx context.Context) {
	if c.State() != StateConnecting {
		c.stopHealthCheck()
		return
	}
	if time.Since(c.connectStart) >= c.cfg.ConnectTimeout {
		c.l.Warn("推送连接超时, 切换到轮询", elog.String("clientSn", c.sessionID))
		c.degrade(ctx)
		return
	}
	if c.dialing {
		return
	}
	if c.reconnects >= c.cfg.MaxReconnects {
		c.l.Warn("推送连接重试次数耗尽, 切换到轮询", elog.String("clientSn", c.sessionID))
		c.degrade(ctx)
		return
	}
	c.reconnects++
	c.dial(ctx)
}

func (c *Controller) degrade(ctx context.Context) {
	c.stopHealthCheck()
	c.closeSub()
	if !c.transit(StateDegraded) || !c.transit(StatePolling) {
		return
	}
	c.poll(ctx)
}

func (c *Controller) poll(ctx context.Context) {
	if c.State() != StatePolling || c.polling {
		return
	}
	if c.expired() {
		c.transit(StateExpired)
		return
	}
	c.polling = true
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		res, err := c.checker.Check(ctx, c.sessionID)
		select {
		case c.pollResCh <- pollResult{res: res, err: err}:
		case <-ctx.Done():
		}
	}()
}

func (c *Controller) onPollResult(r pollResult) {
	c.polling = false
	if c.State() != StatePolling {
		return
	}
	switch {
	case r.err != nil:
		c.l.Warn("轮询支付状态失败", elog.String("clientSn", c.sessionID), elog.FieldErr(r.err))
	case r.res.IsPaid():
		c.succeed(r.res.Payload)
		return
	case r.res.Status == StatusCanceled:
		c.transit(StateCanceled)
		return
	}
	interval, ok := c.cfg.Cadence(time.Since(c.createdAt))
	if !ok {
		c.transit(StateExpired)
		return
	}
	if c.pollTimer == nil {
		c.pollTimer = time.NewTimer(interval)
		return
	}
	c.pollTimer.Reset(interval)
}

func (c *Controller) succeed(payload map[string]any) {
	if !c.transit(StateSucceeded) {
		return
	}
	if c.cfg.OnSuccess != nil {
		c.emit(func() { c.cfg.OnSuccess(payload) })
	}
}

func (c *Controller) transit(to State) bool {
	c.mu.Lock()
	from := c.state
	if !CanTransit(from, to) {
		c.mu.Unlock()
		return false
	}
	c.state = to
	c.mu.Unlock()
	c.l.Debug("支付状态变化", elog.String("clientSn", c.sessionID),
		elog.String("from", from.String()), elog.String("to", to.String()))
	if c.cfg.OnStateChange != nil {
		c.emit(func() { c.cfg.OnStateChange(from, to) })
	}
	return true
}

func (c *Controller) emit(fn func()) {
	c.cbMu.Lock()
	c.cbQueue = append(c.cbQueue, fn)
	c.cbMu.Unlock()
	c.notifyDispatcher()
}

func (c *Controller) finishCallbacks() {
	c.cbMu.Lock()
	c.cbClosed = true
	c.cbMu.Unlock()
	c.notifyDispatcher()
}

func (c *Controller) notifyDispatcher() {
	select {
	case c.cbNotify <- struct{}{}:
	default:
	}
}

// dispatch 依次执行回调, loop 退出并且队列清空后关闭 done
func (c *Controller) dispatch() {
	defer close(c.done)
	for {
		c.cbMu.Lock()
		queue, closed := c.cbQueue, c.cbClosed
		c.cbQueue = nil
		c.cbMu.Unlock()
		for _, fn := range queue {
			c.inCallback.Store(true)
			fn()
			c.inCallback.Store(false)
		}
		if len(queue) > 0 {
			continue
		}
		if closed {
			return
		}
		<-c.cbNotify
	}
}

func (c *Controller) expired() bool {
	return !time.Now().Before(c.deadline)
}

func (c *Controller) closeSub() {
	if c.sub != nil {
		_ = c.sub.Close()
		c.sub = nil
	}
}

func (c *Controller) stopHealthCheck() {
	if c.healthTicker != nil {
		c.healthTicker.Stop()
	}
}

func (c *Controller) healthC() <-chan time.Time {
	if c.healthTicker == nil || c.State() != StateConnecting {
		return nil
	}
	return c.healthTicker.C
}

func (c *Controller) pollC() <-chan time.Time {
	if c.pollTimer == nil {
		return nil
	}
	return c.pollTimer.C
}
