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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionID = "SID1001-1700000000000-abcdef"

type fakeSubscription struct {
	msgs      chan Message
	closed    chan struct{}
	closeOnce sync.Once
}

func newFakeSubscription() *fakeSubscription {
	return &fakeSubscription{
		msgs:   make(chan Message, 4),
		closed: make(chan struct{}),
	}
}

func (f *fakeSubscription) Receive(ctx context.Context) (Message, error) {
	select {
	case msg := <-f.msgs:
		return msg, nil
	case <-f.closed:
		return Message{}, errors.New("连接已关闭")
	case <-ctx.Done():
		return Message{}, ctx.Err()
	}
}

func (f *fakeSubscription) Close() error {
	f.closeOnce.Do(func() {
		close(f.closed)
	})
	return nil
}

func (f *fakeSubscription) isClosed() bool {
	select {
	case <-f.closed:
		return true
	default:
		return false
	}
}

type fakePush struct {
	dials atomic.Int32
	dial  func(ctx context.Context, n int32) (Subscription, error)
}

func (f *fakePush) Dial(ctx context.Context, _ string) (Subscription, error) {
	return f.dial(ctx, f.dials.Add(1))
}

type fakeChecker struct {
	checks atomic.Int32
	check  func(n int32) (Result, error)
}

func (f *fakeChecker) Check(_ context.Context, sessionID string) (Result, error) {
	res, err := f.check(f.checks.Add(1))
	res.SessionID = sessionID
	return res, err
}

func failingPush() *fakePush {
	return &fakePush{dial: func(ctx context.Context, n int32) (Subscription, error) {
		return nil, errors.New("连接被拒绝")
	}}
}

func statusSequence(statuses ...string) *fakeChecker {
	return &fakeChecker{check: func(n int32) (Result, error) {
		idx := int(n) - 1
		if idx >= len(statuses) {
			idx = len(statuses) - 1
		}
		s := statuses[idx]
		return Result{Status: s, Payload: map[string]any{"order_status": s}}, nil
	}}
}

type recorder struct {
	mu       sync.Mutex
	states   []State
	payloads []map[string]any
}

func (r *recorder) config() Config {
	return Config{
		HealthCheckInterval: 10 * time.Millisecond,
		ConnectTimeout:      200 * time.Millisecond,
		MaxReconnects:       3,
		SessionTTL:          5 * time.Second,
		Cadence: func(elapsed time.Duration) (time.Duration, bool) {
			return 20 * time.Millisecond, elapsed < 5*time.Second
		},
		OnSuccess: func(payload map[string]any) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.payloads = append(r.payloads, payload)
		},
		OnStateChange: func(from, to State) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.states = append(r.states, to)
		},
	}
}

func (r *recorder) successes() []map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]map[string]any(nil), r.payloads...)
}

func (r *recorder) history() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]State(nil), r.states...)
}

func waitDone(t *testing.T, c *Controller) {
	select {
	case <-c.Done():
	case <-time.After(3 * time.Second):
		t.Fatalf("等待状态机结束超时, 当前状态 %s", c.State())
	}
}

func waitState(t *testing.T, c *Controller, want State) {
	require.Eventually(t, func() bool {
		return c.State() == want
	}, 3*time.Second, 5*time.Millisecond)
}

func TestController_PushSuccess(t *testing.T) {
	rec := &recorder{}
	sub := newFakeSubscription()
	push := &fakePush{dial: func(ctx context.Context, n int32) (Subscription, error) {
		return sub, nil
	}}
	checker := statusSequence("CREATED")
	c := NewController(testSessionID, time.Now(), push, checker, rec.config())
	require.NoError(t, c.Start(context.Background()))
	defer c.Close()

	waitState(t, c, StateConnected)
	sub.msgs <- Message{Type: MessageTypeConnectionEstablished}
	sub.msgs <- Message{Type: MessageTypePaymentSuccess, Data: map[string]any{"client_sn": testSessionID}}
	waitDone(t, c)

	assert.Equal(t, StateSucceeded, c.State())
	assert.Equal(t, []map[string]any{{"client_sn": testSessionID}}, rec.successes())
	assert.Equal(t, []State{StateConnected, StateSucceeded}, rec.history())
	assert.True(t, sub.isClosed())
	assert.Equal(t, int32(1), push.dials.Load())
	assert.Equal(t, int32(0), checker.checks.Load())
}

func TestController_FailoverAfterReconnects(t *testing.T) {
	rec := &recorder{}
	push := failingPush()
	checker := statusSequence("CREATED", "CREATED", "PAID")
	c := NewController(testSessionID, time.Now(), push, checker, rec.config())
	require.NoError(t, c.Start(context.Background()))
	defer c.Close()

	waitDone(t, c)
	assert.Equal(t, StateSucceeded, c.State())
	// 首次连接加上三次重连
	assert.Equal(t, int32(4), push.dials.Load())
	assert.Equal(t, int32(3), checker.checks.Load())
	assert.Equal(t, []State{StateDegraded, StatePolling, StateSucceeded}, rec.history())
	assert.Equal(t, []map[string]any{{"order_status": "PAID"}}, rec.successes())
}

func TestController_ConnectTimeout(t *testing.T) {
	rec := &recorder{}
	// 推送通道一直连不上
	push := &fakePush{dial: func(ctx context.Context, n int32) (Subscription, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	checker := statusSequence("PAID")
	cfg := rec.config()
	start := time.Now()
	c := NewController(testSessionID, start, push, checker, cfg)
	require.NoError(t, c.Start(context.Background()))
	defer c.Close()

	waitDone(t, c)
	assert.Equal(t, StateSucceeded, c.State())
	assert.GreaterOrEqual(t, time.Since(start), cfg.ConnectTimeout)
	assert.Equal(t, int32(1), checker.checks.Load())
	assert.Equal(t, []State{StateDegraded, StatePolling, StateSucceeded}, rec.history())
}

func TestController_TransientPollErrors(t *testing.T) {
	rec := &recorder{}
	checker := &fakeChecker{check: func(n int32) (Result, error) {
		if n < 3 {
			return Result{}, errors.New("网络错误")
		}
		return Result{Status: StatusPaid}, nil
	}}
	cfg := rec.config()
	cfg.MaxReconnects = 0
	c := NewController(testSessionID, time.Now(), failingPush(), checker, cfg)
	require.NoError(t, c.Start(context.Background()))
	defer c.Close()

	waitDone(t, c)
	assert.Equal(t, StateSucceeded, c.State())
	assert.Equal(t, int32(3), checker.checks.Load())
	assert.Len(t, rec.successes(), 1)
}

func TestController_Canceled(t *testing.T) {
	rec := &recorder{}
	cfg := rec.config()
	cfg.MaxReconnects = 0
	checker := statusSequence("CREATED", StatusCanceled, "PAID")
	c := NewController(testSessionID, time.Now(), failingPush(), checker, cfg)
	require.NoError(t, c.Start(context.Background()))
	defer c.Close()

	waitDone(t, c)
	assert.Equal(t, StateCanceled, c.State())
	assert.Equal(t, int32(2), checker.checks.Load())
	assert.Empty(t, rec.successes())
}

func TestController_ExpiredBeforeStart(t *testing.T) {
	rec := &recorder{}
	push := failingPush()
	checker := statusSequence("PAID")
	cfg := rec.config()
	c := NewController(testSessionID, time.Now().Add(-cfg.SessionTTL), push, checker, cfg)
	require.NoError(t, c.Start(context.Background()))
	defer c.Close()

	waitDone(t, c)
	assert.Equal(t, StateExpired, c.State())
	assert.Equal(t, int32(0), push.dials.Load())
	assert.Equal(t, int32(0), checker.checks.Load())
}

func TestController_ExpiredWhilePolling(t *testing.T) {
	rec := &recorder{}
	cfg := rec.config()
	cfg.MaxReconnects = 0
	cfg.SessionTTL = 300 * time.Millisecond
	cfg.Cadence = func(elapsed time.Duration) (time.Duration, bool) {
		return 20 * time.Millisecond, true
	}
	checker := statusSequence("CREATED")
	c := NewController(testSessionID, time.Now(), failingPush(), checker, cfg)
	require.NoError(t, c.Start(context.Background()))
	defer c.Close()

	waitDone(t, c)
	assert.Equal(t, StateExpired, c.State())
	// Close 返回时所有请求都已经结束
	require.NoError(t, c.Close())
	checks := checker.checks.Load()
	assert.True(t, checks > 0)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, checks, checker.checks.Load())
	assert.Empty(t, rec.successes())
}

func TestController_CadenceStop(t *testing.T) {
	rec := &recorder{}
	cfg := rec.config()
	cfg.MaxReconnects = 0
	cfg.Cadence = func(elapsed time.Duration) (time.Duration, bool) {
		return 0, false
	}
	checker := statusSequence("CREATED")
	c := NewController(testSessionID, time.Now(), failingPush(), checker, cfg)
	require.NoError(t, c.Start(context.Background()))
	defer c.Close()

	waitDone(t, c)
	assert.Equal(t, StateExpired, c.State())
	assert.Equal(t, int32(1), checker.checks.Load())
}

func TestController_Reconnect(t *testing.T) {
	rec := &recorder{}
	first, second := newFakeSubscription(), newFakeSubscription()
	push := &fakePush{dial: func(ctx context.Context, n int32) (Subscription, error) {
		if n == 1 {
			return first, nil
		}
		return second, nil
	}}
	c := NewController(testSessionID, time.Now(), push, statusSequence("CREATED"), rec.config())
	require.NoError(t, c.Start(context.Background()))
	defer c.Close()

	waitState(t, c, StateConnected)
	// 模拟服务端断开
	_ = first.Close()
	require.Eventually(t, func() bool {
		return push.dials.Load() == 2 && c.State() == StateConnected
	}, 3*time.Second, 5*time.Millisecond)

	second.msgs <- Message{Type: MessageTypePaymentSuccess, Data: map[string]any{"trade_no": "TX1"}}
	waitDone(t, c)
	assert.Equal(t, []State{StateConnected, StateConnecting, StateConnected, StateSucceeded}, rec.history())
	assert.Equal(t, []map[string]any{{"trade_no": "TX1"}}, rec.successes())
	assert.True(t, second.isClosed())
}

func TestController_SuccessOnce(t *testing.T) {
	rec := &recorder{}
	sub := newFakeSubscription()
	push := &fakePush{dial: func(ctx context.Context, n int32) (Subscription, error) {
		return sub, nil
	}}
	checker := statusSequence("PAID")
	c := NewController(testSessionID, time.Now(), push, checker, rec.config())
	require.NoError(t, c.Start(context.Background()))
	defer c.Close()

	waitState(t, c, StateConnected)
	res, err := c.CheckNow(context.Background())
	require.NoError(t, err)
	assert.True(t, res.IsPaid())
	waitDone(t, c)

	// 另一个通道晚到的成功消息不再处理
	select {
	case sub.msgs <- Message{Type: MessageTypePaymentSuccess}:
	default:
	}
	_, err = c.CheckNow(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateSucceeded, c.State())
	assert.Len(t, rec.successes(), 1)
	assert.Equal(t, []State{StateConnected, StateSucceeded}, rec.history())
}

func TestController_CheckNowNotPaid(t *testing.T) {
	rec := &recorder{}
	sub := newFakeSubscription()
	push := &fakePush{dial: func(ctx context.Context, n int32) (Subscription, error) {
		return sub, nil
	}}
	c := NewController(testSessionID, time.Now(), push, statusSequence("CREATED"), rec.config())

	_, err := c.CheckNow(context.Background())
	assert.ErrorIs(t, err, ErrNotStarted)

	require.NoError(t, c.Start(context.Background()))
	defer c.Close()
	waitState(t, c, StateConnected)

	res, err := c.CheckNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "CREATED", res.Status)
	// 手动查询不影响推送通道
	assert.Equal(t, StateConnected, c.State())
}

func TestController_Close(t *testing.T) {
	rec := &recorder{}
	sub := newFakeSubscription()
	push := &fakePush{dial: func(ctx context.Context, n int32) (Subscription, error) {
		return sub, nil
	}}
	c := NewController(testSessionID, time.Now(), push, statusSequence("CREATED"), rec.config())
	require.NoError(t, c.Start(context.Background()))
	assert.ErrorIs(t, c.Start(context.Background()), ErrStarted)
	waitState(t, c, StateConnected)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	waitDone(t, c)
	assert.True(t, sub.isClosed())
	assert.ErrorIs(t, c.Start(context.Background()), ErrClosed)
	// 关闭之后不会阻塞
	c.Resume()

	never := NewController(testSessionID, time.Now(), push, statusSequence("CREATED"), rec.config())
	require.NoError(t, never.Close())
	waitDone(t, never)
}

func TestController_CloseFromCallback(t *testing.T) {
	rec := &recorder{}
	cfg := rec.config()
	returned := make(chan struct{})
	var c *Controller
	cfg.OnSuccess = func(payload map[string]any) {
		require.NoError(t, c.Close())
		close(returned)
	}
	checker := statusSequence("PAID")
	c = NewController(testSessionID, time.Now(), failingPush(), checker, cfg)
	require.NoError(t, c.Start(context.Background()))

	select {
	case <-returned:
	case <-time.After(3 * time.Second):
		t.Fatalf("在 OnSuccess 中调用 Close 没有返回, 当前状态 %s", c.State())
	}
	waitDone(t, c)
	assert.Equal(t, StateSucceeded, c.State())
	// 外部再次关闭等待回调执行完毕后返回
	require.NoError(t, c.Close())
	assert.Equal(t, int32(1), checker.checks.Load())
}
