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
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ecodeclub/uniform/internal/notification/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubscriber struct {
	mu      sync.Mutex
	msgs    []domain.Message
	sendErr error
	closed  atomic.Int32
}

func (f *fakeSubscriber) Send(_ context.Context, msg domain.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.msgs = append(f.msgs, msg)
	return nil
}

func (f *fakeSubscriber) Close() error {
	f.closed.Add(1)
	return nil
}

func (f *fakeSubscriber) received() []domain.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Message{}, f.msgs...)
}

func TestHub_Subscribe(t *testing.T) {
	hub := NewHub()
	first, second := &fakeSubscriber{}, &fakeSubscriber{}

	assert.Nil(t, hub.Subscribe("SID1", first))
	assert.Equal(t, 1, hub.Len())

	evicted := hub.Subscribe("SID1", second)
	assert.Same(t, first, evicted)
	assert.Equal(t, int32(1), first.closed.Load())
	assert.Equal(t, 1, hub.Len())

	// 同一个订阅者重复注册不会被关闭
	assert.Nil(t, hub.Subscribe("SID1", second))
	assert.Equal(t, int32(0), second.closed.Load())

	msg := domain.NewPaymentSuccessMessage("SID1", map[string]any{"trade_no": "T1"})
	assert.True(t, hub.Publish(context.Background(), "SID1", msg))
	assert.Empty(t, first.received())
	assert.Equal(t, []domain.Message{msg}, second.received())
}

func TestHub_Unsubscribe(t *testing.T) {
	hub := NewHub()
	first, second := &fakeSubscriber{}, &fakeSubscriber{}
	hub.Subscribe("SID1", first)
	hub.Subscribe("SID1", second)

	// 旧连接断开时不能把新连接移除
	assert.False(t, hub.Unsubscribe("SID1", first))
	assert.Equal(t, 1, hub.Len())

	assert.True(t, hub.Unsubscribe("SID1", second))
	assert.Equal(t, 0, hub.Len())
	assert.False(t, hub.Unsubscribe("SID1", second))
}

func TestHub_Publish(t *testing.T) {
	testCases := []struct {
		name    string
		sub     *fakeSubscriber
		want    bool
		wantLen int
	}{
		{
			name: "没有订阅者",
		},
		{
			name:    "推送成功",
			sub:     &fakeSubscriber{},
			want:    true,
			wantLen: 1,
		},
		{
			name: "推送失败移除订阅者",
			sub:  &fakeSubscriber{sendErr: errors.New("broken pipe")},
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			hub := NewHub()
			if tc.sub != nil {
				hub.Subscribe("SID1", tc.sub)
			}
			got := hub.Publish(context.Background(), "SID1", domain.NewPaymentSuccessMessage("SID1", nil))
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantLen, hub.Len())
			if tc.sub != nil && !tc.want {
				assert.Equal(t, int32(1), tc.sub.closed.Load())
			}
		})
	}
}

func TestHub_Concurrent(t *testing.T) {
	hub := NewHub()
	const sessions = 20
	const rounds = 50
	var wg sync.WaitGroup
	for i := 0; i < sessions; i++ {
		sessionID := fmt.Sprintf("SID%d", i)
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				sub := &fakeSubscriber{}
				hub.Subscribe(sessionID, sub)
				if j%2 == 0 {
					hub.Unsubscribe(sessionID, sub)
				}
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				hub.Publish(context.Background(), sessionID, domain.NewPaymentSuccessMessage(sessionID, nil))
			}
		}()
	}
	wg.Wait()
	// 每个会话最后一轮是奇数轮, 订阅者保留
	require.Equal(t, sessions, hub.Len())
}
