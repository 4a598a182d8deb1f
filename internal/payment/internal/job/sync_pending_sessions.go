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

package job

import (
	"context"
	"time"

	"github.com/ecodeclub/uniform/internal/payment/internal/domain"
	"github.com/ecodeclub/uniform/internal/payment/internal/service"
	"github.com/gotomicro/ego/core/elog"
	"github.com/gotomicro/ego/task/ecron"
)

var _ ecron.NamedJob = (*SyncPendingSessionsJob)(nil)

// SyncPendingSessionsJob 回调丢失时兜底, 主动向网关查询仍在有效期内的待支付会话
type SyncPendingSessionsJob struct {
	svc    service.Service
	window time.Duration
	limit  int
	l      *elog.Component
}

func NewSyncPendingSessionsJob(svc service.Service, minutes int64, limit int) *SyncPendingSessionsJob {
	window := time.Duration(minutes) * time.Minute
	if window <= 0 {
		window = domain.SessionTTL
	}
	if limit <= 0 {
		limit = 100
	}
	return &SyncPendingSessionsJob{
		svc:    svc,
		window: window,
		limit:  limit,
		l:      elog.DefaultLogger,
	}
}

func (s *SyncPendingSessionsJob) Name() string {
	return "sync_pending_sessions_job"
}

func (s *SyncPendingSessionsJob) Run(ctx context.Context) error {
	ctimeAfter := time.Now().Add(-s.window).UnixMilli()
	n, err := s.svc.SyncPendingSessions(ctx, ctimeAfter, s.limit)
	if err != nil {
		return err
	}
	if n > 0 {
		s.l.Info("同步待支付会话完成", elog.Int("transitioned", n))
	}
	return nil
}
