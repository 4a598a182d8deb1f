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

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/ecodeclub/ecache"
)

//go:generate mockgen -source=./prepay.go -package=cachemocks -destination=./mocks/prepay.mock.go PrepayLockCache

// PrepayLockCache 同一个学生同一时间只允许一次预下单
type PrepayLockCache interface {
	Lock(ctx context.Context, studentID int64) (bool, error)
	Unlock(ctx context.Context, studentID int64) error
}

type prepayLockCache struct {
	cache      ecache.Cache
	expiration time.Duration
}

func NewPrepayLockCache(c ecache.Cache) PrepayLockCache {
	return &prepayLockCache{
		cache: &ecache.NamespaceCache{
			Namespace: "uniform:payment:",
			C:         c,
		},
		expiration: time.Second * 15,
	}
}

func (p *prepayLockCache) Lock(ctx context.Context, studentID int64) (bool, error) {
	return p.cache.SetNX(ctx, p.key(studentID), studentID, p.expiration)
}

func (p *prepayLockCache) Unlock(ctx context.Context, studentID int64) error {
	_, err := p.cache.Delete(ctx, p.key(studentID))
	return err
}

func (p *prepayLockCache) key(studentID int64) string {
	return fmt.Sprintf("prepay:lock:%d", studentID)
}
