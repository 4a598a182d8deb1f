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
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrRecordNotFound = gorm.ErrRecordNotFound

//go:generate mockgen -source=./terminal.go -package=daomocks -destination=./mocks/terminal.mock.go TerminalDAO

// TerminalDAO 收款终端凭证, 按设备号区分
type TerminalDAO interface {
	FindByDeviceID(ctx context.Context, deviceID string) (Terminal, error)
	Upsert(ctx context.Context, t Terminal) error
}

type TerminalGORMDAO struct {
	db *gorm.DB
}

func NewTerminalGORMDAO(db *gorm.DB) TerminalDAO {
	return &TerminalGORMDAO{db: db}
}

func (g *TerminalGORMDAO) FindByDeviceID(ctx context.Context, deviceID string) (Terminal, error) {
	var t Terminal
	err := g.db.WithContext(ctx).Where("device_id = ?", deviceID).First(&t).Error
	return t, err
}

func (g *TerminalGORMDAO) Upsert(ctx context.Context, t Terminal) error {
	now := time.Now().UnixMilli()
	t.Ctime, t.Utime = now, now
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "device_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"terminal_sn", "terminal_key", "utime"}),
	}).Create(&t).Error
}

type Terminal struct {
	Id          int64  `gorm:"primaryKey;autoIncrement"`
	DeviceId    string `gorm:"type:varchar(64);uniqueIndex;not null"`
	TerminalSn  string `gorm:"type:varchar(64);not null;default:''"`
	TerminalKey string `gorm:"type:varchar(128);not null;default:''"`
	Ctime       int64
	Utime       int64
}

func (Terminal) TableName() string {
	return "payment_terminals"
}
