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

package sequencenumber

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/lithammer/shortuuid/v4"
)

var ErrInvalidStudentID = errors.New("学生ID非法")

// TimestampGenerateFunc 定义生成时间戳的函数类型
type TimestampGenerateFunc func(time.Time) int64

// ShortUUIDGenerateFunc 定义生成ShortUUID的函数类型
type ShortUUIDGenerateFunc func() string

const (
	randomPartLen    = 6
	minRandomPartLen = 4
	// 网关要求 client_sn 不超过 32 位
	maxLen = 32
)

// Generator 生成支付会话号(client_sn)
type Generator struct {
	timestampGenFunc TimestampGenerateFunc
	shortUUIDGenFunc ShortUUIDGenerateFunc
}

func NewGeneratorWith(timestampGen TimestampGenerateFunc, uuidGen ShortUUIDGenerateFunc) *Generator {
	return &Generator{
		timestampGenFunc: timestampGen,
		shortUUIDGenFunc: uuidGen,
	}
}

func NewGenerator() *Generator {
	return NewGeneratorWith(func(t time.Time) int64 { return t.UnixMilli() }, func() string { return shortuuid.New() })
}

// Generate 格式为 SID{学生ID}-{毫秒时间戳}-{随机串}, 学生ID和时间戳使用36进制.
// 随机串默认6位, 超长时缩短, 至少保留4位
func (s *Generator) Generate(studentID int64) (string, error) {
	if studentID <= 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidStudentID, studentID)
	}
	uuid := s.shortUUIDGenFunc()
	if len(uuid) < randomPartLen {
		return "", fmt.Errorf("随机串长度不足: %q", uuid)
	}
	prefix := fmt.Sprintf("SID%s-%s-",
		strconv.FormatInt(studentID, 36), strconv.FormatInt(s.timestampGenFunc(time.Now()), 36))
	n := min(randomPartLen, maxLen-len(prefix))
	if n < minRandomPartLen {
		return "", fmt.Errorf("会话号超长: %s", prefix)
	}
	return prefix + uuid[:n], nil
}
