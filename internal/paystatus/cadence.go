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

import "time"

// PollInterval 根据会话创建至今的时间决定下一次轮询间隔.
// 第二个返回值为 false 表示会话已经过期, 不应再发起请求.
func PollInterval(elapsed time.Duration) (time.Duration, bool) {
	switch {
	case elapsed < time.Minute:
		return 10 * time.Second, true
	case elapsed < 4*time.Minute:
		return 3 * time.Second, true
	case elapsed < 5*time.Minute:
		return 5 * time.Second, true
	default:
		return 0, false
	}
}
