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

// State 客户端支付状态机
type State uint8

const (
	StateConnecting State = iota
	StateConnected
	StateDegraded
	StatePolling
	StateSucceeded
	StateExpired
	StateCanceled
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "CONNECTING"
	case StateConnected:
		return "CONNECTED"
	case StateDegraded:
		return "DEGRADED"
	case StatePolling:
		return "POLLING"
	case StateSucceeded:
		return "SUCCEEDED"
	case StateExpired:
		return "EXPIRED"
	case StateCanceled:
		return "CANCELED"
	default:
		return "UNKNOWN"
	}
}

func (s State) IsTerminal() bool {
	return s == StateSucceeded || s == StateExpired || s == StateCanceled
}

var transitions = map[State][]State{
	StateConnecting: {StateConnected, StateDegraded, StateSucceeded, StateExpired, StateCanceled},
	// 连接断开后重新进入连接监督
	StateConnected: {StateConnecting, StateSucceeded, StateExpired, StateCanceled},
	StateDegraded:  {StatePolling, StateSucceeded, StateExpired, StateCanceled},
	StatePolling:   {StateSucceeded, StateExpired, StateCanceled},
}

// CanTransit 终态没有任何出边
func CanTransit(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
