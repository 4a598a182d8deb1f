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

package domain

type MessageType string

const (
	MessageTypePaymentSuccess        MessageType = "PAYMENT_SUCCESS"
	MessageTypeConnectionEstablished MessageType = "CONNECTION_ESTABLISHED"
)

// Message 推送给支付页面的消息
type Message struct {
	Type      MessageType    `json:"type"`
	SessionID string         `json:"-"`
	Data      map[string]any `json:"data,omitempty"`
}

// NewPaymentSuccessMessage data 为网关回调的原始内容, client_sn 总是以会话号为准
func NewPaymentSuccessMessage(sessionID string, payload map[string]any) Message {
	data := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		data[k] = v
	}
	data["client_sn"] = sessionID
	return Message{
		Type:      MessageTypePaymentSuccess,
		SessionID: sessionID,
		Data:      data,
	}
}
