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

package web

type PrepayReq struct {
	IDCard string `json:"idCard"`
	// 2 支付宝, 3 微信, 默认微信
	PayWay string `json:"payWay"`
}

type PrepayResp struct {
	ClientSn       string  `json:"clientSn"`
	QRCode         string  `json:"qrCode"`
	QRCodeImageURL string  `json:"qrCodeImageUrl,omitempty"`
	TotalAmount    int64   `json:"totalAmount"`
	Subject        string  `json:"subject"`
	OrderIDs       []int64 `json:"orderIds"`
	Ctime          int64   `json:"ctime"`
	ExpireAt       int64   `json:"expireAt"`
}

type StatusResp struct {
	ClientSn string `json:"clientSn"`
	Status   string `json:"status"`
	Paid     bool   `json:"paid"`
	ExpireAt int64  `json:"expireAt"`
}

type MockCallbackReq struct {
	ClientSn string `json:"clientSn"`
}

type MockCallbackResp struct {
	Transitioned bool `json:"transitioned"`
	Notified     bool `json:"notified"`
}
