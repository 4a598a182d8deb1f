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

package gateway

import (
	"bytes"
	"encoding/json"
	"strconv"
)

const (
	resultCodeOK       = "200"
	bizPrecreateOK     = "PRECREATE_SUCCESS"
	pathPrecreate      = "/upay/v2/precreate"
	pathQuery          = "/upay/v2/query"
	maxSubjectRuneSize = 100
)

type PrepayRequest struct {
	SessionID   string
	AmountCents int64
	Subject     string
	PayWay      string
}

type PrepayResult struct {
	SN             string
	ClientSN       string
	QRCode         string
	QRCodeImageURL string
}

type precreatePayload struct {
	TerminalSN  string `json:"terminal_sn"`
	ClientSN    string `json:"client_sn"`
	TotalAmount string `json:"total_amount"`
	PayWay      string `json:"payway"`
	Subject     string `json:"subject"`
	Operator    string `json:"operator"`
	NotifyURL   string `json:"notify_url"`
}

type queryPayload struct {
	TerminalSN string `json:"terminal_sn"`
	ClientSN   string `json:"client_sn"`
}

type upayResponse struct {
	ResultCode   flexString  `json:"result_code"`
	ErrorCode    string      `json:"error_code"`
	ErrorMessage string      `json:"error_message"`
	BizResponse  bizResponse `json:"biz_response"`
}

type bizResponse struct {
	ResultCode   string    `json:"result_code"`
	ErrorCode    string    `json:"error_code"`
	ErrorMessage string    `json:"error_message"`
	Data         upayOrder `json:"data"`
}

func (r upayResponse) errorMessage() string {
	if r.BizResponse.ErrorMessage != "" {
		return r.BizResponse.ErrorMessage
	}
	if r.ErrorMessage != "" {
		return r.ErrorMessage
	}
	return "未知错误"
}

type upayOrder struct {
	SN             string     `json:"sn"`
	ClientSN       string     `json:"client_sn"`
	TradeNo        string     `json:"trade_no"`
	OrderStatus    string     `json:"order_status"`
	TotalAmount    flexString `json:"total_amount"`
	FinishTime     flexString `json:"finish_time"`
	QRCode         string     `json:"qr_code"`
	QRCodeImageURL string     `json:"qr_code_image_url"`
}

// callbackBody 网关回调内容, 数字字段可能是字符串也可能是数字
type callbackBody struct {
	SN          string     `json:"sn"`
	ClientSN    string     `json:"client_sn"`
	TradeNo     string     `json:"trade_no"`
	OrderStatus string     `json:"order_status"`
	TotalAmount flexString `json:"total_amount"`
	FinishTime  flexString `json:"finish_time"`
}

// flexString 同时兼容 "123" 和 123 两种写法
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

func (f flexString) Int64() int64 {
	v, err := strconv.ParseInt(string(f), 10, 64)
	if err != nil {
		return 0
	}
	return v
}
