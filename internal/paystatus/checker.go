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

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

var _ StatusChecker = &HTTPStatusChecker{}

// HTTPStatusChecker 调用服务端 /pay/status/:clientSn
type HTTPStatusChecker struct {
	client *resty.Client
}

func NewHTTPStatusChecker(baseURL string, timeout time.Duration) *HTTPStatusChecker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPStatusChecker{
		client: resty.New().SetBaseURL(baseURL).SetTimeout(timeout),
	}
}

type statusResult struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		ClientSn string `json:"clientSn"`
		Status   string `json:"status"`
		Paid     bool   `json:"paid"`
		ExpireAt int64  `json:"expireAt"`
	} `json:"data"`
}

func (h *HTTPStatusChecker) Check(ctx context.Context, sessionID string) (Result, error) {
	var res statusResult
	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("clientSn", sessionID).
		SetResult(&res).
		Get("/pay/status/{clientSn}")
	if err != nil {
		return Result{}, errors.Wrapf(err, "查询支付状态失败 client_sn=%s", sessionID)
	}
	if resp.StatusCode() != http.StatusOK {
		return Result{}, fmt.Errorf("查询支付状态失败, HTTP 状态码 %d", resp.StatusCode())
	}
	if res.Code != 0 {
		return Result{}, fmt.Errorf("查询支付状态失败, code=%d msg=%s", res.Code, res.Msg)
	}
	status := res.Data.Status
	if res.Data.Paid {
		status = StatusPaid
	}
	return Result{
		SessionID: res.Data.ClientSn,
		Status:    status,
		ExpireAt:  res.Data.ExpireAt,
		Payload: map[string]any{
			"client_sn":    res.Data.ClientSn,
			"order_status": status,
		},
	}, nil
}
