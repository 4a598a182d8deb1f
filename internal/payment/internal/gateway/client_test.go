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
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ecodeclub/uniform/internal/payment/internal/domain"
	"github.com/ecodeclub/uniform/internal/payment/internal/repository/dao"
	daomocks "github.com/ecodeclub/uniform/internal/payment/internal/repository/dao/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testTerminalSN  = "100039830019"
	testTerminalKey = "a3f1c7d2"
)

type upstreamCall struct {
	path   string
	auth   string
	body   []byte
	fields map[string]string
}

func newUpstream(t *testing.T, respond func(path string) string) (*httptest.Server, *[]upstreamCall) {
	calls := &[]upstreamCall{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		fields := map[string]string{}
		require.NoError(t, json.Unmarshal(body, &fields))
		*calls = append(*calls, upstreamCall{
			path:   r.URL.Path,
			auth:   r.Header.Get("Authorization"),
			body:   body,
			fields: fields,
		})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(respond(r.URL.Path)))
	}))
	t.Cleanup(server.Close)
	return server, calls
}

func newTestClient(t *testing.T, baseURL string, terminal dao.Terminal, err error) *UpayClient {
	ctrl := gomock.NewController(t)
	terminals := daomocks.NewMockTerminalDAO(ctrl)
	terminals.EXPECT().FindByDeviceID(gomock.Any(), "byzy_pc_02").Return(terminal, err).AnyTimes()
	return NewUpayClient(Config{
		BaseURL:   baseURL,
		Operator:  "system",
		NotifyURL: "https://uniform.example.com/pay/callback",
	}, terminals, nil)
}

func TestUpayClient_CreatePrepayment(t *testing.T) {
	testCases := []struct {
		name     string
		respond  string
		terminal dao.Terminal
		daoErr   error
		req      PrepayRequest

		wantRes   PrepayResult
		wantErr   error
		wantCalls int
		wantWay   string
	}{
		{
			name:     "预下单成功",
			respond:  `{"result_code":"200","biz_response":{"result_code":"PRECREATE_SUCCESS","data":{"sn":"7895","client_sn":"SID1-1-abcdef","qr_code":"https://qr.example/1","qr_code_image_url":"https://qr.example/1.png"}}}`,
			terminal: dao.Terminal{DeviceId: "byzy_pc_02", TerminalSn: testTerminalSN, TerminalKey: testTerminalKey},
			req:      PrepayRequest{SessionID: "SID1-1-abcdef", AmountCents: 38000, Subject: "夏装2套,冬装1套", PayWay: "2"},
			wantRes: PrepayResult{
				SN:             "7895",
				ClientSN:       "SID1-1-abcdef",
				QRCode:         "https://qr.example/1",
				QRCodeImageURL: "https://qr.example/1.png",
			},
			wantCalls: 1,
			wantWay:   "2",
		},
		{
			name:      "未知支付方式默认微信",
			respond:   `{"result_code":200,"biz_response":{"result_code":"PRECREATE_SUCCESS","data":{"sn":"1","client_sn":"SID1-2-abcdef"}}}`,
			terminal:  dao.Terminal{DeviceId: "byzy_pc_02", TerminalSn: testTerminalSN, TerminalKey: testTerminalKey},
			req:       PrepayRequest{SessionID: "SID1-2-abcdef", AmountCents: 100, Subject: "夏装1套", PayWay: "9"},
			wantRes:   PrepayResult{SN: "1", ClientSN: "SID1-2-abcdef"},
			wantCalls: 1,
			wantWay:   "3",
		},
		{
			name:      "业务失败",
			respond:   `{"result_code":"200","biz_response":{"result_code":"PRECREATE_FAIL","error_message":"金额不正确"}}`,
			terminal:  dao.Terminal{DeviceId: "byzy_pc_02", TerminalSn: testTerminalSN, TerminalKey: testTerminalKey},
			req:       PrepayRequest{SessionID: "SID1-3-abcdef", AmountCents: 1, Subject: "夏装1套"},
			wantErr:   domain.ErrGateway,
			wantCalls: 1,
			wantWay:   "3",
		},
		{
			name:      "通信失败",
			respond:   `{"result_code":"400","error_message":"签名错误"}`,
			terminal:  dao.Terminal{DeviceId: "byzy_pc_02", TerminalSn: testTerminalSN, TerminalKey: testTerminalKey},
			req:       PrepayRequest{SessionID: "SID1-4-abcdef", AmountCents: 1, Subject: "夏装1套"},
			wantErr:   domain.ErrGateway,
			wantCalls: 1,
			wantWay:   "3",
		},
		{
			name:     "终端信息不完整",
			terminal: dao.Terminal{DeviceId: "byzy_pc_02", TerminalSn: testTerminalSN},
			req:      PrepayRequest{SessionID: "SID1-5-abcdef", AmountCents: 1},
			wantErr:  ErrTerminalIncomplete,
		},
		{
			name:    "终端不存在",
			daoErr:  dao.ErrRecordNotFound,
			req:     PrepayRequest{SessionID: "SID1-6-abcdef", AmountCents: 1},
			wantErr: ErrTerminalIncomplete,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			server, calls := newUpstream(t, func(path string) string {
				assert.Equal(t, pathPrecreate, path)
				return tc.respond
			})
			client := newTestClient(t, server.URL, tc.terminal, tc.daoErr)
			res, err := client.CreatePrepayment(context.Background(), tc.req)
			require.ErrorIs(t, err, tc.wantErr)
			require.Len(t, *calls, tc.wantCalls)
			if tc.wantCalls == 0 {
				return
			}
			call := (*calls)[0]
			assert.Equal(t, testTerminalSN+" "+Sign(call.body, testTerminalKey), call.auth)
			assert.Equal(t, testTerminalSN, call.fields["terminal_sn"])
			assert.Equal(t, tc.req.SessionID, call.fields["client_sn"])
			assert.Equal(t, tc.wantWay, call.fields["payway"])
			assert.Equal(t, "system", call.fields["operator"])
			assert.Equal(t, "https://uniform.example.com/pay/callback", call.fields["notify_url"])
			if err != nil {
				return
			}
			assert.Equal(t, tc.wantRes, res)
		})
	}
}

func TestUpayClient_CreatePrepayment_AmountAndSubject(t *testing.T) {
	server, calls := newUpstream(t, func(path string) string {
		return `{"result_code":"200","biz_response":{"result_code":"PRECREATE_SUCCESS","data":{}}}`
	})
	client := newTestClient(t, server.URL, dao.Terminal{TerminalSn: testTerminalSN, TerminalKey: testTerminalKey}, nil)
	_, err := client.CreatePrepayment(context.Background(), PrepayRequest{
		SessionID:   "SID2-1-abcdef",
		AmountCents: 38000,
		Subject:     strings.Repeat("冬", 150),
	})
	require.NoError(t, err)
	require.Len(t, *calls, 1)
	assert.Equal(t, "38000", (*calls)[0].fields["total_amount"])
	assert.Equal(t, strings.Repeat("冬", 100), (*calls)[0].fields["subject"])
}

func TestUpayClient_QueryStatus(t *testing.T) {
	testCases := []struct {
		name    string
		respond string
		want    domain.Confirmation
		wantErr error
	}{
		{
			name:    "已支付",
			respond: `{"result_code":"200","biz_response":{"result_code":"SUCCESS","data":{"sn":"7895","client_sn":"SID1-1-abcdef","order_status":"PAID","trade_no":"T100","finish_time":1700000000000,"total_amount":"38000"}}}`,
			want: domain.Confirmation{
				SessionID:     "SID1-1-abcdef",
				Status:        domain.GatewayStatusPaid,
				TransactionID: "T100",
				FinishTime:    1700000000000,
				TotalAmount:   38000,
			},
		},
		{
			name:    "未支付",
			respond: `{"result_code":"200","biz_response":{"result_code":"SUCCESS","data":{"client_sn":"SID1-1-abcdef","order_status":"CREATED"}}}`,
			want: domain.Confirmation{
				SessionID: "SID1-1-abcdef",
				Status:    domain.GatewayStatusCreated,
			},
		},
		{
			name:    "查询失败",
			respond: `{"result_code":"400","error_message":"订单不存在"}`,
			wantErr: domain.ErrGateway,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			server, calls := newUpstream(t, func(path string) string {
				assert.Equal(t, pathQuery, path)
				return tc.respond
			})
			client := newTestClient(t, server.URL, dao.Terminal{TerminalSn: testTerminalSN, TerminalKey: testTerminalKey}, nil)
			got, err := client.QueryStatus(context.Background(), "SID1-1-abcdef")
			require.ErrorIs(t, err, tc.wantErr)
			require.Len(t, *calls, 1)
			assert.Equal(t, testTerminalSN+" "+Sign((*calls)[0].body, testTerminalKey), (*calls)[0].auth)
			assert.Equal(t, map[string]string{"terminal_sn": testTerminalSN, "client_sn": "SID1-1-abcdef"}, (*calls)[0].fields)
			if err != nil {
				return
			}
			got.Payload = nil
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestUpayClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)
	client := newTestClient(t, server.URL, dao.Terminal{TerminalSn: testTerminalSN, TerminalKey: testTerminalKey}, nil)
	_, err := client.QueryStatus(context.Background(), "SID1-1-abcdef")
	assert.ErrorIs(t, err, domain.ErrGateway)

	server.Close()
	_, err = client.QueryStatus(context.Background(), "SID1-1-abcdef")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrGateway))
}

func TestParseCallback(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		want    domain.Confirmation
		wantErr error
	}{
		{
			name: "字符串数字",
			body: `{"client_sn":"SID1-1-abcdef","order_status":"PAID","trade_no":"T1","finish_time":"1700000000000","total_amount":"38000"}`,
			want: domain.Confirmation{
				SessionID:     "SID1-1-abcdef",
				Status:        domain.GatewayStatusPaid,
				TransactionID: "T1",
				FinishTime:    1700000000000,
				TotalAmount:   38000,
			},
		},
		{
			name: "数字字段",
			body: `{"client_sn":"SID1-1-abcdef","order_status":"PAY_CANCELED","finish_time":1700000000000,"total_amount":38000}`,
			want: domain.Confirmation{
				SessionID:   "SID1-1-abcdef",
				Status:      domain.GatewayStatusCanceled,
				FinishTime:  1700000000000,
				TotalAmount: 38000,
			},
		},
		{
			name:    "缺少client_sn",
			body:    `{"order_status":"PAID"}`,
			wantErr: domain.ErrMalformedCallback,
		},
		{
			name:    "不是JSON",
			body:    `client_sn=1`,
			wantErr: domain.ErrMalformedCallback,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseCallback([]byte(tc.body))
			require.ErrorIs(t, err, tc.wantErr)
			if err != nil {
				return
			}
			assert.Equal(t, tc.want.SessionID, got.Payload["client_sn"])
			got.Payload = nil
			assert.Equal(t, tc.want, got)
		})
	}
}
