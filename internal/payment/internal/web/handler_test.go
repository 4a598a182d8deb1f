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

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecodeclub/ekit/iox"
	"github.com/ecodeclub/uniform/internal/order"
	"github.com/ecodeclub/uniform/internal/payment/internal/domain"
	"github.com/ecodeclub/uniform/internal/payment/internal/errs"
	paymentmocks "github.com/ecodeclub/uniform/internal/payment/mocks"
	"github.com/ecodeclub/uniform/internal/test"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testSessionID = "SID1001-1700000000000-abcdef"

func newTestServer(t *testing.T, mock func(svc *paymentmocks.MockService), mockCallback bool) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	ctrl := gomock.NewController(t)
	svc := paymentmocks.NewMockService(ctrl)
	mock(svc)
	server := gin.New()
	NewHandler(svc, mockCallback).PublicRoutes(server)
	return server
}

func TestHandler_Callback(t *testing.T) {
	body := []byte(`{"client_sn":"` + testSessionID + `","order_status":"PAID"}`)
	testCases := []struct {
		name      string
		signature string
		mock      func(svc *paymentmocks.MockService)
		wantCode  int
		wantBody  string
	}{
		{
			name:      "处理成功",
			signature: "sig",
			mock: func(svc *paymentmocks.MockService) {
				svc.EXPECT().OnGatewayCallback(gomock.Any(), body, "sig").
					Return(domain.CallbackResult{SessionID: testSessionID, Transitioned: true}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: "success",
		},
		{
			name:      "重复回调同样应答",
			signature: "sig",
			mock: func(svc *paymentmocks.MockService) {
				svc.EXPECT().OnGatewayCallback(gomock.Any(), body, "sig").
					Return(domain.CallbackResult{SessionID: testSessionID}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: "success",
		},
		{
			name:      "签名错误",
			signature: "bad",
			mock: func(svc *paymentmocks.MockService) {
				svc.EXPECT().OnGatewayCallback(gomock.Any(), body, "bad").
					Return(domain.CallbackResult{}, domain.ErrSignatureInvalid)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "缺少签名",
			mock: func(svc *paymentmocks.MockService) {
				svc.EXPECT().OnGatewayCallback(gomock.Any(), body, "").
					Return(domain.CallbackResult{}, fmt.Errorf("%w: 缺少签名或请求体", domain.ErrMalformedCallback))
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:      "系统错误让网关重试",
			signature: "sig",
			mock: func(svc *paymentmocks.MockService) {
				svc.EXPECT().OnGatewayCallback(gomock.Any(), body, "sig").
					Return(domain.CallbackResult{}, fmt.Errorf("数据库错误"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			server := newTestServer(t, tc.mock, false)
			req, err := http.NewRequest(http.MethodPost, "/pay/callback", bytes.NewReader(body))
			require.NoError(t, err)
			req.Header.Set("Content-Type", "application/json")
			if tc.signature != "" {
				req.Header.Set("Authorization", tc.signature)
			}
			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)
			assert.Equal(t, tc.wantCode, recorder.Code)
			if tc.wantBody != "" {
				assert.Equal(t, tc.wantBody, recorder.Body.String())
			}
		})
	}
}

func TestHandler_Prepay(t *testing.T) {
	testCases := []struct {
		name     string
		req      PrepayReq
		mock     func(svc *paymentmocks.MockService)
		wantCode int
		wantResp PrepayResp
	}{
		{
			name: "创建成功",
			req:  PrepayReq{IDCard: "110101201001011234", PayWay: "2"},
			mock: func(svc *paymentmocks.MockService) {
				svc.EXPECT().Prepay(gomock.Any(), "110101201001011234", domain.PayWayAlipay).Return(domain.Session{
					ID:          testSessionID,
					StudentID:   1001,
					OrderIDs:    []int64{1, 2},
					TotalAmount: 44000,
					Subject:     "夏装3套,冬装1套",
					QRCode:      "https://qr.example/1",
					Ctime:       1700000000000,
				}, nil)
			},
			wantResp: PrepayResp{
				ClientSn:    testSessionID,
				QRCode:      "https://qr.example/1",
				TotalAmount: 44000,
				Subject:     "夏装3套,冬装1套",
				OrderIDs:    []int64{1, 2},
				Ctime:       1700000000000,
				ExpireAt:    1700000300000,
			},
		},
		{
			name: "没有待支付订单",
			req:  PrepayReq{IDCard: "110101201001011234"},
			mock: func(svc *paymentmocks.MockService) {
				svc.EXPECT().Prepay(gomock.Any(), "110101201001011234", domain.PayWay("")).
					Return(domain.Session{}, fmt.Errorf("%w: 没有待支付订单", order.ErrInvalidState))
			},
			wantCode: errs.InvalidState.Code,
		},
		{
			name: "重复提交",
			req:  PrepayReq{IDCard: "110101201001011234"},
			mock: func(svc *paymentmocks.MockService) {
				svc.EXPECT().Prepay(gomock.Any(), "110101201001011234", domain.PayWay("")).
					Return(domain.Session{}, domain.ErrDuplicatePrepay)
			},
			wantCode: errs.DuplicatePrepay.Code,
		},
		{
			name: "网关失败",
			req:  PrepayReq{IDCard: "110101201001011234"},
			mock: func(svc *paymentmocks.MockService) {
				svc.EXPECT().Prepay(gomock.Any(), "110101201001011234", domain.PayWay("")).
					Return(domain.Session{}, domain.ErrGateway)
			},
			wantCode: errs.GatewayError.Code,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			server := newTestServer(t, tc.mock, false)
			req, err := http.NewRequest(http.MethodPost, "/pay/prepay", iox.NewJSONReader(tc.req))
			require.NoError(t, err)
			req.Header.Set("Content-Type", "application/json")
			recorder := test.NewJSONResponseRecorder[PrepayResp]()
			server.ServeHTTP(recorder, req)
			require.Equal(t, http.StatusOK, recorder.Code)
			res := recorder.MustScan()
			assert.Equal(t, tc.wantCode, res.Code)
			assert.Equal(t, tc.wantResp, res.Data)
		})
	}
}

func TestHandler_Status(t *testing.T) {
	testCases := []struct {
		name     string
		mock     func(svc *paymentmocks.MockService)
		wantCode int
		wantResp StatusResp
	}{
		{
			name: "已支付",
			mock: func(svc *paymentmocks.MockService) {
				svc.EXPECT().OnClientPoll(gomock.Any(), testSessionID).Return(domain.StatusResult{
					SessionID: testSessionID,
					Status:    domain.GatewayStatusPaid,
					ExpireAt:  1700000300000,
				}, nil)
			},
			wantResp: StatusResp{ClientSn: testSessionID, Status: "PAID", Paid: true, ExpireAt: 1700000300000},
		},
		{
			name: "未支付",
			mock: func(svc *paymentmocks.MockService) {
				svc.EXPECT().OnClientPoll(gomock.Any(), testSessionID).Return(domain.StatusResult{
					SessionID: testSessionID,
					Status:    domain.GatewayStatusCreated,
					ExpireAt:  1700000300000,
				}, nil)
			},
			wantResp: StatusResp{ClientSn: testSessionID, Status: "CREATED", ExpireAt: 1700000300000},
		},
		{
			name: "会话不存在",
			mock: func(svc *paymentmocks.MockService) {
				svc.EXPECT().OnClientPoll(gomock.Any(), testSessionID).Return(domain.StatusResult{}, domain.ErrSessionNotFound)
			},
			wantCode: errs.NotFound.Code,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			server := newTestServer(t, tc.mock, false)
			req, err := http.NewRequest(http.MethodGet, "/pay/status/"+testSessionID, nil)
			require.NoError(t, err)
			recorder := test.NewJSONResponseRecorder[StatusResp]()
			server.ServeHTTP(recorder, req)
			require.Equal(t, http.StatusOK, recorder.Code)
			res := recorder.MustScan()
			assert.Equal(t, tc.wantCode, res.Code)
			assert.Equal(t, tc.wantResp, res.Data)
		})
	}
}

func TestHandler_MockCallback(t *testing.T) {
	t.Run("默认关闭", func(t *testing.T) {
		server := newTestServer(t, func(svc *paymentmocks.MockService) {}, false)
		req, err := http.NewRequest(http.MethodPost, "/pay/mock_cb", iox.NewJSONReader(MockCallbackReq{ClientSn: testSessionID}))
		require.NoError(t, err)
		recorder := httptest.NewRecorder()
		server.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("测试环境打开", func(t *testing.T) {
		server := newTestServer(t, func(svc *paymentmocks.MockService) {
			svc.EXPECT().MockCallback(gomock.Any(), testSessionID).
				Return(domain.CallbackResult{SessionID: testSessionID, Transitioned: true, Notified: true}, nil)
		}, true)
		req, err := http.NewRequest(http.MethodPost, "/pay/mock_cb", iox.NewJSONReader(MockCallbackReq{ClientSn: testSessionID}))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		recorder := test.NewJSONResponseRecorder[MockCallbackResp]()
		server.ServeHTTP(recorder, req)
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, MockCallbackResp{Transitioned: true, Notified: true}, recorder.MustScan().Data)
	})
}
