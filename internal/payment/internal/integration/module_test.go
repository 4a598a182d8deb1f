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

//go:build e2e

package integration

import (
	"bytes"
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ecodeclub/ekit/iox"
	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/uniform/internal/notification"
	"github.com/ecodeclub/uniform/internal/order"
	"github.com/ecodeclub/uniform/internal/payment"
	"github.com/ecodeclub/uniform/internal/payment/internal/repository/dao"
	"github.com/ecodeclub/uniform/internal/payment/internal/web"
	"github.com/ecodeclub/uniform/internal/test"
	testioc "github.com/ecodeclub/uniform/internal/test/ioc"
	"github.com/ego-component/egorm"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/econf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	testIDCard   = "110101201001011234"
	testDeviceID = "e2e_device"
)

func TestPaymentModule(t *testing.T) {
	suite.Run(t, new(PaymentModuleTestSuite))
}

type PaymentModuleTestSuite struct {
	suite.Suite
	server   *gin.Engine
	db       *egorm.Component
	module   *payment.Module
	notify   *notification.Module
	upstream *httptest.Server
	priv     *rsa.PrivateKey
	consumer mq.Consumer
}

func (s *PaymentModuleTestSuite) SetupSuite() {
	t := s.T()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	s.priv = priv
	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(t, err)
	publicKey := string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))

	s.upstream = httptest.NewServer(http.HandlerFunc(s.fakeGateway))
	s.db = testioc.InitDB()

	econf.Set("order", map[string]any{"nodeId": 1})
	econf.Set("payment", map[string]any{
		"mockCallback": true,
		"gateway": map[string]any{
			"baseURL":   s.upstream.URL,
			"deviceID":  testDeviceID,
			"operator":  "e2e",
			"notifyURL": "http://localhost/pay/callback",
			"publicKey": publicKey,
			"timeout":   "3s",
		},
	})

	om, err := order.InitModule(s.db)
	require.NoError(t, err)
	s.notify = notification.InitModule()
	q := testioc.InitMQ()
	s.module, err = payment.InitModule(s.db, testioc.InitCache(), q, om, s.notify)
	require.NoError(t, err)
	s.consumer, err = q.Consumer(payment.SucceededEventName, "e2e")
	require.NoError(t, err)

	gin.SetMode(gin.ReleaseMode)
	server := gin.New()
	s.module.Hdl.PublicRoutes(server)
	s.server = server
}

func (s *PaymentModuleTestSuite) TearDownSuite() {
	s.upstream.Close()
}

func (s *PaymentModuleTestSuite) SetupTest() {
	t := s.T()
	now := time.Now().UnixMilli()
	err := dao.NewTerminalGORMDAO(s.db).Upsert(context.Background(), dao.Terminal{
		DeviceId:    testDeviceID,
		TerminalSn:  "T-E2E",
		TerminalKey: "key",
	})
	require.NoError(t, err)
	require.NoError(t, s.db.Exec("INSERT INTO `students` (id, school_id, class_id, name, id_card, ctime, utime) VALUES (?, 1, 1, '小明', ?, ?, ?)",
		1001, testIDCard, now, now).Error)
	require.NoError(t, s.db.Exec("INSERT INTO `orders` (id, order_no, student_id, total_amount, status, ctime, utime) VALUES (1, 'UO-E2E-1', 1001, 24000, 'PENDING', ?, ?), (2, 'UO-E2E-2', 1001, 20000, 'PENDING', ?, ?)",
		now, now, now, now).Error)
	require.NoError(t, s.db.Exec("INSERT INTO `order_items` (order_id, product_id, product_type, product_name, quantity, price_snapshot, ctime, utime) VALUES (1, 11, 0, '夏装', 3, 8000, ?, ?), (2, 13, 2, '冬装', 1, 20000, ?, ?)",
		now, now, now, now).Error)
}

func (s *PaymentModuleTestSuite) TearDownTest() {
	for _, table := range []string{"students", "orders", "order_items", "payment_terminals"} {
		require.NoError(s.T(), s.db.Exec("TRUNCATE TABLE `"+table+"`").Error)
	}
}

func (s *PaymentModuleTestSuite) fakeGateway(w http.ResponseWriter, r *http.Request) {
	var req map[string]any
	_ = json.NewDecoder(r.Body).Decode(&req)
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/upay/v2/precreate":
		_ = json.NewEncoder(w).Encode(map[string]any{
			"result_code": "200",
			"biz_response": map[string]any{
				"result_code": "PRECREATE_SUCCESS",
				"data": map[string]any{
					"sn":        "GW-" + req["client_sn"].(string),
					"client_sn": req["client_sn"],
					"qr_code":   "https://qr.example/" + req["client_sn"].(string),
				},
			},
		})
	case "/upay/v2/query":
		_ = json.NewEncoder(w).Encode(map[string]any{
			"result_code": "200",
			"biz_response": map[string]any{
				"result_code": "SUCCESS",
				"data": map[string]any{
					"client_sn":    req["client_sn"],
					"order_status": "CREATED",
				},
			},
		})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (s *PaymentModuleTestSuite) sign(body []byte) string {
	digest := sha256.Sum256(body)
	sig, err := rsa.SignPKCS1v15(rand.Reader, s.priv, crypto.SHA256, digest[:])
	require.NoError(s.T(), err)
	return base64.StdEncoding.EncodeToString(sig)
}

func (s *PaymentModuleTestSuite) prepay() web.PrepayResp {
	t := s.T()
	req, err := http.NewRequest(http.MethodPost, "/pay/prepay", iox.NewJSONReader(web.PrepayReq{IDCard: testIDCard}))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	recorder := test.NewJSONResponseRecorder[web.PrepayResp]()
	s.server.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)
	res := recorder.MustScan()
	require.Equal(t, 0, res.Code, res.Msg)
	return res.Data
}

func (s *PaymentModuleTestSuite) callback(body []byte, signature string) *httptest.ResponseRecorder {
	req, err := http.NewRequest(http.MethodPost, "/pay/callback", bytes.NewReader(body))
	require.NoError(s.T(), err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", signature)
	recorder := httptest.NewRecorder()
	s.server.ServeHTTP(recorder, req)
	return recorder
}

func (s *PaymentModuleTestSuite) orderStatuses() map[int64]string {
	var rows []struct {
		Id     int64
		Status string
	}
	require.NoError(s.T(), s.db.Raw("SELECT id, status FROM `orders` ORDER BY id").Scan(&rows).Error)
	res := make(map[int64]string, len(rows))
	for _, r := range rows {
		res[r.Id] = r.Status
	}
	return res
}

func (s *PaymentModuleTestSuite) TestPrepayAndCallback() {
	t := s.T()
	sess := s.prepay()
	assert.Equal(t, int64(44000), sess.TotalAmount)
	assert.Equal(t, "夏装3套,冬装1套", sess.Subject)
	assert.ElementsMatch(t, []int64{1, 2}, sess.OrderIDs)
	assert.Equal(t, "https://qr.example/"+sess.ClientSn, sess.QRCode)

	// 二维码未过期时复用同一个会话
	again := s.prepay()
	assert.Equal(t, sess.ClientSn, again.ClientSn)

	sub := &recordSubscriber{}
	s.notify.Svc.Subscribe(sess.ClientSn, sub)
	defer s.notify.Svc.Unsubscribe(sess.ClientSn, sub)

	body := []byte(`{"sn":"GW-1","client_sn":"` + sess.ClientSn + `","trade_no":"TX-E2E","order_status":"PAID","total_amount":"44000","finish_time":"1700000000000"}`)
	recorder := s.callback(body, "bad-signature")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, map[int64]string{1: "PENDING", 2: "PENDING"}, s.orderStatuses())

	signature := s.sign(body)
	for i := 0; i < 3; i++ {
		recorder = s.callback(body, signature)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, web.CallbackAck, recorder.Body.String())
	}
	assert.Equal(t, map[int64]string{1: "PAID", 2: "PAID"}, s.orderStatuses())

	msgs := sub.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, notification.MessageTypePaymentSuccess, msgs[0].Type)
	assert.Equal(t, sess.ClientSn, msgs[0].Data["client_sn"])
	assert.Equal(t, "TX-E2E", msgs[0].Data["trade_no"])

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	msg, err := s.consumer.Consume(ctx)
	require.NoError(t, err)
	var evt payment.SucceededEvent
	require.NoError(t, json.Unmarshal(msg.Value, &evt))
	assert.Equal(t, sess.ClientSn, evt.SessionID)
	assert.Equal(t, int64(1001), evt.StudentID)
	assert.ElementsMatch(t, []int64{1, 2}, evt.OrderIDs)
	assert.Equal(t, "TX-E2E", evt.TransactionID)

	// 已支付后轮询不再访问网关
	req, err := http.NewRequest(http.MethodGet, "/pay/status/"+sess.ClientSn, nil)
	require.NoError(t, err)
	statusRecorder := test.NewJSONResponseRecorder[web.StatusResp]()
	s.server.ServeHTTP(statusRecorder, req)
	status := statusRecorder.MustScan().Data
	assert.True(t, status.Paid)
	assert.Equal(t, "PAID", status.Status)
}

func (s *PaymentModuleTestSuite) TestPollPending() {
	t := s.T()
	sess := s.prepay()
	req, err := http.NewRequest(http.MethodGet, "/pay/status/"+sess.ClientSn, nil)
	require.NoError(t, err)
	recorder := test.NewJSONResponseRecorder[web.StatusResp]()
	s.server.ServeHTTP(recorder, req)
	status := recorder.MustScan().Data
	assert.False(t, status.Paid)
	assert.Equal(t, "CREATED", status.Status)
	assert.Equal(t, map[int64]string{1: "PENDING", 2: "PENDING"}, s.orderStatuses())
}

func (s *PaymentModuleTestSuite) TestMockCallback() {
	t := s.T()
	sess := s.prepay()
	req, err := http.NewRequest(http.MethodPost, "/pay/mock_cb", iox.NewJSONReader(web.MockCallbackReq{ClientSn: sess.ClientSn}))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	recorder := test.NewJSONResponseRecorder[web.MockCallbackResp]()
	s.server.ServeHTTP(recorder, req)
	res := recorder.MustScan()
	assert.Equal(t, 0, res.Code)
	assert.True(t, res.Data.Transitioned)
	assert.Equal(t, map[int64]string{1: "PAID", 2: "PAID"}, s.orderStatuses())

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_, err = s.consumer.Consume(ctx)
	require.NoError(t, err)
}

type recordSubscriber struct {
	mu   sync.Mutex
	msgs []notification.Message
}

func (r *recordSubscriber) Send(_ context.Context, msg notification.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	return nil
}

func (r *recordSubscriber) Close() error {
	return nil
}

func (r *recordSubscriber) messages() []notification.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notification.Message(nil), r.msgs...)
}
