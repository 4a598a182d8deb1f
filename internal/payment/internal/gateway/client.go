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
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/ecodeclub/uniform/internal/payment/internal/domain"
	"github.com/ecodeclub/uniform/internal/payment/internal/repository/dao"
	"github.com/go-resty/resty/v2"
	"github.com/gotomicro/ego/core/elog"
	"github.com/pkg/errors"
)

var ErrTerminalIncomplete = errors.New("终端信息不完整")

//go:generate mockgen -source=./client.go -package=gatewaymocks -destination=./mocks/client.mock.go Client
type Client interface {
	CreatePrepayment(ctx context.Context, req PrepayRequest) (PrepayResult, error)
	// QueryStatus 只读, 不会改变网关侧的订单
	QueryStatus(ctx context.Context, sessionID string) (domain.Confirmation, error)
	VerifyCallbackSignature(rawBody []byte, signature string) bool
}

type Config struct {
	BaseURL   string        `yaml:"baseURL"`
	DeviceID  string        `yaml:"deviceID"`
	Operator  string        `yaml:"operator"`
	NotifyURL string        `yaml:"notifyURL"`
	PublicKey string        `yaml:"publicKey"`
	Timeout   time.Duration `yaml:"timeout"`
}

var _ Client = &UpayClient{}

// UpayClient 收钱吧 upay v2 接口
type UpayClient struct {
	client    *resty.Client
	terminals dao.TerminalDAO
	verifier  *Verifier
	cfg       Config
	l         *elog.Component
}

func NewUpayClient(cfg Config, terminals dao.TerminalDAO, verifier *Verifier) *UpayClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.DeviceID == "" {
		cfg.DeviceID = "byzy_pc_02"
	}
	return &UpayClient{
		client:    resty.New().SetBaseURL(cfg.BaseURL).SetTimeout(cfg.Timeout),
		terminals: terminals,
		verifier:  verifier,
		cfg:       cfg,
		l:         elog.DefaultLogger.With(elog.FieldComponent("payment.gateway")),
	}
}

func (c *UpayClient) CreatePrepayment(ctx context.Context, req PrepayRequest) (PrepayResult, error) {
	t, err := c.terminal(ctx)
	if err != nil {
		return PrepayResult{}, err
	}
	body, err := json.Marshal(precreatePayload{
		TerminalSN:  t.TerminalSn,
		ClientSN:    req.SessionID,
		TotalAmount: strconv.FormatInt(req.AmountCents, 10),
		PayWay:      string(domain.PayWay(req.PayWay).OrDefault()),
		Subject:     TruncateSubject(req.Subject),
		Operator:    c.cfg.Operator,
		NotifyURL:   c.cfg.NotifyURL,
	})
	if err != nil {
		return PrepayResult{}, err
	}
	resp, err := c.post(ctx, pathPrecreate, t, body)
	if err != nil {
		return PrepayResult{}, err
	}
	if string(resp.ResultCode) != resultCodeOK || resp.BizResponse.ResultCode != bizPrecreateOK {
		c.l.Error("预下单失败",
			elog.String("client_sn", req.SessionID),
			elog.String("result_code", string(resp.ResultCode)),
			elog.String("biz_result_code", resp.BizResponse.ResultCode),
			elog.String("error_message", resp.errorMessage()))
		return PrepayResult{}, fmt.Errorf("%w: %s", domain.ErrGateway, resp.errorMessage())
	}
	data := resp.BizResponse.Data
	return PrepayResult{
		SN:             data.SN,
		ClientSN:       data.ClientSN,
		QRCode:         data.QRCode,
		QRCodeImageURL: data.QRCodeImageURL,
	}, nil
}

func (c *UpayClient) QueryStatus(ctx context.Context, sessionID string) (domain.Confirmation, error) {
	t, err := c.terminal(ctx)
	if err != nil {
		return domain.Confirmation{}, err
	}
	body, err := json.Marshal(queryPayload{
		TerminalSN: t.TerminalSn,
		ClientSN:   sessionID,
	})
	if err != nil {
		return domain.Confirmation{}, err
	}
	resp, err := c.post(ctx, pathQuery, t, body)
	if err != nil {
		return domain.Confirmation{}, err
	}
	if string(resp.ResultCode) != resultCodeOK {
		return domain.Confirmation{}, fmt.Errorf("%w: %s", domain.ErrGateway, resp.errorMessage())
	}
	data := resp.BizResponse.Data
	return domain.Confirmation{
		SessionID:     sessionID,
		Status:        domain.GatewayStatus(data.OrderStatus),
		TransactionID: data.TradeNo,
		FinishTime:    data.FinishTime.Int64(),
		TotalAmount:   data.TotalAmount.Int64(),
		Payload: map[string]any{
			"client_sn":    sessionID,
			"sn":           data.SN,
			"order_status": data.OrderStatus,
			"trade_no":     data.TradeNo,
			"finish_time":  string(data.FinishTime),
			"total_amount": string(data.TotalAmount),
		},
	}, nil
}

func (c *UpayClient) VerifyCallbackSignature(rawBody []byte, signature string) bool {
	return c.verifier.Verify(rawBody, signature)
}

// post 请求体只序列化一次, 签名和发送的是同一份字节
func (c *UpayClient) post(ctx context.Context, path string, t dao.Terminal, body []byte) (upayResponse, error) {
	var res upayResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", t.TerminalSn+" "+Sign(body, t.TerminalKey)).
		SetBody(body).
		Post(path)
	if err != nil {
		return res, errors.Wrapf(err, "请求支付网关 %s 失败", path)
	}
	if resp.IsError() {
		return res, fmt.Errorf("%w: HTTP %d", domain.ErrGateway, resp.StatusCode())
	}
	if err = json.Unmarshal(resp.Body(), &res); err != nil {
		return res, errors.Wrapf(err, "解析支付网关 %s 响应失败", path)
	}
	return res, nil
}

func (c *UpayClient) terminal(ctx context.Context) (dao.Terminal, error) {
	t, err := c.terminals.FindByDeviceID(ctx, c.cfg.DeviceID)
	if errors.Is(err, dao.ErrRecordNotFound) {
		return t, fmt.Errorf("%w: device_id=%s", ErrTerminalIncomplete, c.cfg.DeviceID)
	}
	if err != nil {
		return t, err
	}
	if t.TerminalSn == "" || t.TerminalKey == "" {
		return t, fmt.Errorf("%w: device_id=%s", ErrTerminalIncomplete, c.cfg.DeviceID)
	}
	return t, nil
}

// ParseCallback 解析回调内容, 原始字段保留在 Payload 里原样推给客户端
func ParseCallback(rawBody []byte) (domain.Confirmation, error) {
	var body callbackBody
	if err := json.Unmarshal(rawBody, &body); err != nil {
		return domain.Confirmation{}, fmt.Errorf("%w: %w", domain.ErrMalformedCallback, err)
	}
	if body.ClientSN == "" {
		return domain.Confirmation{}, fmt.Errorf("%w: client_sn", domain.ErrMalformedCallback)
	}
	payload := map[string]any{}
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		return domain.Confirmation{}, fmt.Errorf("%w: %w", domain.ErrMalformedCallback, err)
	}
	return domain.Confirmation{
		SessionID:     body.ClientSN,
		Status:        domain.GatewayStatus(body.OrderStatus),
		TransactionID: body.TradeNo,
		FinishTime:    body.FinishTime.Int64(),
		TotalAmount:   body.TotalAmount.Int64(),
		Payload:       payload,
	}, nil
}

// TruncateSubject 商品描述最多 100 个字符
func TruncateSubject(subject string) string {
	if utf8.RuneCountInString(subject) <= maxSubjectRuneSize {
		return subject
	}
	return string([]rune(subject)[:maxSubjectRuneSize])
}
