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
	"crypto"
	"crypto/md5"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"

	"github.com/wechatpay-apiv3/wechatpay-go/utils"
)

const (
	pemBegin = "-----BEGIN PUBLIC KEY-----"
	pemEnd   = "-----END PUBLIC KEY-----"
)

// DefaultPublicKey 网关公布的回调签名公钥, 配置为空时使用
const DefaultPublicKey = `-----BEGIN PUBLIC KEY-----
MIIBIjANBgkqhkiG9w0BAQEFAAOCAQ8AMIIBCgKCAQEA5+MNqcjgw4bsSWhJfw2M
+gQB7P+pEiYOfvRmA6kt7Wisp0J3JbOtsLXGnErn5ZY2D8KkSAHtMYbeddphFZQJ
zUbiaDi75GUAG9XS3MfoKAhvNkK15VcCd8hFgNYCZdwEjZrvx6Zu1B7c29S64LQP
HceS0nyXF8DwMIVRcIWKy02cexgX0UmUPE0A2sJFoV19ogAHaBIhx5FkTy+eeBJE
bU03Do97q5G9IN1O3TssvbYBAzugz+yUPww2LadaKexhJGg+5+ufoDd0+V3oFL0/
ebkJvD0uiBzdE3/ci/tANpInHAUDIHoWZCKxhn60f3/3KiR8xuj2vASgEqphxT5O
fwIDAQAB
-----END PUBLIC KEY-----`

// Sign 请求签名: MD5(body + terminalKey) 的大写十六进制
func Sign(body []byte, terminalKey string) string {
	h := md5.New()
	h.Write(body)
	h.Write([]byte(terminalKey))
	return strings.ToUpper(hex.EncodeToString(h.Sum(nil)))
}

// NormalizePublicKey 修复网关公钥的常见格式问题:
// 只有三个短横线的头尾, 以及整段 base64 没有换行
func NormalizePublicKey(key string) string {
	key = strings.TrimSpace(key)
	if strings.Contains(key, pemBegin) && strings.Contains(key, pemEnd) && strings.Contains(key, "\n") {
		return key
	}
	if !strings.Contains(key, pemBegin) {
		key = strings.Replace(key, "---BEGIN PUBLIC KEY---", pemBegin, 1)
	}
	if !strings.Contains(key, pemEnd) {
		key = strings.Replace(key, "---END PUBLIC KEY---", pemEnd, 1)
	}
	if strings.Contains(key, "\n") {
		return key
	}
	content := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(key, pemBegin), pemEnd))
	content = strings.Join(strings.Fields(content), "")
	var sb strings.Builder
	sb.WriteString(pemBegin)
	sb.WriteByte('\n')
	for len(content) > 64 {
		sb.WriteString(content[:64])
		sb.WriteByte('\n')
		content = content[64:]
	}
	sb.WriteString(content)
	sb.WriteByte('\n')
	sb.WriteString(pemEnd)
	return sb.String()
}

// Verifier 校验网关回调签名, RSA PKCS#1 v1.5 + SHA256
type Verifier struct {
	key *rsa.PublicKey
}

func NewVerifier(publicKey string) (*Verifier, error) {
	key, err := utils.LoadPublicKey(NormalizePublicKey(publicKey))
	if err != nil {
		return nil, err
	}
	return &Verifier{key: key}, nil
}

// Verify 签名必须基于原始请求体, 任何解析失败都视为校验不通过
func (v *Verifier) Verify(rawBody []byte, signature string) bool {
	if v == nil || v.key == nil || len(rawBody) == 0 || signature == "" {
		return false
	}
	sig, err := base64.StdEncoding.DecodeString(strings.TrimSpace(signature))
	if err != nil {
		return false
	}
	digest := sha256.Sum256(rawBody)
	return rsa.VerifyPKCS1v15(v.key, crypto.SHA256, digest[:], sig) == nil
}
