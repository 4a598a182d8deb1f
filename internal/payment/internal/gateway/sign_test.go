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
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKey(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(t, err)
	return priv, string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
}

func signSHA256(t *testing.T, priv *rsa.PrivateKey, body []byte) string {
	t.Helper()
	digest := sha256.Sum256(body)
	sig, err := rsa.SignPKCS1v15(rand.Reader, priv, crypto.SHA256, digest[:])
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(sig)
}

func TestSign(t *testing.T) {
	// md5("{}key") 的大写十六进制
	got := Sign([]byte("{}"), "key")
	assert.Len(t, got, 32)
	assert.Equal(t, strings.ToUpper(got), got)
	assert.Equal(t, got, Sign([]byte("{}"), "key"))
	assert.NotEqual(t, got, Sign([]byte("{ }"), "key"))
	assert.NotEqual(t, got, Sign([]byte("{}"), "key2"))
}

func TestNormalizePublicKey(t *testing.T) {
	_, pemKey := newTestKey(t)
	content := strings.Join(strings.Fields(strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(pemKey), pemBegin), pemEnd)), "")
	testCases := []struct {
		name string
		key  string
	}{
		{
			name: "标准格式",
			key:  pemKey,
		},
		{
			name: "单行带头尾",
			key:  pemBegin + content + pemEnd,
		},
		{
			name: "三个短横线",
			key:  "---BEGIN PUBLIC KEY---" + content + "---END PUBLIC KEY---",
		},
		{
			name: "只有内容",
			key:  content,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			normalized := NormalizePublicKey(tc.key)
			assert.True(t, strings.HasPrefix(normalized, pemBegin+"\n"))
			assert.True(t, strings.HasSuffix(normalized, pemEnd))
			for _, line := range strings.Split(normalized, "\n") {
				assert.LessOrEqual(t, len(line), 64)
			}
			_, err := NewVerifier(tc.key)
			require.NoError(t, err)
		})
	}
}

func TestVerifier_Verify(t *testing.T) {
	priv, pemKey := newTestKey(t)
	verifier, err := NewVerifier(pemKey)
	require.NoError(t, err)
	body := []byte(`{"client_sn":"SID1-1700000000000-abcdef","order_status":"PAID","trade_no":"T1","finish_time":"1700000000000","total_amount":"38000"}`)
	sig := signSHA256(t, priv, body)

	testCases := []struct {
		name string
		body []byte
		sig  string
		want bool
	}{
		{
			name: "签名正确",
			body: body,
			sig:  sig,
			want: true,
		},
		{
			name: "请求体被篡改一个字节",
			body: append(append([]byte{}, body[:len(body)-2]...), '1', '}'),
			sig:  sig,
		},
		{
			name: "签名不是base64",
			body: body,
			sig:  "%%%not-base64%%%",
		},
		{
			name: "签名为空",
			body: body,
		},
		{
			name: "请求体为空",
			sig:  sig,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, verifier.Verify(tc.body, tc.sig))
		})
	}

	var nilVerifier *Verifier
	assert.False(t, nilVerifier.Verify(body, sig))
}

func TestNewVerifier_BadKey(t *testing.T) {
	_, err := NewVerifier("not a key")
	assert.Error(t, err)
}

func TestNewVerifier_DefaultPublicKey(t *testing.T) {
	v, err := NewVerifier(DefaultPublicKey)
	require.NoError(t, err)
	assert.Equal(t, 2048, v.key.N.BitLen())

	// 配置文件里的多行写法带有结尾换行
	_, err = NewVerifier(DefaultPublicKey + "\n")
	require.NoError(t, err)

	_, err = NewVerifier("")
	assert.Error(t, err)
}
