package auth

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xxxsen/gfbgraph/rest"
)

func newCall() *rest.Call {
	return rest.NewProxy("https://graph.example.com/v2.10").NewCall()
}

func newMessage(t *testing.T) *http.Request {
	req, err := http.NewRequest(http.MethodPost, "https://graph.example.com/v2.10/me/photos?x=1", nil)
	assert.NoError(t, err)
	return req
}

func TestList(t *testing.T) {
	assert.Equal(t, []string{BasicAuthName, SignedAuthName, TokenAuthName}, List())
	_, err := Create("not_exist", nil)
	assert.Error(t, err)
}

func TestTokenAuth(t *testing.T) {
	_, err := Create(TokenAuthName, map[string]interface{}{})
	assert.Error(t, err)

	a, err := Create(TokenAuthName, map[string]interface{}{"access_token": "tk"})
	assert.NoError(t, err)
	assert.Equal(t, TokenAuthName, a.Name())
	call := newCall()
	assert.NoError(t, a.ProcessCall(call))
	v, ok := call.Param("access_token")
	assert.True(t, ok)
	assert.Equal(t, "tk", v)

	req := newMessage(t)
	assert.NoError(t, a.ProcessMessage(req))
	assert.Equal(t, "tk", req.URL.Query().Get("access_token"))
	assert.Equal(t, "1", req.URL.Query().Get("x"))
}

func TestTokenAuthHeader(t *testing.T) {
	a, err := NewTokenAuthorizer(&TokenConfig{AccessToken: "tk", UseHeader: true})
	assert.NoError(t, err)
	call := newCall()
	assert.NoError(t, a.ProcessCall(call))
	_, ok := call.Param("access_token")
	assert.False(t, ok)
	assert.Equal(t, "Bearer tk", call.Header().Get("Authorization"))

	req := newMessage(t)
	assert.NoError(t, a.ProcessMessage(req))
	assert.Equal(t, "Bearer tk", req.Header.Get("Authorization"))
	assert.Equal(t, "", req.URL.Query().Get("access_token"))
}

func TestSignedAuth(t *testing.T) {
	_, err := NewSignedAuthorizer(&SignedConfig{AccessToken: "tk"})
	assert.Error(t, err)
	a, err := Create(SignedAuthName, map[string]interface{}{"access_token": "tk", "app_secret": "secret"})
	assert.NoError(t, err)
	proof := AppSecretProof("tk", "secret")
	assert.Len(t, proof, 64)
	assert.NotEqual(t, proof, AppSecretProof("tk", "secret2"))

	call := newCall()
	assert.NoError(t, a.ProcessCall(call))
	v, _ := call.Param("appsecret_proof")
	assert.Equal(t, proof, v)

	req := newMessage(t)
	assert.NoError(t, a.ProcessMessage(req))
	assert.Equal(t, "tk", req.URL.Query().Get("access_token"))
	assert.Equal(t, proof, req.URL.Query().Get("appsecret_proof"))
}

func TestBasicAuth(t *testing.T) {
	a, err := Create(BasicAuthName, map[string]interface{}{"access_key": "ak", "secret_key": "sk"})
	assert.NoError(t, err)
	call := newCall()
	assert.NoError(t, a.ProcessCall(call))
	req, err := call.BuildRequest(context.Background())
	assert.NoError(t, err)
	ak, sk, ok := req.BasicAuth()
	assert.True(t, ok)
	assert.Equal(t, "ak", ak)
	assert.Equal(t, "sk", sk)

	msg := newMessage(t)
	assert.NoError(t, a.ProcessMessage(msg))
	ak, sk, ok = msg.BasicAuth()
	assert.True(t, ok)
	assert.Equal(t, "ak", ak)
	assert.Equal(t, "sk", sk)
}
