package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/xxxsen/common/utils"
	"github.com/xxxsen/gfbgraph/rest"
)

const (
	SignedAuthName = "signed"

	appSecretProofParam = "appsecret_proof"
)

type SignedConfig struct {
	AccessToken string `json:"access_token"`
	AppSecret   string `json:"app_secret"`
}

// signedAuth sends the access token together with appsecret_proof, the
// hex encoded HMAC-SHA256 of the token keyed by the app secret.
type signedAuth struct {
	token string
	proof string
}

func AppSecretProof(token string, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	_, _ = h.Write([]byte(token))
	return hex.EncodeToString(h.Sum(nil))
}

func NewSignedAuthorizer(c *SignedConfig) (IAuthorizer, error) {
	if len(c.AccessToken) == 0 {
		return nil, fmt.Errorf("no access token found")
	}
	if len(c.AppSecret) == 0 {
		return nil, fmt.Errorf("no app secret found")
	}
	return &signedAuth{
		token: c.AccessToken,
		proof: AppSecretProof(c.AccessToken, c.AppSecret),
	}, nil
}

func (s *signedAuth) Name() string {
	return SignedAuthName
}

func (s *signedAuth) ProcessCall(call *rest.Call) error {
	call.SetParam(accessTokenParam, s.token)
	call.SetParam(appSecretProofParam, s.proof)
	return nil
}

func (s *signedAuth) ProcessMessage(req *http.Request) error {
	setQueryParam(req, accessTokenParam, s.token)
	setQueryParam(req, appSecretProofParam, s.proof)
	return nil
}

func createSignedAuth(args interface{}) (IAuthorizer, error) {
	c := &SignedConfig{}
	if err := utils.ConvStructJson(args, c); err != nil {
		return nil, err
	}
	return NewSignedAuthorizer(c)
}

func init() {
	Register(SignedAuthName, createSignedAuth)
}
