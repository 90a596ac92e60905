package auth

import (
	"fmt"
	"net/http"

	"github.com/xxxsen/common/utils"
	"github.com/xxxsen/gfbgraph/rest"
)

const (
	TokenAuthName = "token"

	accessTokenParam = "access_token"
)

type TokenConfig struct {
	AccessToken string `json:"access_token"`
	UseHeader   bool   `json:"use_header"` //true: Authorization: Bearer xxx, false: ?access_token=xxx
}

type tokenAuth struct {
	c *TokenConfig
}

func NewTokenAuthorizer(c *TokenConfig) (IAuthorizer, error) {
	if len(c.AccessToken) == 0 {
		return nil, fmt.Errorf("no access token found")
	}
	return &tokenAuth{c: c}, nil
}

func (t *tokenAuth) Name() string {
	return TokenAuthName
}

func (t *tokenAuth) ProcessCall(call *rest.Call) error {
	if t.c.UseHeader {
		call.SetHeader("Authorization", "Bearer "+t.c.AccessToken)
		return nil
	}
	call.SetParam(accessTokenParam, t.c.AccessToken)
	return nil
}

func (t *tokenAuth) ProcessMessage(req *http.Request) error {
	if t.c.UseHeader {
		req.Header.Set("Authorization", "Bearer "+t.c.AccessToken)
		return nil
	}
	setQueryParam(req, accessTokenParam, t.c.AccessToken)
	return nil
}

func createTokenAuth(args interface{}) (IAuthorizer, error) {
	c := &TokenConfig{}
	if err := utils.ConvStructJson(args, c); err != nil {
		return nil, err
	}
	return NewTokenAuthorizer(c)
}

func init() {
	Register(TokenAuthName, createTokenAuth)
}
