package auth

import (
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/xxxsen/common/utils"
	"github.com/xxxsen/gfbgraph/rest"
)

const (
	BasicAuthName = "basic"
)

type BasicConfig struct {
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
}

type basicAuth struct {
	c *BasicConfig
}

func NewBasicAuthorizer(c *BasicConfig) (IAuthorizer, error) {
	if len(c.AccessKey) == 0 {
		return nil, fmt.Errorf("no access key found")
	}
	return &basicAuth{c: c}, nil
}

func (b *basicAuth) Name() string {
	return BasicAuthName
}

func (b *basicAuth) ProcessCall(call *rest.Call) error {
	cred := base64.StdEncoding.EncodeToString([]byte(b.c.AccessKey + ":" + b.c.SecretKey))
	call.SetHeader("Authorization", "Basic "+cred)
	return nil
}

func (b *basicAuth) ProcessMessage(req *http.Request) error {
	req.SetBasicAuth(b.c.AccessKey, b.c.SecretKey)
	return nil
}

func createBasicAuth(args interface{}) (IAuthorizer, error) {
	c := &BasicConfig{}
	if err := utils.ConvStructJson(args, c); err != nil {
		return nil, err
	}
	return NewBasicAuthorizer(c)
}

func init() {
	Register(BasicAuthName, createBasicAuth)
}
