package rest

import (
	"net/http"
	"strings"
	"time"
)

var (
	defaultHttpClient = &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			IdleConnTimeout:     20 * time.Second,
			MaxIdleConns:        5,
			MaxIdleConnsPerHost: 1,
		},
	}
)

// Proxy is bound to one api root, every call created from it targets a
// resource path under that root.
type Proxy struct {
	endpoint string
	c        *config
}

func NewProxy(endpoint string, opts ...Option) *Proxy {
	c := &config{
		client: defaultHttpClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return &Proxy{
		endpoint: strings.TrimRight(endpoint, "/"),
		c:        c,
	}
}

func (p *Proxy) Endpoint() string {
	return p.endpoint
}

// NewCall creates a GET call rooted at the proxy endpoint. The call copies
// what it needs, so the proxy can be dropped right after.
func (p *Proxy) NewCall() *Call {
	return &Call{
		endpoint: p.endpoint,
		method:   http.MethodGet,
		params:   make(map[string]string),
		header:   make(http.Header),
		client:   p.c.client,
	}
}
