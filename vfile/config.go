package vfile

import (
	"net/http"
	"time"
)

var (
	defaultHttpClient = &http.Client{
		Timeout: 30 * time.Second,
	}
)

type config struct {
	client *http.Client
}

type Option func(*config)

func WithHTTPClient(cli *http.Client) Option {
	return func(c *config) {
		c.client = cli
	}
}

func applyOpts(opts ...Option) *config {
	c := &config{
		client: defaultHttpClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
