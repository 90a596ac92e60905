package rest

import "net/http"

type config struct {
	client *http.Client
}

type Option func(*config)

// WithHTTPClient replaces the shared default client used by calls created from the proxy.
func WithHTTPClient(cli *http.Client) Option {
	return func(c *config) {
		c.client = cli
	}
}
