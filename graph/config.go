package graph

import (
	"net/http"
	"time"
)

const (
	DefaultEndpoint   = "https://graph.facebook.com/v2.10"
	DefaultUploadPath = "/{node}/photos"
	DefaultNode       = "me"

	nodePlaceholder = "{node}"
)

var (
	defaultHttpClient = &http.Client{
		Timeout: 10 * time.Minute,
		Transport: &http.Transport{
			IdleConnTimeout:     20 * time.Second,
			MaxIdleConns:        5,
			MaxIdleConnsPerHost: 1,
		},
	}
)

type config struct {
	endpoint       string
	uploadPath     string
	allowMimeTypes []string
	httpClient     *http.Client
	sessionFactory SessionFactory
}

type Option func(c *config)

// WithEndpoint sets the api root, eg: https://graph.facebook.com/v2.10
func WithEndpoint(ep string) Option {
	return func(c *config) {
		c.endpoint = ep
	}
}

// WithUploadPath sets the upload resource path, {node} is replaced by the
// target node of each upload.
func WithUploadPath(p string) Option {
	return func(c *config) {
		c.uploadPath = p
	}
}

// WithAllowMimeTypes restricts uploads to the given content types, "image/*"
// style wildcards are accepted. Empty list allows everything.
func WithAllowMimeTypes(ts []string) Option {
	return func(c *config) {
		c.allowMimeTypes = ts
	}
}

func WithHTTPClient(cli *http.Client) Option {
	return func(c *config) {
		c.httpClient = cli
	}
}

func WithSessionFactory(fn SessionFactory) Option {
	return func(c *config) {
		c.sessionFactory = fn
	}
}

func applyOpts(opts ...Option) *config {
	c := &config{
		endpoint:   DefaultEndpoint,
		uploadPath: DefaultUploadPath,
		httpClient: defaultHttpClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sessionFactory == nil {
		c.sessionFactory = HTTPSessionFactory(c.httpClient)
	}
	return c
}

type uploadConfig struct {
	node     string
	observer func(UploadState)
	result   func(rsp []byte)
}

type UploadOption func(c *uploadConfig)

// WithNode sets the graph node the file is uploaded to, default is "me".
func WithNode(node string) UploadOption {
	return func(c *uploadConfig) {
		c.node = node
	}
}

// WithStateObserver is notified on every state the upload reaches.
func WithStateObserver(fn func(UploadState)) UploadOption {
	return func(c *uploadConfig) {
		c.observer = fn
	}
}

// WithResultReceiver receives the response body of a sent upload.
func WithResultReceiver(fn func(rsp []byte)) UploadOption {
	return func(c *uploadConfig) {
		c.result = fn
	}
}

func applyUploadOpts(opts ...UploadOption) *uploadConfig {
	c := &uploadConfig{
		node: DefaultNode,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *uploadConfig) observe(st UploadState) {
	if c.observer != nil {
		c.observer(st)
	}
}
