package mockgraph

type config struct {
	version   string
	tokens    map[string]struct{}
	appSecret string
	maxMemory int64
}

type Option func(c *config)

// WithVersion sets the version prefix of all routes, eg: v2.10
func WithVersion(v string) Option {
	return func(c *config) {
		c.version = v
	}
}

// WithTokens sets the accepted access tokens, no token means any non empty token is accepted.
func WithTokens(ts ...string) Option {
	return func(c *config) {
		for _, t := range ts {
			c.tokens[t] = struct{}{}
		}
	}
}

// WithAppSecret makes the server require a valid appsecret_proof.
func WithAppSecret(s string) Option {
	return func(c *config) {
		c.appSecret = s
	}
}

func WithMaxMemory(sz int64) Option {
	return func(c *config) {
		c.maxMemory = sz
	}
}

func applyOpts(opts ...Option) *config {
	c := &config{
		version:   "v2.10",
		tokens:    make(map[string]struct{}),
		maxMemory: 32 * 1024 * 1024,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
