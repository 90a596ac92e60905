package graph

import (
	"errors"
	"fmt"
	"mime"
	"net/url"
	"strings"

	"github.com/xxxsen/gfbgraph/auth"
	"github.com/xxxsen/gfbgraph/rest"
)

const (
	// StatusNone means the upload failed before anything was sent.
	StatusNone = 0
	// StatusCancelled means the send was aborted by the caller context.
	StatusCancelled = 1
	// StatusTransportError means the send did not complete, eg: connect or io failure.
	StatusTransportError = 7
)

var (
	ErrInvalidAuthorizer  = errors.New("invalid authorizer")
	ErrInvalidCandidate   = errors.New("invalid upload candidate")
	ErrNotLocalFile       = errors.New("candidate is not a local file")
	ErrQueryInfo          = errors.New("query file info failed")
	ErrReadContents       = errors.New("read file contents failed")
	ErrMimeTypeNotAllowed = errors.New("mime type not allowed")
)

type Client struct {
	c *config
}

func New(opts ...Option) (*Client, error) {
	c := applyOpts(opts...)
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint failed, endpoint:%s, err:%w", c.endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid endpoint scheme:%s", u.Scheme)
	}
	if len(u.Host) == 0 {
		return nil, fmt.Errorf("no host found in endpoint:%s", c.endpoint)
	}
	c.endpoint = strings.TrimRight(c.endpoint, "/")
	if !strings.HasPrefix(c.uploadPath, "/") {
		c.uploadPath = "/" + c.uploadPath
	}
	return &Client{c: c}, nil
}

func (c *Client) Endpoint() string {
	return c.c.endpoint
}

// NewRestCall creates a call rooted at the endpoint and stamped by a. No
// request is made here, the caller sets the function and invokes it.
func (c *Client) NewRestCall(a auth.IAuthorizer) (*rest.Call, error) {
	if a == nil {
		return nil, ErrInvalidAuthorizer
	}
	proxy := rest.NewProxy(c.c.endpoint, rest.WithHTTPClient(c.c.httpClient))
	call := proxy.NewCall()
	if err := a.ProcessCall(call); err != nil {
		return nil, fmt.Errorf("authorize call failed, authorizer:%s, err:%w", a.Name(), err)
	}
	return call, nil
}

func (c *Client) uploadURL(node string) string {
	if len(node) == 0 {
		node = DefaultNode
	}
	return c.c.endpoint + strings.ReplaceAll(c.c.uploadPath, nodePlaceholder, url.PathEscape(node))
}

func (c *Client) isMimeAllowed(ct string) bool {
	if len(c.c.allowMimeTypes) == 0 {
		return true
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	for _, allow := range c.c.allowMimeTypes {
		allow = strings.ToLower(strings.TrimSpace(allow))
		if allow == mt {
			return true
		}
		if strings.HasSuffix(allow, "/*") && strings.HasPrefix(mt, strings.TrimSuffix(allow, "*")) {
			return true
		}
	}
	return false
}
