package rest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	defaultMaxResponseBodySize = 16 * 1024 * 1024
)

// Call is a request builder for one resource of the api. It does not touch
// the network until Invoke is called.
type Call struct {
	endpoint string
	method   string
	function string
	params   map[string]string
	header   http.Header
	client   *http.Client
}

func (c *Call) SetMethod(method string) {
	c.method = strings.ToUpper(method)
}

func (c *Call) Method() string {
	return c.method
}

// SetFunction sets the resource path relative to the endpoint, eg: "me/photos".
func (c *Call) SetFunction(fn string) {
	c.function = strings.TrimLeft(fn, "/")
}

func (c *Call) Function() string {
	return c.function
}

func (c *Call) SetParam(k string, v string) {
	c.params[k] = v
}

func (c *Call) Param(k string) (string, bool) {
	v, ok := c.params[k]
	return v, ok
}

func (c *Call) RemoveParam(k string) {
	delete(c.params, k)
}

// Params returns a copy of the current params.
func (c *Call) Params() map[string]string {
	rs := make(map[string]string, len(c.params))
	for k, v := range c.params {
		rs[k] = v
	}
	return rs
}

func (c *Call) SetHeader(k string, v string) {
	c.header.Set(k, v)
}

func (c *Call) Header() http.Header {
	return c.header
}

func (c *Call) URL() string {
	if len(c.function) == 0 {
		return c.endpoint
	}
	return c.endpoint + "/" + c.function
}

func (c *Call) encodeParams() string {
	vals := make(url.Values, len(c.params))
	for k, v := range c.params {
		vals.Set(k, v)
	}
	return vals.Encode()
}

// BuildRequest turns the call into an http request. Params go to the query
// string for GET/DELETE and to an urlencoded form body otherwise.
func (c *Call) BuildRequest(ctx context.Context) (*http.Request, error) {
	link := c.URL()
	var body io.Reader
	encoded := c.encodeParams()
	withBody := c.method != http.MethodGet && c.method != http.MethodDelete && c.method != http.MethodHead
	if !withBody && len(encoded) > 0 {
		link = link + "?" + encoded
	}
	if withBody {
		body = strings.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, c.method, link, body)
	if err != nil {
		return nil, fmt.Errorf("create http request failed, err:%w", err)
	}
	for k, vs := range c.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if withBody {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return req, nil
}

// Invoke performs the call synchronously. Any http status is returned inside
// the response, only transport level problems are reported as error.
func (c *Call) Invoke(ctx context.Context) (*Response, error) {
	req, err := c.BuildRequest(ctx)
	if err != nil {
		return nil, err
	}
	rsp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do http request failed, err:%w", err)
	}
	defer rsp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(rsp.Body, defaultMaxResponseBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response body failed, code:%d, err:%w", rsp.StatusCode, err)
	}
	return &Response{
		StatusCode: rsp.StatusCode,
		Header:     rsp.Header,
		Body:       raw,
	}, nil
}
