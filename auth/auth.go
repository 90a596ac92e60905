package auth

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/xxxsen/gfbgraph/rest"
)

// IAuthorizer stamps credentials onto outgoing requests. Both entry points
// must be supported: calls are built through rest.Call while uploads are
// sent as raw http messages.
type IAuthorizer interface {
	Name() string
	ProcessCall(call *rest.Call) error
	ProcessMessage(req *http.Request) error
}

type CreateFunc func(args interface{}) (IAuthorizer, error)

var mp = make(map[string]CreateFunc)

func Register(name string, fn CreateFunc) {
	mp[name] = fn
}

func Create(name string, args interface{}) (IAuthorizer, error) {
	fn, ok := mp[name]
	if !ok {
		return nil, fmt.Errorf("authorizer type not found, name:%s", name)
	}
	return fn(args)
}

func List() []string {
	rs := make([]string, 0, len(mp))
	for name := range mp {
		rs = append(rs, name)
	}
	sort.Strings(rs)
	return rs
}

func setQueryParam(req *http.Request, k string, v string) {
	q := req.URL.Query()
	q.Set(k, v)
	req.URL.RawQuery = q.Encode()
}
