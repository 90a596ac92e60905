package vfile

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"sync"
	"time"

	explru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/gfbgraph/cacheapi"
	cachewrap "github.com/xxxsen/gfbgraph/cacheapi/adaptor"
	"go.uber.org/zap"
)

const (
	defaultMaxExistCacheItems = 1000
	defaultExistCacheTTL      = time.Minute
)

var existCache = cachewrap.WrapExpirableLruCache(explru.NewLRU[string, bool](defaultMaxExistCacheItems, nil, defaultExistCacheTTL))

type remoteFile struct {
	u      *url.URL
	c      *config
	mu     sync.Mutex
	closed bool
}

func newRemoteFile(u *url.URL, c *config) *remoteFile {
	return &remoteFile{u: u, c: c}
}

func (f *remoteFile) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *remoteFile) URI() string {
	return f.u.String()
}

func (f *remoteFile) Scheme() string {
	return f.u.Scheme
}

func (f *remoteFile) head(ctx context.Context) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, f.URI(), nil)
	if err != nil {
		return nil, err
	}
	rsp, err := f.c.client.Do(req)
	if err != nil {
		return nil, err
	}
	_ = rsp.Body.Close()
	if rsp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("status code not ok, code:%d", rsp.StatusCode)
	}
	return rsp, nil
}

// Exists sends a HEAD request, results are cached for a short while.
func (f *remoteFile) Exists(ctx context.Context) bool {
	if f.isClosed() {
		return false
	}
	ok, err := cacheapi.Load(ctx, existCache, f.URI(), func(ctx context.Context, _ string) (bool, error) {
		if _, err := f.head(ctx); err != nil {
			logutil.GetLogger(ctx).Debug("remote file not reachable", zap.String("uri", f.URI()), zap.Error(err))
			return false, nil
		}
		return true, nil
	})
	return err == nil && ok
}

func (f *remoteFile) QueryInfo(ctx context.Context) (*FileInfo, error) {
	if f.isClosed() {
		return nil, ErrClosed
	}
	rsp, err := f.head(ctx)
	if err != nil {
		return nil, err
	}
	name := path.Base(f.u.Path)
	ct := rsp.Header.Get("Content-Type")
	if len(ct) == 0 {
		ct = determineByExt(name)
	}
	info := &FileInfo{
		DisplayName: name,
		ContentType: ct,
		Size:        rsp.ContentLength,
	}
	if lm, err := http.ParseTime(rsp.Header.Get("Last-Modified")); err == nil {
		info.ModTime = lm
	}
	return info, nil
}

func (f *remoteFile) ReadAll(ctx context.Context) ([]byte, error) {
	if f.isClosed() {
		return nil, ErrClosed
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URI(), nil)
	if err != nil {
		return nil, err
	}
	rsp, err := f.c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer rsp.Body.Close()
	if rsp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("status code not ok, code:%d", rsp.StatusCode)
	}
	return io.ReadAll(rsp.Body)
}

func (f *remoteFile) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}
