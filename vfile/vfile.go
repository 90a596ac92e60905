package vfile

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"
)

const (
	SchemeFile  = "file"
	SchemeHTTP  = "http"
	SchemeHTTPS = "https"
	SchemeMem   = "mem"
)

var (
	ErrClosed = errors.New("file already closed")
)

type FileInfo struct {
	DisplayName string
	ContentType string
	Size        int64
	ModTime     time.Time
}

// IFile is a resource that may be uploaded. The owner must call Close once
// it is done with it, Close is safe to call more than once.
type IFile interface {
	URI() string
	Scheme() string
	Exists(ctx context.Context) bool
	QueryInfo(ctx context.Context) (*FileInfo, error)
	ReadAll(ctx context.Context) ([]byte, error)
	Close() error
}

// New resolves uri to a file. Plain paths and file:// uris are local files,
// http(s) uris are remote resources.
func New(uri string, opts ...Option) (IFile, error) {
	c := applyOpts(opts...)
	if !strings.Contains(uri, "://") {
		return newLocalFile(uri)
	}
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("parse uri failed, uri:%s, err:%w", uri, err)
	}
	switch strings.ToLower(u.Scheme) {
	case SchemeFile:
		if len(u.Host) != 0 && u.Host != "localhost" {
			return nil, fmt.Errorf("file uri with remote host is not supported, host:%s", u.Host)
		}
		return newLocalFile(filepath.FromSlash(u.Path))
	case SchemeHTTP, SchemeHTTPS:
		return newRemoteFile(u, c), nil
	default:
		return nil, fmt.Errorf("unsupported scheme:%s", u.Scheme)
	}
}

func IsLocal(f IFile) bool {
	return f.Scheme() == SchemeFile
}
