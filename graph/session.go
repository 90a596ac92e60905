package graph

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/xxxsen/gfbgraph/rest"
)

const (
	defaultMaxUploadResponseSize = 1024 * 1024
)

var (
	errSessionClosed = errors.New("session closed")
)

// ISession sends prepared messages synchronously.
type ISession interface {
	Send(ctx context.Context, req *http.Request) (*rest.Response, error)
	Close() error
}

type SessionFactory func() (ISession, error)

type httpSession struct {
	client *http.Client
	mu     sync.Mutex
	closed bool
}

func HTTPSessionFactory(cli *http.Client) SessionFactory {
	return func() (ISession, error) {
		return &httpSession{client: cli}, nil
	}
}

func (s *httpSession) Send(ctx context.Context, req *http.Request) (*rest.Response, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, errSessionClosed
	}
	rsp, err := s.client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	defer rsp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(rsp.Body, defaultMaxUploadResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read response body failed, code:%d, err:%w", rsp.StatusCode, err)
	}
	return &rest.Response{
		StatusCode: rsp.StatusCode,
		Header:     rsp.Header,
		Body:       raw,
	}, nil
}

func (s *httpSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
