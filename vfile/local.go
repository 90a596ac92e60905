package vfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

type localFile struct {
	path   string
	mu     sync.Mutex
	closed bool
}

func newLocalFile(p string) (*localFile, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("empty file path")
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return nil, fmt.Errorf("resolve abs path failed, path:%s, err:%w", p, err)
	}
	return &localFile{path: abs}, nil
}

func (f *localFile) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *localFile) URI() string {
	return SchemeFile + "://" + filepath.ToSlash(f.path)
}

func (f *localFile) Scheme() string {
	return SchemeFile
}

func (f *localFile) Path() string {
	return f.path
}

func (f *localFile) Exists(ctx context.Context) bool {
	if f.isClosed() {
		return false
	}
	st, err := os.Stat(f.path)
	if err != nil {
		return false
	}
	return !st.IsDir()
}

func (f *localFile) QueryInfo(ctx context.Context) (*FileInfo, error) {
	if f.isClosed() {
		return nil, ErrClosed
	}
	st, err := os.Stat(f.path)
	if err != nil {
		return nil, err
	}
	if st.IsDir() {
		return nil, fmt.Errorf("path is a directory, path:%s", f.path)
	}
	ct, err := detectFileType(ctx, f.path, st.Size(), st.ModTime().UnixNano())
	if err != nil {
		return nil, fmt.Errorf("detect content type failed, err:%w", err)
	}
	return &FileInfo{
		DisplayName: st.Name(),
		ContentType: ct,
		Size:        st.Size(),
		ModTime:     st.ModTime(),
	}, nil
}

func (f *localFile) ReadAll(ctx context.Context) ([]byte, error) {
	if f.isClosed() {
		return nil, ErrClosed
	}
	return os.ReadFile(f.path)
}

func (f *localFile) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}
