package vfile

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memFile is an in-memory stream, it exists but is never a local file.
type memFile struct {
	id     string
	name   string
	data   []byte
	ctime  time.Time
	mu     sync.Mutex
	closed bool
}

func NewMemFile(name string, data []byte) IFile {
	return &memFile{
		id:    uuid.NewString(),
		name:  name,
		data:  data,
		ctime: time.Now(),
	}
}

func (f *memFile) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *memFile) URI() string {
	return SchemeMem + "://" + f.id + "/" + f.name
}

func (f *memFile) Scheme() string {
	return SchemeMem
}

func (f *memFile) Exists(ctx context.Context) bool {
	return !f.isClosed()
}

func (f *memFile) QueryInfo(ctx context.Context) (*FileInfo, error) {
	if f.isClosed() {
		return nil, ErrClosed
	}
	return &FileInfo{
		DisplayName: f.name,
		ContentType: detectBytesType(f.data, f.name),
		Size:        int64(len(f.data)),
		ModTime:     f.ctime,
	}, nil
}

func (f *memFile) ReadAll(ctx context.Context) ([]byte, error) {
	if f.isClosed() {
		return nil, ErrClosed
	}
	return f.data, nil
}

func (f *memFile) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.data = nil
	return nil
}
