package graph

import (
	"errors"
	"sync"
)

var (
	errBufferFreed    = errors.New("buffer already freed")
	errBufferBorrowed = errors.New("buffer still borrowed")
)

// contentBuffer holds the file bytes of one upload. Bodies reference the
// bytes through a bufferRef instead of copying them, the buffer refuses to
// be freed while any reference is alive.
type contentBuffer struct {
	mu    sync.Mutex
	data  []byte
	refs  int
	freed bool
}

func newContentBuffer(data []byte) *contentBuffer {
	return &contentBuffer{data: data}
}

func (b *contentBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data)
}

func (b *contentBuffer) borrow() (*bufferRef, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.freed {
		return nil, errBufferFreed
	}
	b.refs++
	return &bufferRef{b: b, data: b.data}, nil
}

func (b *contentBuffer) unborrow() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refs--
}

func (b *contentBuffer) free() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.freed {
		return nil
	}
	if b.refs > 0 {
		return errBufferBorrowed
	}
	b.freed = true
	b.data = nil
	return nil
}

type bufferRef struct {
	once sync.Once
	b    *contentBuffer
	data []byte
}

// Bytes must not be modified by the caller.
func (r *bufferRef) Bytes() []byte {
	return r.data
}

func (r *bufferRef) release() {
	r.once.Do(func() {
		r.b.unborrow()
		r.data = nil
	})
}
