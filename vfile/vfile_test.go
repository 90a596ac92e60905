package vfile

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jpegBytes(size int) []byte {
	raw := make([]byte, size)
	copy(raw, []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00})
	return raw
}

func TestNewScheme(t *testing.T) {
	dir := t.TempDir()
	f, err := New(filepath.Join(dir, "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, SchemeFile, f.Scheme())
	assert.True(t, IsLocal(f))

	f, err = New("file://" + filepath.ToSlash(filepath.Join(dir, "a.jpg")))
	require.NoError(t, err)
	assert.Equal(t, SchemeFile, f.Scheme())

	f, err = New("https://example.com/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, SchemeHTTPS, f.Scheme())
	assert.False(t, IsLocal(f))

	_, err = New("ftp://example.com/a.jpg")
	assert.Error(t, err)
	_, err = New("file://remote-host/a.jpg")
	assert.Error(t, err)
	_, err = New("")
	assert.Error(t, err)
}

func TestLocalFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	p := filepath.Join(dir, "photo.jpg")
	require.NoError(t, os.WriteFile(p, jpegBytes(1024), 0644))

	f, err := New(p)
	require.NoError(t, err)
	assert.True(t, f.Exists(ctx))
	info, err := f.QueryInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "photo.jpg", info.DisplayName)
	assert.Equal(t, "image/jpeg", info.ContentType)
	assert.Equal(t, int64(1024), info.Size)
	//second query hits the type cache and must give the same answer
	info, err = f.QueryInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", info.ContentType)

	raw, err := f.ReadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, raw, 1024)

	assert.NoError(t, f.Close())
	assert.NoError(t, f.Close())
	assert.False(t, f.Exists(ctx))
	_, err = f.QueryInfo(ctx)
	assert.ErrorIs(t, err, ErrClosed)
	_, err = f.ReadAll(ctx)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestLocalFileMissing(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	f, err := New(filepath.Join(dir, "not_exist.jpg"))
	require.NoError(t, err)
	assert.False(t, f.Exists(ctx))
	_, err = f.QueryInfo(ctx)
	assert.Error(t, err)

	d, err := New(dir)
	require.NoError(t, err)
	assert.False(t, d.Exists(ctx))
	_, err = d.QueryInfo(ctx)
	assert.Error(t, err)
}

func TestExtFallback(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	p := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(p, []byte{0x00, 0x01, 0x02, 0x03}, 0644))
	f, err := New(p)
	require.NoError(t, err)
	info, err := f.QueryInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "application/json", info.ContentType)
}

func TestRemoteFile(t *testing.T) {
	ctx := context.Background()
	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/a.jpg" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(jpegBytes(16))
	}))
	defer svr.Close()

	f, err := New(svr.URL+"/a.jpg", WithHTTPClient(svr.Client()))
	require.NoError(t, err)
	assert.Equal(t, SchemeHTTP, f.Scheme())
	assert.True(t, f.Exists(ctx))
	info, err := f.QueryInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", info.DisplayName)
	assert.Equal(t, "image/jpeg", info.ContentType)
	raw, err := f.ReadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, raw, 16)

	miss, err := New(svr.URL+"/b.jpg", WithHTTPClient(svr.Client()))
	require.NoError(t, err)
	assert.False(t, miss.Exists(ctx))
	_, err = miss.QueryInfo(ctx)
	assert.Error(t, err)
}

func TestMemFile(t *testing.T) {
	ctx := context.Background()
	f := NewMemFile("photo.jpg", jpegBytes(32))
	assert.Equal(t, SchemeMem, f.Scheme())
	assert.False(t, IsLocal(f))
	assert.True(t, f.Exists(ctx))
	info, err := f.QueryInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", info.ContentType)
	assert.Equal(t, int64(32), info.Size)
	assert.NoError(t, f.Close())
	assert.False(t, f.Exists(ctx))
}
