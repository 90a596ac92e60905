package graph

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xxxsen/gfbgraph/rest"
	"github.com/xxxsen/gfbgraph/vfile"
)

type fakeAuth struct {
	calls int
	msgs  int
	err   error
}

func (f *fakeAuth) Name() string {
	return "fake"
}

func (f *fakeAuth) ProcessCall(call *rest.Call) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	call.SetParam("access_token", "tk")
	return nil
}

func (f *fakeAuth) ProcessMessage(req *http.Request) error {
	f.msgs++
	if f.err != nil {
		return f.err
	}
	q := req.URL.Query()
	q.Set("access_token", "tk")
	req.URL.RawQuery = q.Encode()
	return nil
}

type fakeSession struct {
	status int
	err    error
	sends  int
	closes int
	req    *http.Request
	body   []byte
}

func (f *fakeSession) Send(ctx context.Context, req *http.Request) (*rest.Response, error) {
	f.sends++
	f.req = req
	raw, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, err
	}
	f.body = raw
	if f.err != nil {
		return nil, f.err
	}
	return &rest.Response{StatusCode: f.status, Body: []byte(`{"id":"1"}`)}, nil
}

func (f *fakeSession) Close() error {
	f.closes++
	return nil
}

type fakeFactory struct {
	opens int
	sess  *fakeSession
}

func (f *fakeFactory) factory() SessionFactory {
	return func() (ISession, error) {
		f.opens++
		return f.sess, nil
	}
}

type trackFile struct {
	vfile.IFile
	closes  int
	readErr error
}

func (t *trackFile) ReadAll(ctx context.Context) ([]byte, error) {
	if t.readErr != nil {
		return nil, t.readErr
	}
	return t.IFile.ReadAll(ctx)
}

func (t *trackFile) Close() error {
	t.closes++
	return t.IFile.Close()
}

type parsedPart struct {
	name        string
	fileName    string
	contentType string
	data        []byte
}

func parseBody(t *testing.T, contentType string, body []byte) []*parsedPart {
	mt, ps, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mt)
	r := multipart.NewReader(bytes.NewReader(body), ps["boundary"])
	rs := make([]*parsedPart, 0)
	for {
		p, err := r.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		raw, err := io.ReadAll(p)
		require.NoError(t, err)
		rs = append(rs, &parsedPart{
			name:        p.FormName(),
			fileName:    p.FileName(),
			contentType: p.Header.Get("Content-Type"),
			data:        raw,
		})
	}
	return rs
}

func jpegBytes(size int) []byte {
	raw := make([]byte, size)
	copy(raw, []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00})
	for i := 11; i < size; i++ {
		raw[i] = byte(i)
	}
	return raw
}

func writePhoto(t *testing.T, size int) (string, []byte) {
	p := filepath.Join(t.TempDir(), "photo.jpg")
	raw := jpegBytes(size)
	require.NoError(t, os.WriteFile(p, raw, 0644))
	return p, raw
}

func openTrack(t *testing.T, p string) *trackFile {
	f, err := vfile.New(p)
	require.NoError(t, err)
	return &trackFile{IFile: f}
}
