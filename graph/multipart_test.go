package graph

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentBuffer(t *testing.T) {
	buf := newContentBuffer([]byte("hello"))
	assert.Equal(t, 5, buf.Len())
	ref, err := buf.borrow()
	require.NoError(t, err)
	assert.ErrorIs(t, buf.free(), errBufferBorrowed)
	assert.Equal(t, "hello", string(ref.Bytes()))
	ref.release()
	ref.release()
	assert.Nil(t, ref.Bytes())
	assert.NoError(t, buf.free())
	assert.NoError(t, buf.free())
	_, err = buf.borrow()
	assert.ErrorIs(t, err, errBufferFreed)
}

func TestMultipartBodyZeroCopy(t *testing.T) {
	raw := jpegBytes(256)
	buf := newContentBuffer(raw)
	ref, err := buf.borrow()
	require.NoError(t, err)
	body := NewMultipartBody()
	body.AppendFile(FilePartName, `we"ird.jpg`, "image/jpeg", ref)
	body.AppendString("message", "hello")
	require.Equal(t, 2, body.Len())
	assert.True(t, body.Parts()[0].IsFile())
	assert.False(t, body.Parts()[1].IsFile())
	assert.Same(t, &raw[0], &body.Parts()[0].Data()[0])

	r, size, err := body.Reader()
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), size)
	parts := parseBody(t, body.ContentType(), data)
	require.Len(t, parts, 2)
	assert.Equal(t, `we"ird.jpg`, parts[0].fileName)
	assert.Equal(t, raw, parts[0].data)
	assert.Equal(t, "hello", string(parts[1].data))

	req, err := body.NewRequest(context.Background(), "https://graph.example.com/v2.10/me/photos")
	require.NoError(t, err)
	assert.Equal(t, size, req.ContentLength)
	assert.Equal(t, body.ContentType(), req.Header.Get("Content-Type"))
	rc, err := req.GetBody()
	require.NoError(t, err)
	again, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, data, again)

	assert.ErrorIs(t, buf.free(), errBufferBorrowed)
	body.Free()
	body.Free()
	assert.Equal(t, 0, body.Len())
	_, _, err = body.Reader()
	assert.Error(t, err)
	assert.NoError(t, buf.free())
}

func TestUploadStateString(t *testing.T) {
	assert.Equal(t, "start", StateStart.String())
	assert.Equal(t, "sent", StateSent.String())
	assert.Equal(t, "cleaned", StateCleaned.String())
	assert.Equal(t, "unknown", UploadState(100).String())
}
