package graph

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

const (
	FilePartName = "file"
)

var (
	errBodyFreed = errors.New("multipart body already freed")

	quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")
)

type Part struct {
	Name        string
	FileName    string
	ContentType string
	Value       string
	ref         *bufferRef
}

func (p *Part) IsFile() bool {
	return p.ref != nil
}

// Data returns the file bytes for a file part, or the value for a string part.
func (p *Part) Data() []byte {
	if p.ref != nil {
		return p.ref.Bytes()
	}
	return []byte(p.Value)
}

// MultipartBody is an ordered list of form parts. File parts reference the
// upload buffer, so the body must be freed before that buffer.
type MultipartBody struct {
	boundary string
	parts    []*Part
	freed    bool
}

func NewMultipartBody() *MultipartBody {
	return &MultipartBody{
		boundary: multipart.NewWriter(io.Discard).Boundary(),
	}
}

func (m *MultipartBody) AppendFile(name string, filename string, contentType string, ref *bufferRef) {
	m.parts = append(m.parts, &Part{
		Name:        name,
		FileName:    filename,
		ContentType: contentType,
		ref:         ref,
	})
}

func (m *MultipartBody) AppendString(name string, value string) {
	m.parts = append(m.parts, &Part{
		Name:  name,
		Value: value,
	})
}

func (m *MultipartBody) Parts() []*Part {
	return m.parts
}

func (m *MultipartBody) Len() int {
	return len(m.parts)
}

func (m *MultipartBody) ContentType() string {
	return "multipart/form-data; boundary=" + m.boundary
}

// Reader serializes the body. Only part headers and boundaries are written
// to new memory, file bytes are read straight from the referenced buffer.
func (m *MultipartBody) Reader() (io.Reader, int64, error) {
	if m.freed {
		return nil, 0, errBodyFreed
	}
	sw := &segmentWriter{}
	w := multipart.NewWriter(sw)
	if err := w.SetBoundary(m.boundary); err != nil {
		return nil, 0, err
	}
	for _, p := range m.parts {
		if !p.IsFile() {
			if err := w.WriteField(p.Name, p.Value); err != nil {
				return nil, 0, fmt.Errorf("write field failed, name:%s, err:%w", p.Name, err)
			}
			continue
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(p.Name), quoteEscaper.Replace(p.FileName)))
		h.Set("Content-Type", p.ContentType)
		if _, err := w.CreatePart(h); err != nil {
			return nil, 0, fmt.Errorf("create file part failed, name:%s, err:%w", p.Name, err)
		}
		sw.attach(p.ref.Bytes())
	}
	if err := w.Close(); err != nil {
		return nil, 0, err
	}
	return sw.reader(), sw.size, nil
}

// NewRequest builds a POST multipart/form-data message for link.
func (m *MultipartBody) NewRequest(ctx context.Context, link string) (*http.Request, error) {
	r, size, err := m.Reader()
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, link, r)
	if err != nil {
		return nil, fmt.Errorf("create http request failed, err:%w", err)
	}
	req.ContentLength = size
	req.GetBody = func() (io.ReadCloser, error) {
		r, _, err := m.Reader()
		if err != nil {
			return nil, err
		}
		return io.NopCloser(r), nil
	}
	req.Header.Set("Content-Type", m.ContentType())
	return req, nil
}

// Free drops every part and releases the buffer references they hold.
func (m *MultipartBody) Free() {
	if m.freed {
		return
	}
	m.freed = true
	for _, p := range m.parts {
		if p.ref != nil {
			p.ref.release()
		}
	}
	m.parts = nil
}

type segmentWriter struct {
	segs []io.Reader
	cur  *bytes.Buffer
	size int64
}

func (s *segmentWriter) Write(p []byte) (int, error) {
	if s.cur == nil {
		s.cur = &bytes.Buffer{}
	}
	s.size += int64(len(p))
	return s.cur.Write(p)
}

func (s *segmentWriter) flush() {
	if s.cur != nil && s.cur.Len() > 0 {
		s.segs = append(s.segs, bytes.NewReader(s.cur.Bytes()))
	}
	s.cur = nil
}

func (s *segmentWriter) attach(data []byte) {
	s.flush()
	s.segs = append(s.segs, bytes.NewReader(data))
	s.size += int64(len(data))
}

func (s *segmentWriter) reader() io.Reader {
	s.flush()
	return io.MultiReader(s.segs...)
}
