package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/gfbgraph/auth"
	"github.com/xxxsen/gfbgraph/vfile"
	"go.uber.org/zap"
)

// Upload sends f as the "file" part of a multipart form, with one extra
// string part per entry of params, to the upload path of the target node.
//
// Upload takes ownership of f and closes it exactly once before returning.
// f must be a local file, see IsUploadable; a local file that does not exist
// fails at the metadata query.
//
// The returned status is StatusNone when failing before the send, and the
// transport status otherwise. Non 2xx responses are not errors here.
func (c *Client) Upload(ctx context.Context, a auth.IAuthorizer, f vfile.IFile, params map[string]string, opts ...UploadOption) (int, error) {
	uc := applyUploadOpts(opts...)
	if f == nil {
		return StatusNone, ErrInvalidCandidate
	}
	uc.observe(StateStart)
	defer func() {
		_ = f.Close()
		uc.observe(StateCleaned)
	}()
	if a == nil {
		return StatusNone, ErrInvalidAuthorizer
	}
	link := c.uploadURL(uc.node)
	logger := logutil.GetLogger(ctx).With(zap.String("upload_id", uuid.NewString()), zap.String("uri", f.URI()))
	if !vfile.IsLocal(f) {
		logger.Error("candidate is not a local file", zap.String("scheme", f.Scheme()))
		return StatusNone, ErrNotLocalFile
	}

	info, err := f.QueryInfo(ctx)
	if err != nil {
		logger.Error("query file info failed", zap.Error(err))
		return StatusNone, fmt.Errorf("%w, err:%w", ErrQueryInfo, err)
	}
	if !c.isMimeAllowed(info.ContentType) {
		logger.Error("file mime type not allowed", zap.String("content_type", info.ContentType))
		return StatusNone, fmt.Errorf("%w, content_type:%s", ErrMimeTypeNotAllowed, info.ContentType)
	}
	uc.observe(StateMetadataFetched)

	raw, err := f.ReadAll(ctx)
	if err != nil {
		logger.Error("read file contents failed", zap.Error(err))
		return StatusNone, fmt.Errorf("%w, err:%w", ErrReadContents, err)
	}
	buf := newContentBuffer(raw)
	defer func() {
		if err := buf.free(); err != nil {
			logger.Error("free content buffer failed", zap.Error(err))
		}
	}()
	uc.observe(StateContentsRead)

	sess, err := c.c.sessionFactory()
	if err != nil {
		logger.Error("open session failed", zap.Error(err))
		return StatusNone, fmt.Errorf("open session failed, err:%w", err)
	}
	defer sess.Close()
	uc.observe(StateSessionOpen)

	ref, err := buf.borrow()
	if err != nil {
		return StatusNone, err
	}
	defer ref.release()
	body := NewMultipartBody()
	defer body.Free()
	body.AppendFile(FilePartName, info.DisplayName, info.ContentType, ref)
	for k, v := range params {
		body.AppendString(k, v)
	}
	uc.observe(StateBodyBuilt)

	req, err := body.NewRequest(ctx, link)
	if err != nil {
		logger.Error("build upload message failed", zap.Error(err))
		return StatusNone, err
	}
	if err := a.ProcessMessage(req); err != nil {
		logger.Error("authorize upload message failed", zap.String("authorizer", a.Name()), zap.Error(err))
		return StatusNone, fmt.Errorf("authorize message failed, err:%w", err)
	}
	uc.observe(StateMessageAuthorized)

	start := time.Now()
	rsp, err := sess.Send(ctx, req)
	if err != nil {
		status := StatusTransportError
		if ctx.Err() != nil {
			status = StatusCancelled
		}
		logger.Error("send upload message failed", zap.Int("status", status), zap.Error(err))
		return status, fmt.Errorf("send message failed, err:%w", err)
	}
	uc.observe(StateSent)
	if uc.result != nil {
		uc.result(rsp.Body)
	}
	logger.Info("upload file finish", zap.String("name", info.DisplayName), zap.String("content_type", info.ContentType),
		zap.String("size", humanize.IBytes(uint64(buf.Len()))), zap.Int("parts", body.Len()),
		zap.Int("status", rsp.StatusCode), zap.Duration("cost", time.Since(start)))
	return rsp.StatusCode, nil
}
