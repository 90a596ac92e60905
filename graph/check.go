package graph

import (
	"context"

	"github.com/xxxsen/gfbgraph/vfile"
)

// IsUploadable reports whether f is an existing local file. The scheme is
// checked first, so non local candidates never cause any io.
func (c *Client) IsUploadable(ctx context.Context, f vfile.IFile) bool {
	if f == nil {
		return false
	}
	return vfile.IsLocal(f) && f.Exists(ctx)
}
