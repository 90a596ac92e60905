package mockgraph

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

const (
	defaultMeNodeId = "100000000000001"
	filePartName    = "file"
)

func resolveNode(node string) string {
	if node == "me" {
		return defaultMeNodeId
	}
	return node
}

func (s *Server) getNode(c *gin.Context) {
	node := resolveNode(c.Param("node"))
	c.JSON(http.StatusOK, gin.H{
		"id":   node,
		"name": "Mock User " + node,
	})
}

func (s *Server) listPhotos(c *gin.Context) {
	node := resolveNode(c.Param("node"))
	data := make([]gin.H, 0)
	for _, item := range s.Uploads() {
		if item.Node != node {
			continue
		}
		data = append(data, gin.H{"id": item.ID, "name": item.Fields["message"]})
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

func (s *Server) uploadPhoto(c *gin.Context) {
	ctx := c.Request.Context()
	node := resolveNode(c.Param("node"))
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		failJson(c, http.StatusBadRequest, "GraphMethodException", fmt.Sprintf("unsupported content type:%s", c.ContentType()), 100)
		return
	}
	if err := c.Request.ParseMultipartForm(s.c.maxMemory); err != nil {
		failJson(c, http.StatusBadRequest, "GraphMethodException", fmt.Sprintf("parse multipart form failed, err:%v", err), 100)
		return
	}
	header, err := c.FormFile(filePartName)
	if err != nil {
		failJson(c, http.StatusBadRequest, "OAuthException", "(#324) Requires upload file", 324)
		return
	}
	fields := make(map[string]string, len(c.Request.MultipartForm.Value))
	for k, vs := range c.Request.MultipartForm.Value {
		if len(vs) > 0 {
			fields[k] = vs[0]
		}
	}
	rec := &UploadRecord{
		ID:          uuid.NewString(),
		Node:        node,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Fields:      fields,
	}
	s.addUpload(rec)
	logutil.GetLogger(ctx).Info("recv photo upload", zap.String("node", node), zap.String("file_name", rec.FileName),
		zap.String("content_type", rec.ContentType), zap.String("size", humanize.IBytes(uint64(rec.Size))), zap.Int("fields", len(fields)))
	c.JSON(http.StatusOK, gin.H{
		"id":      rec.ID,
		"post_id": node + "_" + rec.ID,
	})
}
