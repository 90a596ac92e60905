package vfile

import (
	"context"
	"encoding/binary"
	"mime"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/ristretto/v2"
	"github.com/gabriel-vasile/mimetype"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/gfbgraph/cacheapi"
	cachewrap "github.com/xxxsen/gfbgraph/cacheapi/adaptor"
	"go.uber.org/zap"
)

const (
	defaultOctetStream       = "application/octet-stream"
	defaultMaxTypeCacheItems = 4096
)

var (
	typeCacheOnce sync.Once
	typeCache     cacheapi.ICache[uint64, string]
)

func getTypeCache() cacheapi.ICache[uint64, string] {
	typeCacheOnce.Do(func() {
		c, err := ristretto.NewCache(&ristretto.Config[uint64, string]{
			NumCounters:        defaultMaxTypeCacheItems * 10,
			MaxCost:            defaultMaxTypeCacheItems,
			BufferItems:        64,
			IgnoreInternalCost: true,
		})
		if err != nil {
			logutil.GetLogger(context.Background()).Error("init content type cache failed, skip cache", zap.Error(err))
			return
		}
		typeCache = cachewrap.WrapRistrettoCache(c)
	})
	return typeCache
}

func typeCacheKey(path string, size int64, mtime int64) uint64 {
	buf := make([]byte, 16, 16+len(path))
	binary.BigEndian.PutUint64(buf[:8], uint64(size))
	binary.BigEndian.PutUint64(buf[8:], uint64(mtime))
	buf = append(buf, path...)
	return xxhash.Sum64(buf)
}

// determineByExt is the fallback when content sniffing gives nothing better
// than octet-stream.
func determineByExt(filename string) string {
	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
	if mimeType == "" {
		return defaultOctetStream
	}
	return mimeType
}

func pickType(detected string, filename string) string {
	if len(detected) == 0 || strings.HasPrefix(detected, defaultOctetStream) {
		return determineByExt(filename)
	}
	return detected
}

func detectFileType(ctx context.Context, path string, size int64, mtime int64) (string, error) {
	load := func(ctx context.Context, _ uint64) (string, error) {
		m, err := mimetype.DetectFile(path)
		if err != nil {
			return "", err
		}
		return pickType(m.String(), path), nil
	}
	c := getTypeCache()
	if c == nil {
		return load(ctx, 0)
	}
	return cacheapi.Load(ctx, c, typeCacheKey(path, size, mtime), load)
}

func detectBytesType(data []byte, filename string) string {
	return pickType(mimetype.Detect(data).String(), filename)
}
