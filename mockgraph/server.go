package mockgraph

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

type UploadRecord struct {
	ID          string            `json:"id"`
	Node        string            `json:"node"`
	FileName    string            `json:"file_name"`
	ContentType string            `json:"content_type"`
	Size        int64             `json:"size"`
	Fields      map[string]string `json:"fields"`
}

// Server is a tiny in-memory stand-in for the graph api. It knows the
// current user node and accepts photo uploads.
type Server struct {
	c       *config
	engine  *gin.Engine
	mu      sync.Mutex
	uploads []*UploadRecord
}

func New(opts ...Option) *Server {
	s := &Server{c: applyOpts(opts...)}
	engine := gin.New()
	engine.Use(gin.Recovery())
	s.initAPI(engine.Group("/" + s.c.version))
	s.engine = engine
	return s
}

func (s *Server) initAPI(router *gin.RouterGroup) {
	mustToken := mustTokenMiddleware(s.c)
	router.GET("/:node", mustToken, s.getNode)
	router.GET("/:node/photos", mustToken, s.listPhotos)
	router.POST("/:node/photos", mustToken, s.uploadPhoto)
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Run(bind string) error {
	return s.engine.Run(bind)
}

func (s *Server) addUpload(r *UploadRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads = append(s.uploads, r)
}

// Uploads returns a snapshot of all accepted uploads.
func (s *Server) Uploads() []*UploadRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	rs := make([]*UploadRecord, len(s.uploads))
	copy(rs, s.uploads)
	return rs
}
