package mockgraph

import (
	"crypto/hmac"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/gfbgraph/auth"
	"go.uber.org/zap"
)

const (
	keyAccessToken = "access_token"
)

func extractToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return c.Query(keyAccessToken)
}

func mustTokenMiddleware(cfg *config) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := logutil.GetLogger(c.Request.Context()).With(zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path), zap.String("ip", c.ClientIP()))
		tk := extractToken(c)
		if len(tk) == 0 {
			failOAuth(c, "An active access token must be used to query information about the current user.", 2500)
			return
		}
		if len(cfg.tokens) > 0 {
			if _, ok := cfg.tokens[tk]; !ok {
				logger.Debug("token not match")
				failOAuth(c, "Invalid OAuth access token.", 190)
				return
			}
		}
		if len(cfg.appSecret) > 0 {
			proof := c.Query("appsecret_proof")
			expect := auth.AppSecretProof(tk, cfg.appSecret)
			if !hmac.Equal([]byte(proof), []byte(expect)) {
				logger.Debug("appsecret_proof not match")
				failOAuth(c, "Invalid appsecret_proof provided in the API argument", 100)
				return
			}
		}
		c.Set(keyAccessToken, tk)
	}
}

func failOAuth(c *gin.Context, msg string, code int) {
	failJson(c, http.StatusBadRequest, "OAuthException", msg, code)
}

func failJson(c *gin.Context, status int, typ string, msg string, code int) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{
			"message": msg,
			"type":    typ,
			"code":    code,
		},
	})
}
