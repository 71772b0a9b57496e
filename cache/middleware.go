package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"nmalls-recorrencia/logger"
)

// KeyPrefix namespaces every cached API response.
const KeyPrefix = "nmalls:api:"

// bodyWriter tees the response body so it can be stored after the handler ran.
type bodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Middleware serves successful GET responses from store and drops the
// whole API cache after any successful write. A nil store disables it.
func Middleware(store Store, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()

		if c.Request.Method != http.MethodGet {
			c.Next()
			if c.Writer.Status() < http.StatusBadRequest {
				if err := store.DeletePrefix(ctx, KeyPrefix); err != nil {
					logger.Logger.Warn().Err(err).Msg("Failed to invalidate cache")
				}
			}
			return
		}

		key := requestKey(c)
		if cached, err := store.Get(ctx, key); err == nil && len(cached) > 0 {
			logger.Logger.Debug().Str("path", c.Request.URL.Path).Msg("Cache hit")
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			c.Abort()
			return
		}

		bw := &bodyWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = bw
		c.Header("X-Cache", "MISS")

		c.Next()

		if c.Writer.Status() != http.StatusOK || bw.body.Len() == 0 {
			return
		}
		if err := store.Set(ctx, key, bw.body.Bytes(), ttl); err != nil {
			logger.Logger.Warn().Err(err).Str("cache_key", key).Msg("Failed to cache response")
		}
	}
}

// requestKey hashes path, query and bearer token so users never share entries.
func requestKey(c *gin.Context) string {
	raw := fmt.Sprintf("%s:%s:%s",
		c.Request.URL.Path,
		c.Request.URL.RawQuery,
		c.GetHeader("Authorization"),
	)
	hash := sha256.Sum256([]byte(raw))
	return KeyPrefix + hex.EncodeToString(hash[:])
}
