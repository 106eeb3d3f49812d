package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	StreamIDHeader = "X-Stream-ID"
	streamIDKey    = "stream_id"
)

// StreamIDMiddleware tags each request with a fresh UUID, exposed in the
// X-Stream-ID response header and through StreamID.
func StreamIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set(streamIDKey, id)
		c.Header(StreamIDHeader, id)
		c.Next()
	}
}

// StreamID returns the ID assigned by StreamIDMiddleware, or "".
func StreamID(c *gin.Context) string {
	return c.GetString(streamIDKey)
}
