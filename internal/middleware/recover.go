package middleware

import (
	"bytes"

	"github.com/gin-gonic/gin"
)

func Recover() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.JSON(500, gin.H{"code": 500, "msg": "internal error"})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// BodyBuffer 缓存请求体，回调处理需要读原始 XML
func BodyBuffer() gin.HandlerFunc {
	return func(c *gin.Context) {
		buf := new(bytes.Buffer)
		if c.Request.Body != nil {
			buf.ReadFrom(c.Request.Body)
			c.Request.Body = ioNopCloser{bytes.NewReader(buf.Bytes())}
		}
		c.Next()
	}
}

type ioNopCloser struct{ *bytes.Reader }

func (ioNopCloser) Close() error { return nil }
