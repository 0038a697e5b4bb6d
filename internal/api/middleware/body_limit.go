package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MUTInnovationLab/TTMS-sub001/pkg/response"
)

// BodyLimit 全局请求体大小限制中间件。
// maxBytes 取校历上传上限（config calendar.max_upload_bytes）。
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()

		// 检查是否因为超出限制而失败
		if c.IsAborted() {
			return
		}
		for _, err := range c.Errors {
			if err.Err != nil && err.Err.Error() == "http: request body too large" {
				response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
				return
			}
		}
	}
}
