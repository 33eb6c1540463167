package middleware

import (
	"github.com/gin-gonic/gin"
	"recruit_messaging/pkg/errors"
)

// ErrorHandler renders the last error a handler attached with c.Error when
// no response was written.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last()

			statusCode := errors.HTTPStatusFromError(err.Err)

			c.JSON(statusCode, gin.H{
				"error": errors.PublicMessage(err.Err),
			})
		}
	}
}
