package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/exdivpulse/internal/domain/dto"
)

// ErrorHandler renders the last error attached with c.Error as a JSON
// ErrorResponse, unless the handler already wrote a body. Handlers that did
// not set an error status get 500.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	status := c.Writer.Status()
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}
	last := c.Errors.Last()
	c.JSON(status, dto.NewErrorResponse(http.StatusText(status), last.Err))
}

// AbortWithError stops the chain and writes an ErrorResponse with the given
// status and user-facing message.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
