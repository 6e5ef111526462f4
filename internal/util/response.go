package util

import (
	"net/http"

	"pdf-review-server/internal/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ResponseSuccess writes the {"success": true, ...} envelope. The payload
// keys sit next to the success flag, e.g. "project" or "comments".
func ResponseSuccess(ctx *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}

	ctx.JSON(http.StatusOK, body)
	ctx.Abort()
}

// ResponseError writes the {"error": "..."} envelope with the given code.
func ResponseError(ctx *gin.Context, code int, message string) {
	ctx.JSON(code, gin.H{"error": message})
	ctx.Abort()
}

// ResponseAppError maps a service error to its status code and message.
// Unexpected errors are logged and surfaced as a generic 500.
func ResponseAppError(ctx *gin.Context, logger *zap.SugaredLogger, err error) {
	code := apperror.HTTPStatus(err)
	if code == http.StatusInternalServerError && logger != nil {
		logger.Errorf("Unexpected error handling %s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, err)
	}

	ResponseError(ctx, code, apperror.Message(err))
}
