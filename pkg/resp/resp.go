package resp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Machine-checkable error kinds. Clients branch on kind, humans read error.
const (
	KindNotFound          = "NOT_FOUND"
	KindInvalidInput      = "INVALID_INPUT"
	KindInvalidTransition = "INVALID_TRANSITION"
	KindForbidden         = "FORBIDDEN"
	KindUnauthorized      = "UNAUTHORIZED"
	KindUpstreamPayment   = "UPSTREAM_PAYMENT"
	KindInternal          = "INTERNAL"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"ok": true, "data": data})
}

func BadRequest(c *gin.Context, msg string) {
	Error(c, http.StatusBadRequest, KindInvalidInput, msg)
}

func NotFound(c *gin.Context, msg string) {
	Error(c, http.StatusNotFound, KindNotFound, msg)
}

func Unauthorized(c *gin.Context, msg string) {
	Error(c, http.StatusUnauthorized, KindUnauthorized, msg)
}

func Forbidden(c *gin.Context, msg string) {
	Error(c, http.StatusForbidden, KindForbidden, msg)
}

func Conflict(c *gin.Context, msg string) {
	Error(c, http.StatusConflict, KindInvalidTransition, msg)
}

func BadGateway(c *gin.Context, msg string) {
	Error(c, http.StatusBadGateway, KindUpstreamPayment, msg)
}

// ServerError hides the underlying error from clients; callers log it.
func ServerError(c *gin.Context, _ error) {
	Error(c, http.StatusInternalServerError, KindInternal, "internal error")
}

func Error(c *gin.Context, status int, kind, msg string) {
	c.JSON(status, gin.H{"ok": false, "kind": kind, "error": msg})
}

// ErrorWithData carries a payload alongside the error, for the cases
// where the request partially succeeded and the client needs the ids.
func ErrorWithData(c *gin.Context, status int, kind, msg string, data any) {
	c.JSON(status, gin.H{"ok": false, "kind": kind, "error": msg, "data": data})
}
