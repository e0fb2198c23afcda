package web

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mytheresa/catalog-admin/app/apperrors"
	"github.com/mytheresa/catalog-admin/app/i18n"
	"github.com/mytheresa/catalog-admin/app/logging"
)

const RequestIDHeader = "X-Request-ID"

// RequestID reuses an incoming X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(logging.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// Logger logs every request once it completes.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		log := logging.FromContext(c.Request.Context())
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", time.Since(start),
			"ip", c.ClientIP(),
		}

		switch {
		case status >= 500:
			log.Error("request", attrs...)
		case status >= 400:
			log.Warn("request", attrs...)
		default:
			log.Info("request", attrs...)
		}
	}
}

// Language resolves the request language and persists an explicit ?lang.
func Language() gin.HandlerFunc {
	return func(c *gin.Context) {
		tag, persist := i18n.ResolveTag(c.Request)
		if persist {
			i18n.SetLanguageCookie(c.Writer, tag)
		}
		c.Set(langKey, tag)
		c.Next()
	}
}

// Recovery turns a panic into the error page.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		RenderError(c, apperrors.Internal(fmt.Errorf("panic: %v", recovered)))
		c.Abort()
	})
}

// NotFound renders the error page for unmatched routes.
func NotFound(c *gin.Context) {
	RenderError(c, apperrors.New(apperrors.CodeNotFound, "page not found", http.StatusNotFound))
}

// ParseID reads a positive numeric route parameter.
func ParseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
