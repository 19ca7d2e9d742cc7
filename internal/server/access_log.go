package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	mcontext "github.com/mazesearch/mazesearch/pkg/context"
	"github.com/mazesearch/mazesearch/pkg/logger"
)

// AccessLog tags each request with a run id and writes one log line when it
// completes. Client errors log as warnings, server errors as errors.
func AccessLog(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		ctx := mcontext.WithOperation(mcontext.EnrichContext(c.Request.Context()), c.Request.Method+" "+route)
		c.Request = c.Request.WithContext(ctx)
		started := time.Now()

		c.Next()

		fields := []logger.Field{
			logger.WithField("status", c.Writer.Status()),
			logger.WithField("latency_ms", time.Since(started).Milliseconds()),
			logger.WithField("client", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, logger.WithField("error", c.Errors.String()))
		}

		reqLog := logger.WithContext(ctx, log)
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			reqLog.Error("request failed", fields...)
		case status >= http.StatusBadRequest:
			reqLog.Warn("request rejected", fields...)
		default:
			reqLog.Info("request served", fields...)
		}
	}
}
