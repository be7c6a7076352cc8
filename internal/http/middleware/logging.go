// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides the request ID injector, the panic fallback and the
// helpers that expose request-scoped state to handlers:
//
//   - RequestID() ensures every request carries a correlation ID
//     (propagated via X-Request-ID and stored in the Gin context).
//   - Recovery() turns any panic into {"error":"unexpected error"} with 500.
//     The stack trace goes to the log, never to the client.
//   - LoggerFrom() retrieves the request-scoped logger attached by
//     RedactingLogger/Logger.
//   - MarkFault()/FaultKind() carry the failure kind a handler resolved so
//     access logs and metrics can report it.
//
// Recommended order: RequestID → RedactingLogger → Recovery → Metrics.
package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// requestIDKey is the Gin context key under which the request ID is stored.
	requestIDKey = "requestID"
	// requestIDHeader is the HTTP header used to propagate the correlation ID.
	requestIDHeader = "X-Request-ID"
	// loggerKey is the Gin context key of the request-scoped *zerolog.Logger.
	loggerKey = "logger"
	// faultKindKey is the Gin context key of the failure kind set by MarkFault.
	faultKindKey = "faultKind"
	// maxRequestIDLength bounds client-supplied correlation IDs.
	maxRequestIDLength = 128
	// maxQueryLogLength caps the number of bytes of the raw query string logged.
	maxQueryLogLength = 2048
)

// FaultPanic is the kind recorded when Recovery handles a panic.
const FaultPanic = "panic"

// RequestID attaches (or propagates) a correlation identifier per request.
// An incoming X-Request-ID is reused unless it is empty or longer than
// maxRequestIDLength, in which case a new UUIDv4 is generated.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" || len(rid) > maxRequestIDLength {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Writer.Header().Set(requestIDHeader, rid)
		c.Next()
	}
}

// Recovery intercepts panics and answers with the generic fallback body.
//
// Behavior:
//   - Logs the panic value and stack trace with the request-scoped logger.
//   - If nothing was written yet, responds 500 {"error":"unexpected error"}.
//     Otherwise only the status is forced.
//   - Marks the request with FaultPanic for logs and metrics.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				// client went away; let net/http handle it quietly
				panic(rec)
			}
			LoggerFrom(c).Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			MarkFault(c, FaultPanic)
			if !c.Writer.Written() {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "unexpected error"})
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
		}()
		c.Next()
	}
}

// LoggerFrom returns the request-scoped zerolog.Logger.
//
// If no logger was attached, a fallback carrying only the request ID (when
// known) is returned. Callers can use the result without nil checks.
func LoggerFrom(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if lg, ok := v.(*zerolog.Logger); ok {
			return lg
		}
	}
	rid, _ := c.Get(requestIDKey)
	l := log.With().Str("request_id", asString(rid)).Logger()
	return &l
}

// MarkFault records the failure kind resolved for the current request.
func MarkFault(c *gin.Context, kind string) {
	c.Set(faultKindKey, kind)
}

// FaultKind returns the kind stored by MarkFault, or "" if none.
func FaultKind(c *gin.Context) string {
	v, _ := c.Get(faultKindKey)
	return asString(v)
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// truncate returns s unchanged when within max bytes, otherwise it cuts s to
// max bytes and appends an ellipsis. A max <= 0 disables truncation.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
