// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the access logger. RedactingLogger attaches a
// request-scoped zerolog.Logger to the Gin context and writes one structured
// line per request, after scrubbing obvious PII from the query string and
// header values.
//
// The users table carries email addresses, so emails are the main concern;
// UUIDs and phone numbers are scrubbed too. Bodies are never logged.
package middleware

import (
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RedactOptions configures additional scrub behavior for RedactingLogger.
//
// MaskHeaders lists extra header names whose values are replaced with
// "[REDACTED]". Matching is case-insensitive and merged with the built-in set
// (Authorization, Cookie, Set-Cookie).
type RedactOptions struct {
	MaskHeaders []string
	// LogHeaders includes the scrubbed request headers in the access line.
	LogHeaders bool
}

var (
	uuidRE  = regexp.MustCompile(`(?i)\b[0-9a-f]{8}\-[0-9a-f]{4}\-[1-5][0-9a-f]{3}\-[89ab][0-9a-f]{3}\-[0-9a-f]{12}\b`)
	emailRE = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	// digits only, so hex runs inside UUIDs never match
	phoneRE = regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`)
)

// redact scrubs IDs, then emails, then phone numbers (the loosest pattern).
func redact(s string) string {
	if s == "" {
		return s
	}
	s = uuidRE.ReplaceAllString(s, "[REDACTED:id]")
	s = emailRE.ReplaceAllString(s, "[REDACTED:email]")
	return phoneRE.ReplaceAllString(s, "[REDACTED:phone]")
}

// Logger is RedactingLogger with default options.
func Logger() gin.HandlerFunc {
	return RedactingLogger(RedactOptions{})
}

// RedactingLogger returns the access-log middleware.
//
// Behavior:
//   - Builds a logger with request_id, method, path (route template when
//     matched), remote_ip, user_agent and the scrubbed query, and stores it
//     under the "logger" context key for LoggerFrom.
//   - After the handler, logs status, latency, bytes in/out and the fault
//     kind (if a handler called MarkFault). Level is info, warn for 4xx and
//     error for 5xx or when Gin collected errors.
//
// Place it after RequestID so the correlation ID is available.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	maskHeaders := map[string]struct{}{
		"authorization": {},
		"cookie":        {},
		"set-cookie":    {},
	}
	for _, h := range opts.MaskHeaders {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			maskHeaders[h] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		start := time.Now()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		rid, _ := c.Get(requestIDKey)

		ctx := log.With().
			Str("request_id", asString(rid)).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("remote_ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent()).
			Str("query", truncate(redact(c.Request.URL.RawQuery), maxQueryLogLength))

		if opts.LogHeaders {
			safe := make(map[string]string, len(c.Request.Header))
			for k, vv := range c.Request.Header {
				if _, ok := maskHeaders[strings.ToLower(k)]; ok {
					safe[k] = "[REDACTED]"
					continue
				}
				safe[k] = redact(strings.Join(vv, ", "))
			}
			ctx = ctx.Interface("headers", safe)
		}

		l := ctx.Logger()
		c.Set(loggerKey, &l)

		c.Next()

		status := c.Writer.Status()
		ev := l.Info()
		switch {
		case len(c.Errors) > 0 || status >= 500:
			ev = l.Error()
		case status >= 400:
			ev = l.Warn()
		}
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}
		if kind := FaultKind(c); kind != "" {
			ev = ev.Str("fault", kind)
		}
		ev.
			Int("status", status).
			Dur("latency", time.Since(start)).
			Int64("bytes_in", c.Request.ContentLength).
			Int("bytes_out", c.Writer.Size()).
			Msg("http_request")
	}
}
