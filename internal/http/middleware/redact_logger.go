// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements RedactingLogger, the structured access logger. Every
// lookup request arrives with an API key and a phone number or national ID
// in the query string, so the raw query must never reach the logs. The
// logger masks the sensitive query parameters outright, scrubs digit runs
// that look like lookup subjects, and masks sensitive headers.
//
// It never logs request or response bodies.
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
// MaskParams lists query parameter names whose values are fully replaced
// with "[REDACTED]"; it is merged with the built-in set ("key", "admin").
// MaskHeaders works the same way for headers, merged with the built-in
// sensitive headers (Authorization, Cookie, Set-Cookie).
type RedactOptions struct {
	MaskParams  []string
	MaskHeaders []string
}

// RedactingLogger returns a Gin middleware that logs HTTP requests with
// sensitive values scrubbed, and attaches a request-scoped logger to the
// context for handlers to enrich.
//
// Severity tracks the response: INFO for 2xx/3xx, WARN for 4xx, ERROR for
// 5xx.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	// Lookup subjects are 9-13 digit runs; scrub them wherever they appear.
	subjectRE := regexp.MustCompile(`\b\d{9,15}\b`)

	maskParams := map[string]struct{}{
		"key":   {},
		"admin": {},
	}
	for _, p := range opts.MaskParams {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			maskParams[p] = struct{}{}
		}
	}
	// (?i)(key|admin|...)=[^&]* built from the final mask set.
	names := make([]string, 0, len(maskParams))
	for p := range maskParams {
		names = append(names, regexp.QuoteMeta(p))
	}
	paramRE := regexp.MustCompile(`(?i)\b(` + strings.Join(names, "|") + `)=[^&]*`)

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

	redact := func(s string) string {
		if s == "" {
			return s
		}
		out := paramRE.ReplaceAllString(s, "$1=[REDACTED]")
		out = subjectRE.ReplaceAllString(out, "[REDACTED:subject]")
		return out
	}

	return func(c *gin.Context) {
		start := time.Now()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		safeQuery := redact(c.Request.URL.RawQuery)

		safeHeaders := make(map[string]string, len(c.Request.Header))
		for k, vv := range c.Request.Header {
			val := strings.Join(vv, ", ")
			if _, ok := maskHeaders[strings.ToLower(k)]; ok {
				safeHeaders[k] = "[REDACTED]"
				continue
			}
			safeHeaders[k] = redact(val)
		}

		reqID := c.Writer.Header().Get(requestIDHeader)

		// Request-scoped logger for handlers and services.
		l := log.With().
			Str("request_id", reqID).
			Str("method", c.Request.Method).
			Str("path", path).
			Logger()
		c.Set(loggerKey, &l)

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		}

		ev.
			Str("request_id", reqID).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", safeQuery).
			Str("remote_ip", c.ClientIP()).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", latency).
			Interface("headers", safeHeaders).
			Msg("http_request")
	}
}
