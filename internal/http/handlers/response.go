// Package handlers provides the HTTP handler implementations for the
// public API.
//
// This file defines the response envelope utilities used by every
// endpoint. All bodies carry an explicit success flag; failures add a
// stable code, a human-readable error message, the correlation ID, and any
// denial detail fields; successes carry the credential usage snapshot and
// the result payload. The ?pretty flag switches to indented JSON.
//
// Example failure:
//
//	HTTP/1.1 401 Unauthorized
//	{
//	  "success": false,
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "daily_limit_exceeded",
//	  "error": "daily limit exceeded (50/50)",
//	  "daily_quota": 50,
//	  "used_today": 50
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simdex/go-lookup-gateway/internal/http/middleware"
	"github.com/simdex/go-lookup-gateway/internal/keystore"
)

// FailureResponse documents the failure envelope shape (used by Swagger).
type FailureResponse struct {
	Success   bool   `json:"success" example:"false"`
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable machine-readable code (see errors.go constants)
	Code string `json:"code" example:"access_denied"`
	// Human-readable message
	Error string `json:"error" example:"access denied"`
}

// LookupResponse is the success envelope for the lookup endpoint.
type LookupResponse struct {
	Success      bool              `json:"success"`
	KeyDetails   keystore.KeyInfo  `json:"key_details"`
	Query        string            `json:"query"`
	QueryType    string            `json:"query_type"`
	ResultsCount int               `json:"results_count"`
	Data         []recordPayload   `json:"data"`
	Message      string            `json:"message,omitempty"`
	Copyright    string            `json:"copyright"`
}

// recordPayload fixes the wire field order/names of one extracted record.
type recordPayload struct {
	Mobile     string `json:"mobile"`
	Name       string `json:"name"`
	NationalID string `json:"national_id"`
	Address    string `json:"address"`
}

// fail aborts the request with the structured failure envelope. extra
// fields (denial details such as expiry or quota counters) are merged into
// the body. Server-side errors (>=500) are logged with request context.
func fail(c *gin.Context, status int, code, msg string, extra gin.H) {
	body := gin.H{
		"success":    false,
		"request_id": c.Writer.Header().Get("X-Request-ID"),
		"code":       code,
		"error":      msg,
	}
	for k, v := range extra {
		body[k] = v
	}

	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	if pretty(c) {
		c.IndentedJSON(status, body)
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(status, body)
}

// Fail is the exported variant of fail() for router-level fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg, nil) }

// ok writes a success JSON response, honoring the pretty flag.
func ok(c *gin.Context, status int, body any) {
	if pretty(c) {
		c.IndentedJSON(status, body)
		return
	}
	c.JSON(status, body)
}

// pretty reports whether the caller asked for indented output.
func pretty(c *gin.Context) bool {
	switch c.Query("pretty") {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
