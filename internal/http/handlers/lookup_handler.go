// Lookup HTTP handler.
//
// This file exposes the public lookup endpoint:
//   - GET /lookup?num=<query>&key=<credential>[&pretty=1]
//
// The handler is transport-thin: it pulls the two inputs off the query
// string, calls the lookup service, and translates the service's typed
// errors into the failure envelope and the right status code. All denial
// sub-reasons surface both as a stable code and as detail fields.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simdex/go-lookup-gateway/internal/classify"
	"github.com/simdex/go-lookup-gateway/internal/keystore"
	"github.com/simdex/go-lookup-gateway/internal/services"
	"github.com/simdex/go-lookup-gateway/internal/upstream"
)

// LookupService defines the orchestration contract consumed by the lookup
// handler. Implementations must be safe for concurrent use.
type LookupService interface {
	// Lookup runs the full pipeline; on upstream failure the returned
	// result is non-nil and carries the credential snapshot.
	Lookup(ctx context.Context, rawQuery, key string) (*services.LookupResult, error)
}

// KeyAdmin is the read-only credential projection used by the admin and
// health endpoints.
type KeyAdmin interface {
	Snapshot() map[string]keystore.PublicCredential
	ActiveCount() int
}

// Handlers groups the public lookup endpoint of the gateway.
type Handlers struct {
	svc         LookupService
	attribution string
}

// New constructs a Handlers instance bound to the lookup service.
func New(svc LookupService, attribution string) *Handlers {
	return &Handlers{svc: svc, attribution: attribution}
}

// Lookup godoc
// @ID          lookup
// @Summary     Look up a mobile number or national ID
// @Description Validates the caller's API key, forwards the query to the upstream source, and returns the extracted records.
// @Tags        Lookup
// @Produce     json
//
// @Param       num     query  string  true   "Mobile number (92 plus 9-12 digits) or 13-digit national ID"  example(923001234567)
// @Param       key     query  string  true   "API key"
// @Param       pretty  query  bool    false  "Indent the JSON response"
//
// @Success     200  {object}  handlers.LookupResponse
// @Failure     400  {object}  handlers.FailureResponse  "Missing or malformed query"
// @Failure     401  {object}  handlers.FailureResponse  "Credential denied"
// @Failure     500  {object}  handlers.FailureResponse  "Upstream failure"
// @Router      /lookup [get]
func (h *Handlers) Lookup(c *gin.Context) {
	res, err := h.svc.Lookup(c.Request.Context(), c.Query("num"), c.Query("key"))
	if err != nil {
		h.failLookup(c, res, err)
		return
	}

	body := LookupResponse{
		Success:      true,
		KeyDetails:   res.KeyDetails,
		Query:        res.Query.Value,
		QueryType:    string(res.Query.Kind),
		ResultsCount: len(res.Records),
		Data:         make([]recordPayload, 0, len(res.Records)),
		Copyright:    h.attribution,
	}
	for _, r := range res.Records {
		body.Data = append(body.Data, recordPayload{
			Mobile:     r.Mobile,
			Name:       r.Name,
			NationalID: r.NationalID,
			Address:    r.Address,
		})
	}
	if len(res.Records) == 0 {
		body.Message = "no records found for this query"
	}
	ok(c, http.StatusOK, body)
}

// failLookup maps the service's typed errors onto the error taxonomy.
func (h *Handlers) failLookup(c *gin.Context, res *services.LookupResult, err error) {
	var (
		expErr   *keystore.ExpiredError
		quotaErr *keystore.QuotaError
		upErr    *upstream.Error
	)
	switch {
	case errors.Is(err, keystore.ErrKeyMissing):
		fail(c, http.StatusUnauthorized, ErrCodeKeyMissing, err.Error(), nil)
	case errors.Is(err, keystore.ErrKeyNotFound):
		fail(c, http.StatusUnauthorized, ErrCodeAccessDenied, err.Error(), nil)
	case errors.Is(err, keystore.ErrKeyInactive):
		fail(c, http.StatusUnauthorized, ErrCodeKeyInactive, err.Error(), nil)
	case errors.As(err, &expErr):
		fail(c, http.StatusUnauthorized, ErrCodeKeyExpired, err.Error(), gin.H{
			"expiry": expErr.Expiry.Format("2006-01-02"),
		})
	case errors.As(err, &quotaErr):
		fail(c, http.StatusUnauthorized, ErrCodeQuotaExceeded, err.Error(), gin.H{
			"daily_quota": quotaErr.Quota,
			"used_today":  quotaErr.UsedToday,
		})
	case errors.Is(err, services.ErrNumberRequired):
		fail(c, http.StatusBadRequest, ErrCodeNumberRequired, err.Error(), nil)
	case errors.Is(err, classify.ErrInvalidFormat):
		fail(c, http.StatusBadRequest, ErrCodeInvalidFormat, err.Error(), nil)
	case errors.As(err, &upErr):
		extra := gin.H{"kind": string(upErr.Kind)}
		if res != nil {
			// Usage was already charged for this attempt; echo the snapshot.
			extra["key_details"] = res.KeyDetails
		}
		fail(c, http.StatusInternalServerError, ErrCodeUpstreamFailed, err.Error(), extra)
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error(), nil)
	}
}
