// Admin and health HTTP handlers.
//
// These endpoints are read-only projections: the key listing and the
// recent-lookups listing add no logic on top of the keystore snapshot and
// the audit repository. The admin secret is compared by exact string
// equality; an empty configured secret disables the admin surface
// entirely.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/simdex/go-lookup-gateway/internal/repo"
)

// AdminHandlers serves the admin projections and the health check.
type AdminHandlers struct {
	keys        KeyAdmin
	adminSecret string

	// DB is the optional audit handle; nil hides audit figures.
	DB *gorm.DB
}

// NewAdmin constructs the admin/health handler group.
func NewAdmin(keys KeyAdmin, adminSecret string, db *gorm.DB) *AdminHandlers {
	return &AdminHandlers{keys: keys, adminSecret: adminSecret, DB: db}
}

// authorized checks the shared admin secret from the "admin" query
// parameter. A blank configured secret always denies.
func (h *AdminHandlers) authorized(c *gin.Context) bool {
	return h.adminSecret != "" && c.Query("admin") == h.adminSecret
}

// ListKeys godoc
// @ID          listKeys
// @Summary     List provisioned API keys
// @Description Returns the public fields of every credential (never usage counters). Requires the shared admin secret.
// @Tags        Admin
// @Produce     json
//
// @Param       admin  query  string  true  "Shared admin secret"
//
// @Success     200  {object}  map[string]keystore.PublicCredential
// @Failure     403  {object}  handlers.FailureResponse  "Secret mismatch"
// @Router      /keys [get]
func (h *AdminHandlers) ListKeys(c *gin.Context) {
	if !h.authorized(c) {
		fail(c, http.StatusForbidden, ErrCodeForbidden, "admin secret mismatch", nil)
		return
	}
	ok(c, http.StatusOK, gin.H{
		"success": true,
		"keys":    h.keys.Snapshot(),
	})
}

// ListLookups godoc
// @ID          listLookups
// @Summary     List recent lookups
// @Description Returns the most recent audit rows, newest first. Requires the shared admin secret.
// @Tags        Admin
// @Produce     json
//
// @Param       admin  query  string  true  "Shared admin secret"
//
// @Success     200  {object}  map[string]any
// @Failure     403  {object}  handlers.FailureResponse  "Secret mismatch"
// @Router      /lookups [get]
func (h *AdminHandlers) ListLookups(c *gin.Context) {
	if !h.authorized(c) {
		fail(c, http.StatusForbidden, ErrCodeForbidden, "admin secret mismatch", nil)
		return
	}
	if h.DB == nil {
		ok(c, http.StatusOK, gin.H{"success": true, "lookups": []any{}})
		return
	}
	rows, err := repo.RecentLookups(c.Request.Context(), h.DB, 50)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error(), nil)
		return
	}
	ok(c, http.StatusOK, gin.H{"success": true, "lookups": rows})
}

// Health godoc
// @ID          health
// @Summary     Liveness and status summary
// @Tags        Health
// @Produce     json
//
// @Success     200  {object}  map[string]any
// @Router      /health [get]
func (h *AdminHandlers) Health(c *gin.Context) {
	body := gin.H{
		"status":      "running",
		"active_keys": h.keys.ActiveCount(),
	}
	if h.DB != nil {
		if n, err := repo.CountLookups(c.Request.Context(), h.DB); err == nil {
			body["lookups_recorded"] = n
		}
	}
	ok(c, http.StatusOK, body)
}
