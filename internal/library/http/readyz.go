package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/library/internal/library/store"
	"github.com/aussiebroadwan/library/pkg/httpx"
	"github.com/aussiebroadwan/library/pkg/librarysdk"
	"github.com/aussiebroadwan/library/pkg/slogx"
)

// ReadinessChecker reports whether token signing is usable.
type ReadinessChecker interface {
	Ready() error
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe checking the database connection and the token signer
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	librarysdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	librarysdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	signer ReadinessChecker,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := slogx.FromContext(r.Context())
		checks := &librarysdk.HealthChecks{
			Database: "ok",
			Signer:   "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			log.Warn("readiness: database ping failed", "err", err)
			checks.Database = "error"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if err := signer.Ready(); err != nil {
			log.Warn("readiness: signer not ready", "err", err)
			checks.Signer = "error"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, librarysdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
