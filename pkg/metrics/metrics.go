package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Verification outcome labels. Unknown and revoked are split here for
// operators even though the HTTP response is one generic denial.
const (
	ResultAllowed = "allowed"
	ResultMissing = "missing"
	ResultUnknown = "unknown"
	ResultRevoked = "revoked"
	ResultError   = "error"
)

var (
	KeysCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "keygate_keys_created_total",
		Help: "Number of API keys created.",
	})

	KeysRevoked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "keygate_keys_revoked_total",
		Help: "Number of API keys revoked.",
	})

	Verifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "keygate_verifications_total",
		Help: "API key verification attempts by outcome.",
	}, []string{"result"})
)

// Handler exposes the default prometheus registry
func Handler() http.Handler {
	return promhttp.Handler()
}
