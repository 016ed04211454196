package metrics

import "github.com/prometheus/client_golang/prometheus"

// Live-search session metrics. Registered explicitly via
// RegisterSessionMetrics (no init()) so tests and the SDK can opt out.
var (
	// ActiveSessions tracks currently open live-search sessions.
	ActiveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "searchdeck",
		Name:      "active_sessions",
		Help:      "Number of open live-search sessions",
	})

	// KeystrokesTotal counts raw input events received by sessions.
	KeystrokesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "searchdeck",
		Name:      "session_keystrokes_total",
		Help:      "Raw input events received by live-search sessions",
	})

	// LocationUpdatesTotal counts location updates requested by controllers,
	// split by what triggered them. The ratio of keystrokes to query commits
	// is the debounce suppression factor.
	LocationUpdatesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "searchdeck",
		Name:      "session_location_updates_total",
		Help:      "Location updates requested by session controllers",
	}, []string{"trigger"}) // "commit" | "page"

	// SessionsExpiredTotal counts sessions evicted by the idle janitor.
	SessionsExpiredTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "searchdeck",
		Name:      "sessions_expired_total",
		Help:      "Live-search sessions evicted after their idle TTL",
	})

	// EmbeddingCacheTotal counts embedding cache lookups by result.
	EmbeddingCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "searchdeck",
		Name:      "embedding_cache_total",
		Help:      "Embedding cache lookups by result",
	}, []string{"result"}) // "hit" | "miss"
)

// RegisterSessionMetrics registers session and embedding metrics with the
// default registry. Call once from the composition root.
func RegisterSessionMetrics() {
	prometheus.MustRegister(
		ActiveSessions,
		KeystrokesTotal,
		LocationUpdatesTotal,
		SessionsExpiredTotal,
		EmbeddingCacheTotal,
	)
}
