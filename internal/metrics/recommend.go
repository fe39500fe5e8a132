package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recommendation pipeline Prometheus metrics.
var (
	RecommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "strainrec",
			Name:      "recommendations_total",
			Help:      "Total number of recommendation requests",
		},
		[]string{"status"}, // "ok" / "no_candidates" / "error"
	)

	RecommendationCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "strainrec",
			Name:      "recommendation_candidates",
			Help:      "Number of candidate strains surviving the effect filter",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	ResolutionMissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "strainrec",
			Name:      "resolution_misses_total",
			Help:      "Strain names that failed fuzzy resolution",
		},
		[]string{"signal"}, // "familiar" / "favorite" / "review"
	)

	ColdStartsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "strainrec",
			Name:      "cold_starts_total",
			Help:      "Recommendation requests that fell back to the global mean vector",
		},
	)

	ChatRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "strainrec",
			Name:      "chat_requests_total",
			Help:      "Total number of budtender chat requests",
		},
		[]string{"status"},
	)
)

var serviceMetricsRegistered bool

// RegisterServiceMetrics registers the recommendation and chat metrics.
// Must be called once from main.
func RegisterServiceMetrics() {
	if serviceMetricsRegistered {
		return
	}
	prometheus.MustRegister(RecommendationsTotal)
	prometheus.MustRegister(RecommendationCandidates)
	prometheus.MustRegister(ResolutionMissesTotal)
	prometheus.MustRegister(ColdStartsTotal)
	prometheus.MustRegister(ChatRequestsTotal)
	serviceMetricsRegistered = true
}
