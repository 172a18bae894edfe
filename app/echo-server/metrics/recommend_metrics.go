package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RecommendDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommend_latency_seconds",
		Help:    "Latency of the recommendation endpoint",
		Buckets: prometheus.DefBuckets,
	})

	RecommendTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommend_responses_total",
		Help: "Total recommendation responses served",
	})
)

func Init() {
	prometheus.MustRegister(RecommendDuration, RecommendTotal)
}
