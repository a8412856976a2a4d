package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "getpet_http_request_duration_seconds",
		Help:    "Duración de requests HTTP por ruta y status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	GeneratedCandidates = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "getpet_generated_candidates",
		Help:    "Cantidad de mascotas devueltas por cada generación de recomendaciones.",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
	})

	ChoicesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "getpet_choices_total",
		Help: "Decisiones de swipe registradas.",
	}, []string{"favorite"})

	ChoicesRateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "getpet_choices_rate_limited_total",
		Help: "Decisiones rechazadas por límite de frecuencia.",
	})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "getpet_cache_hits_total",
		Help: "Aciertos de caché por nombre.",
	}, []string{"cache"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "getpet_cache_misses_total",
		Help: "Fallos de caché por nombre.",
	}, []string{"cache"})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
