package thor

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	conversions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thor_coordinate_conversions_total",
			Help: "Total number of batch coordinate conversions, by representation pair.",
		},
		[]string{"from", "to"},
	)

	frameRotations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thor_frame_rotations_total",
			Help: "Total number of batch frame rotations, by frame pair.",
		},
		[]string{"from", "to"},
	)

	keplerNonConvergences = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "thor_kepler_nonconvergences_total",
			Help: "Total number of Kepler solves that hit the iteration cap.",
		},
	)

	batchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "thor_batch_duration_seconds",
			Help:    "Wall time of one parallel row batch in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(conversions)
	prometheus.MustRegister(frameRotations)
	prometheus.MustRegister(keplerNonConvergences)
	prometheus.MustRegister(batchDuration)
}
