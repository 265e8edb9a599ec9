package detector

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Detection pipeline metrics
	detectionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vmware_hwdetect_detection_duration_seconds",
			Help:    "Time taken to complete a full hardware detection run",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30},
		},
	)

	detectionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vmware_hwdetect_detection_total",
			Help: "Total number of hardware detection runs",
		},
		[]string{"status"}, // success or error
	)

	probeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vmware_hwdetect_probe_duration_seconds",
			Help:    "Time taken by individual probe collectors",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"category"}, // cpu, virtualization, storage, memory, gpu
	)

	probeFailureCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vmware_hwdetect_probe_failures",
			Help: "Number of probe failures in the last detection run",
		},
	)
)
