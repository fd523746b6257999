package auth

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	pathSuperUser = "superuser"
	pathAggregate = "aggregate"
)

var (
	resolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "permission_resolutions_total",
			Help: "Number of permission resolutions by path.",
		},
		[]string{"path"},
	)
	registerOnce sync.Once
)

// RegisterMetrics registers the auth metrics with the default prometheus registry.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(resolutionsTotal)
	})
}
