package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterMetrics exposes the default Prometheus registry at /metrics.
// RegisterMetrics публикует реестр Prometheus по умолчанию на /metrics.
func RegisterMetrics(router gin.IRoutes) {
	router.GET("/metrics", MetricsHandler(prometheus.DefaultGatherer))
}

// MetricsHandler serves gatherer in the Prometheus text format.
// MetricsHandler отдаёт gatherer в текстовом формате Prometheus.
func MetricsHandler(gatherer prometheus.Gatherer) gin.HandlerFunc {
	h := promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	return gin.WrapH(h)
}
