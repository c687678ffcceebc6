package metrics

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// GinMiddleware records HTTP metrics. Requests are labeled by route template
// (e.g. /api/v1/backtest/:id/rows) so ids do not explode label cardinality.
func GinMiddleware(reg *Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		reg.InFlightInc()
		defer reg.InFlightDec()

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		reg.RecordRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start).Seconds())
	}
}

// Handler exposes the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.Registry, promhttp.HandlerOpts{Registry: r.Registry})
}
