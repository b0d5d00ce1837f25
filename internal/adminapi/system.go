package adminapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mobileriadardania/storefront/internal/webserver"
	"github.com/spf13/cast"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/mobileriadardania/storefront/docs"
)

type healthResponse struct {
	Status string `json:"status"`
}

func registerSystemRoutes(s *webserver.Server) {
	s.ApiGET("/metrics", getMetrics)
	s.ApiGET("/metrics/:name/history", getMetricHistory)
	s.ApiPOST("/audit", runAudit)
	s.GET("/healthz", healthz)
	s.GET("/swagger/*", echoSwagger.WrapHandler)
}

// @Summary current counters and gauges
// @Tags System
// @Success 200 {object} metrics.Snapshot
// @Router /api/metrics [get]
func getMetrics(c echo.Context) error {
	return ok(c, http.StatusOK, GetAppContext(c).Metrics().Snapshot())
}

// @Summary recorded samples of one metric
// @Tags System
// @Param name path string true "Metric name"
// @Param window query string false "Look-back window, e.g. 24h (default 1h)"
// @Success 200 {array} metrics.Point
// @Failure 400 {object} webserver.ErrorResponse
// @Router /api/metrics/{name}/history [get]
func getMetricHistory(c echo.Context) error {
	window := time.Hour
	if v := c.QueryParam("window"); v != "" {
		d, err := cast.ToDurationE(v)
		if err != nil || d <= 0 {
			return fail(c, http.StatusBadRequest, "INVALID_WINDOW", "Invalid window", err)
		}
		window = d
	}
	points, err := GetAppContext(c).Metrics().History(c.Param("name"), window)
	if err != nil {
		return failWith(c, err, "Failed to read metric history")
	}
	return ok(c, http.StatusOK, points)
}

// runAudit runs the catalog audit immediately and returns the report.
//
// @Summary run the catalog audit
// @Tags System
// @Success 200 {object} catalog.AuditReport
// @Router /api/audit [post]
func runAudit(c echo.Context) error {
	report, err := GetAppContext(c).RunAudit(c.Request().Context())
	if err != nil {
		return failWith(c, err, "Failed to run audit")
	}
	return ok(c, http.StatusOK, report)
}

func healthz(c echo.Context) error {
	return ok(c, http.StatusOK, healthResponse{Status: "ok"})
}
