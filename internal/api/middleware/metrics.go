package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"

	"github.com/userhub/user-api/internal/pkg/metrics"
)

const unmatchedRoute = "unmatched"

var (
	metricsOnce sync.Once
	metricsMW   echo.MiddlewareFunc
)

// Metrics records request count, latency and sizes through echoprometheus as
// user_api_http_*. The url label is the route template; requests the router
// could not match share the "unmatched" label so arbitrary paths cannot blow
// up label cardinality.
//
// The collectors live in the default registry, so every router built in the
// process shares one middleware instance.
func Metrics() echo.MiddlewareFunc {
	metricsOnce.Do(func() {
		metricsMW = echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace: metrics.Namespace,
			Subsystem: "http",
			LabelFuncs: map[string]echoprometheus.LabelValueFunc{
				"url":  routeLabel,
				"code": statusLabel,
			},
		})
	})
	return metricsMW
}

func routeLabel(c echo.Context, err error) string {
	if isRoutingError(err) || c.Path() == "" {
		return unmatchedRoute
	}
	return c.Path()
}

// statusLabel reports the status actually written. When the error has not
// been rendered yet, it derives the status the central error handler will
// write once the chain unwinds.
func statusLabel(c echo.Context, err error) string {
	status := c.Response().Status
	if err != nil && !c.Response().Committed {
		status = http.StatusInternalServerError
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
		}
	}
	return strconv.Itoa(status)
}

func isRoutingError(err error) bool {
	return errors.Is(err, echo.ErrNotFound) || errors.Is(err, echo.ErrMethodNotAllowed)
}
