package http

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"events/metrics"
)

func countRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		if err != nil {
			// rendered here so the status below is the one sent; outer
			// middlewares still get err, the response is already committed
			c.Error(err)
		}

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}

		metrics.HTTPRequests.
			WithLabelValues(c.Request().Method, route, strconv.Itoa(c.Response().Status)).
			Inc()

		return err
	}
}
