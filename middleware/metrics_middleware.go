package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"nutricare/backend/monitoring"
)

// Metrics records a request counter and a duration histogram per route.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := c.Response().StatusCode()
		path := c.Route().Path // Registered route pattern, not the raw URL

		monitoring.RequestsTotal.WithLabelValues(
			c.Method(),
			path,
			strconv.Itoa(status),
		).Inc()

		monitoring.RequestDuration.WithLabelValues(
			c.Method(),
			path,
		).Observe(duration)

		return err
	}
}
