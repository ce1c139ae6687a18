package middleware

import (
	"strconv"
	"time"

	"github.com/ahmetcoskunkizilkaya/island-formulator/internal/metrics"
	"github.com/gofiber/fiber/v2"
)

// Metrics records request counts and latency labelled by route pattern.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		metrics.ObserveRequest(c.Method(), c.Route().Path, strconv.Itoa(status), start)
		return err
	}
}
