package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/noah-isme/therapy-admin-api/internal/apperror"
	"github.com/noah-isme/therapy-admin-api/internal/utils"
)

const (
	headerRateLimitLimit     = "X-RateLimit-Limit"
	headerRateLimitRemaining = "X-RateLimit-Remaining"
	headerRateLimitReset     = "X-RateLimit-Reset"
)

// RateLimit creates a fixed window limiter keyed by client IP. Counters live in process
// memory. X-RateLimit-Reset is reported as a unix timestamp.
func RateLimit(max int, window time.Duration) fiber.Handler {
	if max <= 0 {
		max = 2000
	}
	if window <= 0 {
		window = 15 * time.Minute
	}

	limit := limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return utils.SendError(c, apperror.RateLimited())
		},
	})

	return func(c *fiber.Ctx) error {
		err := limit(c)

		now := time.Now().Unix()
		if reset := c.GetRespHeader(headerRateLimitReset); reset != "" {
			if seconds, parseErr := strconv.ParseInt(reset, 10, 64); parseErr == nil {
				c.Set(headerRateLimitReset, strconv.FormatInt(now+seconds, 10))
			}
		} else if retry := c.GetRespHeader(fiber.HeaderRetryAfter); retry != "" {
			if seconds, parseErr := strconv.ParseInt(retry, 10, 64); parseErr == nil {
				c.Set(headerRateLimitLimit, strconv.Itoa(max))
				c.Set(headerRateLimitRemaining, "0")
				c.Set(headerRateLimitReset, strconv.FormatInt(now+seconds, 10))
			}
		}

		return err
	}
}
