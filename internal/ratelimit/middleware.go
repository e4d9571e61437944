package ratelimit

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/helpme/helpdesk/pkg/util"
)

// GeneralMiddleware applies the per-IP budget for all traffic. Every
// request consumes budget, matching the general API guard.
func GeneralMiddleware(limiter Limiter, limit int, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision, err := limiter.Allow(c.UserContext(), "general:"+c.IP(), limit)
		if err != nil {
			// the guard never takes the API down with it
			logger.Warn("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}
		if !decision.Allowed {
			return tooManyRequests(decision)
		}
		return c.Next()
	}
}

// WriteMiddleware applies the per-IP budget for mutating requests.
// Responses that fail (status >= 400) are excluded from the count.
func WriteMiddleware(limiter Limiter, limit int, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
		default:
			return c.Next()
		}

		key := "write:" + c.IP()
		decision, err := limiter.Peek(c.UserContext(), key, limit)
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}
		if !decision.Allowed {
			return tooManyRequests(decision)
		}

		if err := c.Next(); err != nil {
			return err
		}
		if c.Response().StatusCode() < fiber.StatusBadRequest {
			if err := limiter.Hit(c.UserContext(), key); err != nil {
				logger.Warn("rate limiter unavailable", zap.Error(err))
			}
		}
		return nil
	}
}

func tooManyRequests(decision Decision) error {
	retryAfter := time.Until(decision.ResetAt).Round(time.Second)
	if retryAfter < 0 {
		retryAfter = 0
	}
	return apperrors.NewRateLimited(fmt.Sprintf("limite de requisições excedido, tente novamente em %s", retryAfter))
}
