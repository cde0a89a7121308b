package security

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/redis/go-redis/v9"
)

type RateLimiter struct {
	redis  *redis.Client
	perMin int64
}

func NewRateLimiter(redisClient *redis.Client, perMin int) *RateLimiter {
	return &RateLimiter{redis: redisClient, perMin: int64(perMin)}
}

// PerClientLimit caps requests per client per minute. Authenticated clients
// are keyed by session id, anonymous ones by IP. When redis is unavailable
// the request is allowed through.
func (r *RateLimiter) PerClientLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.RealIP()
			if sid, ok := c.Get("session_id").(string); ok && sid != "" {
				id = "session:" + sid
			}
			key := fmt.Sprintf("ratelimit:%s", id)

			count, err := r.redis.Incr(context.Background(), key).Result()
			if err == nil {
				if count == 1 {
					r.redis.Expire(context.Background(), key, time.Minute)
				}
				if count > r.perMin {
					return c.JSON(429, map[string]string{
						"message": "Too many requests. Please try again later.",
					})
				}
			}

			return next(c)
		}
	}
}
