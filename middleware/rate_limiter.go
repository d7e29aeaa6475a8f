package middleware

import (
	"sync"
	"time"

	"campaignmanager/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// RateLimiter allows requests per duration for each client IP, with bursts
// up to requests. Idle clients are forgotten after ten minutes.
func RateLimiter(requests int, duration time.Duration) fiber.Handler {
	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var (
		clients   = make(map[string]*client)
		mu        sync.Mutex
		lastSweep = time.Now()
	)

	return func(c *fiber.Ctx) error {
		ip := c.IP()
		now := time.Now()

		mu.Lock()
		// Sweep idle clients every 5 minutes
		if now.Sub(lastSweep) > 5*time.Minute {
			for key, cl := range clients {
				if now.Sub(cl.lastSeen) > 10*time.Minute {
					delete(clients, key)
				}
			}
			lastSweep = now
		}

		cl, exists := clients[ip]
		if !exists {
			// New limiter: requests per duration
			limiter := rate.NewLimiter(rate.Every(duration/time.Duration(requests)), requests)
			cl = &client{limiter: limiter}
			clients[ip] = cl
		}
		cl.lastSeen = now
		mu.Unlock()

		if !cl.limiter.Allow() {
			return utils.NewAppError(fiber.StatusTooManyRequests, "rate_limited",
				"Rate limit exceeded. Please try again later.", nil)
		}

		return c.Next()
	}
}
