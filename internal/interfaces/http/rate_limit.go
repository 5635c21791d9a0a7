package http

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
)

type ipLimiter struct {
	limiter  *rate.Limiter
	mu       sync.Mutex
	lastSeen time.Time
}

// RateLimiter limita peticiones por IP con token bucket (rps sostenido, burst de ráfaga).
type RateLimiter struct {
	rps      rate.Limit
	burst    int
	limiters sync.Map // ip -> *ipLimiter
	idleTTL  time.Duration
}

// NewRateLimiter construye el limitador.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{rps: rate.Limit(rps), burst: burst, idleTTL: 10 * time.Minute}
}

// Handler middleware de Fiber; responde 429 cuando la IP agota su cupo.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now()
		val, _ := rl.limiters.LoadOrStore(c.IP(), &ipLimiter{limiter: rate.NewLimiter(rl.rps, rl.burst), lastSeen: now})
		l := val.(*ipLimiter)
		l.mu.Lock()
		l.lastSeen = now
		l.mu.Unlock()

		if !l.limiter.AllowN(now, 1) {
			c.Set(fiber.HeaderRetryAfter, "1")
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "demasiadas solicitudes, intente más tarde"})
		}
		return c.Next()
	}
}

// Sweep elimina limitadores de IPs inactivas. Se invoca periódicamente desde Run.
func (rl *RateLimiter) Sweep(now time.Time) {
	rl.limiters.Range(func(key, value any) bool {
		l := value.(*ipLimiter)
		l.mu.Lock()
		idle := now.Sub(l.lastSeen) > rl.idleTTL
		l.mu.Unlock()
		if idle {
			rl.limiters.Delete(key)
		}
		return true
	})
}

// Run barre limitadores inactivos hasta que stop se cierre.
func (rl *RateLimiter) Run(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			rl.Sweep(now)
		}
	}
}
