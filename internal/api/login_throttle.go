package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// loginThrottle counts failed sign-ins per client address within a fixed
// window. It never locks accounts; it only answers whether an address has
// failed too often recently to get another try.
type loginThrottle struct {
	mu      sync.Mutex
	windows map[string]failureWindow
}

type failureWindow struct {
	start    time.Time
	failures int
}

func newLoginThrottle() *loginThrottle {
	return &loginThrottle{windows: make(map[string]failureWindow)}
}

func (throttle *loginThrottle) blocked(key string, now time.Time, limit int, window time.Duration) bool {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()

	current, ok := throttle.windows[key]
	if !ok || now.Sub(current.start) >= window {
		return false
	}
	return current.failures >= limit
}

func (throttle *loginThrottle) recordFailure(key string, now time.Time, window time.Duration) {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()

	current, ok := throttle.windows[key]
	if !ok || now.Sub(current.start) >= window {
		throttle.windows[key] = failureWindow{start: now, failures: 1}
		return
	}
	current.failures++
	throttle.windows[key] = current
}

func (throttle *loginThrottle) clear(key string) {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()
	delete(throttle.windows, key)
}

func clientThrottleKey(c *fiber.Ctx) string {
	if key := strings.TrimSpace(c.IP()); key != "" {
		return key
	}
	return "unknown"
}
