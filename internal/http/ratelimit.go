package http

import (
	"sync"

	"golang.org/x/time/rate"
)

// maxTrackedClients bounds the per-IP limiter map; when exceeded the map is
// reset rather than evicted entry by entry.
const maxTrackedClients = 10000

// ipLimiter keeps one token bucket per client address.
type ipLimiter struct {
	mu       sync.Mutex
	clients  map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func newIPLimiter(rps float64, burst int) *ipLimiter {
	return &ipLimiter{
		clients: make(map[string]*rate.Limiter),
		rps:     rate.Limit(rps),
		burst:   burst,
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.rps <= 0 {
		return true
	}
	if len(l.clients) >= maxTrackedClients {
		l.clients = make(map[string]*rate.Limiter)
	}

	lim, ok := l.clients[ip]
	if !ok {
		lim = rate.NewLimiter(l.rps, l.burst)
		l.clients[ip] = lim
	}
	return lim.Allow()
}

// setRate applies new limits; existing buckets are discarded so every client
// starts on the new budget.
func (l *ipLimiter) setRate(rps float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rps = rate.Limit(rps)
	l.burst = burst
	l.clients = make(map[string]*rate.Limiter)
}
