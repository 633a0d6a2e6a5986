package network

import (
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// limited waits on a token bucket per host before each request.
type limited struct {
	next     http.RoundTripper
	rps      float64
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func newLimited(next http.RoundTripper, rps float64) *limited {
	return &limited{
		next:     next,
		rps:      rps,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (l *limited) limiter(host string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[host]
	if !ok {
		burst := max(1, int(l.rps))
		limiter = rate.NewLimiter(rate.Limit(l.rps), burst)
		l.limiters[host] = limiter
	}
	return limiter
}

func (l *limited) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := l.limiter(req.URL.Host).Wait(req.Context()); err != nil {
		return nil, err
	}
	return l.next.RoundTrip(req)
}
