// Package ratelimit provides per-route fixed-window rate limiting keyed by
// client address. Counters live in process memory; there is no cross-process
// coordination, and windows are anchored at the first request in the window,
// so bursts at window edges are possible.
package ratelimit

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	limiter "github.com/ulule/limiter/v3"
	mhttp "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// DefaultRates apply to every route that has no stricter override.
var DefaultRates = []string{"100-M", "1000-H"}

// Limiter builds rate limiting middleware for individual routes.
type Limiter struct {
	log *logrus.Logger
}

// New initializes a limiter factory.
func New(log *logrus.Logger) *Limiter {
	return &Limiter{log: log}
}

// Limit returns middleware enforcing each formatted rate ("5-M", "1000-H").
// Every call creates dedicated in-memory stores, so counters are scoped to
// the wrapped route and keyed by client IP within it.
func (l *Limiter) Limit(rates ...string) (func(http.Handler) http.Handler, error) {
	middlewares := make([]*mhttp.Middleware, 0, len(rates))
	for _, formatted := range rates {
		rate, err := limiter.NewRateFromFormatted(formatted)
		if err != nil {
			return nil, fmt.Errorf("invalid rate %q: %w", formatted, err)
		}
		instance := limiter.New(memory.NewStore(), rate, limiter.WithTrustForwardHeader(true))
		middlewares = append(middlewares, mhttp.NewMiddleware(instance,
			mhttp.WithLimitReachedHandler(l.limitReached),
			mhttp.WithErrorHandler(l.limiterError),
		))
	}

	return func(next http.Handler) http.Handler {
		h := next
		for i := len(middlewares) - 1; i >= 0; i-- {
			h = middlewares[i].Handler(h)
		}
		return h
	}, nil
}

// MustLimit is Limit for hardcoded rates known to parse.
func (l *Limiter) MustLimit(rates ...string) func(http.Handler) http.Handler {
	mw, err := l.Limit(rates...)
	if err != nil {
		panic(err)
	}
	return mw
}

func (l *Limiter) limitReached(w http.ResponseWriter, r *http.Request) {
	l.log.Warnf("Rate limit exceeded for %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", "60")
	w.WriteHeader(http.StatusTooManyRequests)
	json.NewEncoder(w).Encode(map[string]string{"error": "rate limit exceeded"})
}

func (l *Limiter) limiterError(w http.ResponseWriter, r *http.Request, err error) {
	l.log.Errorf("Rate limiter failure: %v", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{"error": "internal server error"})
}
