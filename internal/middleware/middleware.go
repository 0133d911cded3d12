// Package middleware provides request-level guards composed around handler
// invocation.
package middleware

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/kmandell/mechanic-shop/internal/auth"
	"github.com/kmandell/mechanic-shop/internal/models"
	"github.com/sirupsen/logrus"
)

// Middleware wraps an http.Handler with additional functionality.
type Middleware func(http.Handler) http.Handler

// Chain chains multiple middlewares together.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

type contextKey string

const customerKey contextKey = "customer"

// CustomerFinder resolves a token subject to a stored customer.
type CustomerFinder interface {
	FindCustomerByID(id int64) (*models.Customer, error)
}

// RequireAuth gates a handler behind a valid bearer token. It extracts the
// credential from the Authorization header, validates it, resolves the
// subject in the credential store and injects the customer into the request
// context. The wrapped handler never runs on a rejected request.
func RequireAuth(tokens *auth.TokenService, store CustomerFinder, log *logrus.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeUnauthorized(w, "token is missing")
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				writeUnauthorized(w, "invalid token format")
				return
			}

			customerID, err := tokens.Validate(parts[1])
			if err != nil {
				log.Warnf("Rejected token from %s: %v", ClientIP(r), err)
				writeUnauthorized(w, "token is invalid or expired")
				return
			}

			customer, err := store.FindCustomerByID(customerID)
			if err != nil {
				// Token subject no longer exists; same generic rejection.
				writeUnauthorized(w, "token is invalid or expired")
				return
			}

			ctx := context.WithValue(r.Context(), customerKey, customer)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CustomerFromContext retrieves the authenticated customer from context.
func CustomerFromContext(ctx context.Context) (*models.Customer, bool) {
	customer, ok := ctx.Value(customerKey).(*models.Customer)
	return customer, ok
}

// RequestLogger logs each completed request with status and duration.
func RequestLogger(log *logrus.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			entry := log.WithFields(logrus.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      wrapped.statusCode,
				"duration_ms": time.Since(start).Milliseconds(),
				"client_ip":   ClientIP(r),
			})
			switch {
			case wrapped.statusCode >= 500:
				entry.Error("request completed with error")
			case wrapped.statusCode >= 400:
				entry.Warn("request completed with client error")
			default:
				entry.Info("request completed")
			}
		})
	}
}

// Recover recovers from handler panics and returns a 500 error.
func Recover(log *logrus.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Errorf("Panic recovered on %s %s: %v", r.Method, r.URL.Path, err)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{"error": "internal server error"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP extracts the client address from the request.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
