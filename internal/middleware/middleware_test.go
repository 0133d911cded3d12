package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kmandell/mechanic-shop/internal/auth"
	"github.com/kmandell/mechanic-shop/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFinder struct {
	customers map[int64]*models.Customer
}

func (f *stubFinder) FindCustomerByID(id int64) (*models.Customer, error) {
	customer, ok := f.customers[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return customer, nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestRequireAuth(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	finder := &stubFinder{customers: map[int64]*models.Customer{
		7: {ID: 7, Email: "jane@example.com"},
	}}
	guard := RequireAuth(tokens, finder, testLogger())

	newHandler := func(called *bool) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*called = true
			customer, ok := CustomerFromContext(r.Context())
			require.True(t, ok)
			assert.Equal(t, int64(7), customer.ID)
			w.WriteHeader(http.StatusOK)
		})
	}

	serve := func(authorization string) (*httptest.ResponseRecorder, bool) {
		var called bool
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		rec := httptest.NewRecorder()
		guard(newHandler(&called)).ServeHTTP(rec, req)
		return rec, called
	}

	t.Run("passes through a valid token", func(t *testing.T) {
		token, err := tokens.Issue(7, "jane@example.com")
		require.NoError(t, err)

		rec, called := serve("Bearer " + token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, called)
	})

	t.Run("rejects a missing header", func(t *testing.T) {
		rec, called := serve("")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"token is missing"}`, rec.Body.String())
		assert.False(t, called)
	})

	t.Run("rejects a non-bearer header", func(t *testing.T) {
		rec, called := serve("Token abcdef")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"invalid token format"}`, rec.Body.String())
		assert.False(t, called)
	})

	t.Run("rejects a malformed token", func(t *testing.T) {
		rec, called := serve("Bearer not-a-token")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"token is invalid or expired"}`, rec.Body.String())
		assert.False(t, called)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		expired := auth.NewTokenService("test-secret", -time.Minute)
		token, err := expired.Issue(7, "jane@example.com")
		require.NoError(t, err)

		rec, called := serve("Bearer " + token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"token is invalid or expired"}`, rec.Body.String())
		assert.False(t, called)
	})

	t.Run("rejects a subject that no longer exists", func(t *testing.T) {
		token, err := tokens.Issue(99, "gone@example.com")
		require.NoError(t, err)

		rec, called := serve("Bearer " + token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
	})
}

func TestCustomerFromContextMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := CustomerFromContext(req.Context())
	assert.False(t, ok)
}

func TestRecover(t *testing.T) {
	h := Recover(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestChainOrder(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), tag("outer"), tag("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote address",
			remoteAddr: "192.0.2.10:4321",
			want:       "192.0.2.10",
		},
		{
			name:       "x-forwarded-for takes the first hop",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1"},
			want:       "203.0.113.5",
		},
		{
			name:       "x-real-ip",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			want:       "203.0.113.9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIP(req))
		})
	}
}
