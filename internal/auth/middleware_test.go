package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/haifazahra-ui/pi-sosmed/internal/auth"
	"github.com/haifazahra-ui/pi-sosmed/internal/logger"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-testing"

func protectedRouter(signer *auth.TokenSigner) chi.Router {
	router := chi.NewRouter()
	router.Use(auth.Middleware(signer, logger.Discard()))
	router.Get("/student", func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		json.NewEncoder(w).Encode(claims)
	})
	return router
}

func TestMiddleware(t *testing.T) {
	signer := auth.NewTokenSigner(testSecret, time.Hour)
	router := protectedRouter(signer)

	validToken, err := signer.Sign(7, "alice")
	require.NoError(t, err)

	wrongSigner := auth.NewTokenSigner("other-secret", time.Hour)
	foreignToken, err := wrongSigner.Sign(7, "alice")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"NoHeader", "", http.StatusUnauthorized},
		{"SchemeOnly", "Bearer", http.StatusUnauthorized},
		{"EmptyToken", "Bearer ", http.StatusForbidden},
		{"NoSpace", "Token", http.StatusUnauthorized},
		{"Malformed", "Bearer garbage", http.StatusForbidden},
		{"WrongSecret", "Bearer " + foreignToken, http.StatusForbidden},
		{"Valid", "Bearer " + validToken, http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/student", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tc.want, w.Code)
		})
	}

	t.Run("ClaimsAttached", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/student", nil)
		req.Header.Set("Authorization", "Bearer "+validToken)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var claims map[string]any
		require.NoError(t, json.NewDecoder(w.Body).Decode(&claims))
		assert.Equal(t, float64(7), claims["userId"])
		assert.Equal(t, "alice", claims["username"])
		assert.Contains(t, claims, "exp")
	})

	t.Run("UnauthorizedBodyHasMessage", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/student", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.JSONEq(t, `{"message":"Unauthorized"}`, w.Body.String())
	})
}
