package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vancomm/bstree/internal/config"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	if claims, ok := ClaimsFrom(r.Context()); ok {
		w.Header().Set("X-Subject", claims.Subject)
	}
	w.WriteHeader(http.StatusNoContent)
}

func TestWrapOrder(t *testing.T) {
	var calls []string
	tag := func(name string) Middleware {
		return func(h http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls = append(calls, name)
				h.ServeHTTP(w, r)
			})
		}
	}

	h := Wrap(http.HandlerFunc(okHandler), tag("inner"), nil, tag("outer"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"outer", "inner"}, calls)
}

func TestLogging(t *testing.T) {
	log, hook := test.NewNullLogger()

	h := Wrap(http.HandlerFunc(okHandler), Logging(log))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/tree/keys/F", nil))

	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	assert.Equal(t, "handled request", entry.Message)
	assert.Equal(t, http.StatusNoContent, entry.Data["statusCode"])
	assert.Equal(t, "/tree/keys/F", entry.Data["uri"])
}

func TestCors(t *testing.T) {
	h := Wrap(http.HandlerFunc(okHandler), Cors([]string{"https://a.example"}))

	r := httptest.NewRequest(http.MethodOptions, "/tree/keys/F", nil)
	r.Header.Set("Origin", "https://a.example")
	r.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, "https://a.example", w.Header().Get("Access-Control-Allow-Origin"))

	r = httptest.NewRequest(http.MethodGet, "/tree/keys/F", nil)
	r.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAuth(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.RegisteredClaims{
		Subject:   "writer",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(key)
	require.NoError(t, err)

	log := logrus.New()
	h := Wrap(http.HandlerFunc(okHandler), Auth(log, config.NewJWTWithKey(&key.PublicKey)))

	testCases := []struct {
		name   string
		method string
		target string
		header map[string]string
		status int
	}{
		{"read without token", http.MethodGet, "/tree/keys/F", nil, http.StatusNoContent},
		{"write without token", http.MethodDelete, "/tree/keys/F", nil, http.StatusUnauthorized},
		{"write with basic auth", http.MethodDelete, "/tree/keys/F",
			map[string]string{"Authorization": "Basic " + token}, http.StatusUnauthorized},
		{"write with bad token", http.MethodPut, "/tree/keys/F",
			map[string]string{"Authorization": "Bearer nope"}, http.StatusUnauthorized},
		{"write with token", http.MethodPut, "/tree/keys/F",
			map[string]string{"Authorization": "Bearer " + token}, http.StatusNoContent},
		{"upgrade without token", http.MethodGet, "/tree/connect",
			map[string]string{"Connection": "Upgrade", "Upgrade": "websocket"}, http.StatusUnauthorized},
		{"upgrade with query token", http.MethodGet, "/tree/connect?access_token=" + token,
			map[string]string{"Connection": "Upgrade", "Upgrade": "websocket"}, http.StatusNoContent},
	}
	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			r := httptest.NewRequest(test.method, test.target, nil)
			for k, v := range test.header {
				r.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)
			assert.Equal(t, test.status, w.Code)
			if test.status == http.StatusNoContent && test.method != http.MethodGet {
				assert.Equal(t, "writer", w.Header().Get("X-Subject"))
			}
		})
	}

	assert.Nil(t, Auth(log, nil))
}
