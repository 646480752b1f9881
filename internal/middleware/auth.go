package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/vancomm/bstree/internal/config"
)

type CtxKey int

const (
	CtxClaims CtxKey = iota
)

// Auth lets safe methods through and requires a valid bearer token on
// every other request and on websocket upgrades, which may carry the token
// in the access_token query parameter instead. A nil verifier disables the
// check.
func Auth(log logrus.FieldLogger, verifier *config.JWT) Middleware {
	if verifier == nil {
		return nil
	}
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			upgrade := websocket.IsWebSocketUpgrade(r)
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				if !upgrade {
					h.ServeHTTP(w, r)
					return
				}
			}

			token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !found {
				token = ""
			}
			if token == "" && upgrade {
				token = r.URL.Query().Get("access_token")
			}
			if token == "" {
				w.Header().Set("WWW-Authenticate", "Bearer")
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			claims, err := verifier.Verify(token)
			if err != nil {
				log.WithError(err).Debug("rejected token")
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), CtxClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ClaimsFrom(ctx context.Context) (*jwt.RegisteredClaims, bool) {
	claims, ok := ctx.Value(CtxClaims).(*jwt.RegisteredClaims)
	return claims, ok
}
