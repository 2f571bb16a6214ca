package httpapi

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/jryan2014/car-audio-events/internal/errs"
)

// requireBearer rejects requests whose Authorization header does not
// carry the configured token. It runs before the handler, so a rejected
// request has no side effects.
func requireBearer(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			supplied, ok := bearerToken(r)
			if !ok {
				fail(r.Context(), w, errs.WithKind(errors.New("missing bearer token"), errs.KindAuth))
				return
			}
			if subtle.ConstantTimeCompare([]byte(supplied), []byte(token)) != 1 {
				fail(r.Context(), w, errs.WithKind(errors.New("invalid authentication credentials"), errs.KindAuth))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", false
	}
	return token, true
}
