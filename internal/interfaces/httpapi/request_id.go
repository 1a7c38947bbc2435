package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/maxbat99/probax/internal/platform/id"
)

const requestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestID keeps a valid inbound X-Request-ID or mints a new one, and
// echoes it on the response.
func RequestID(gen id.Generator, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if !id.Valid(requestID) {
			requestID = ""
			if gen != nil {
				if generated, err := gen.NewID(); err == nil {
					requestID = generated
				}
			}
		}
		if requestID == "" {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set(requestIDHeader, requestID)
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey{}).(string)
	return v
}
