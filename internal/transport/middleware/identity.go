package middleware

import (
	"net/http"

	"github.com/frahmantamala/naming-registry/internal"
	"github.com/frahmantamala/naming-registry/pkg/logger"
)

const networkIDHeader = "X-Network-ID"

// CallerIdentity lifts the caller's network identity from the request
// header into the context. The identity is already authenticated by the
// network layer in front of this service; handlers only need to know who
// is calling.
func CallerIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		networkID := r.Header.Get(networkIDHeader)

		ctx := r.Context()
		if networkID != "" {
			ctx = internal.ContextWithCaller(ctx, networkID)
			ctx = logger.With(ctx, "caller", networkID)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
