package httpapi

import (
	"net/http"

	"github.com/maxbat99/probax/internal/platform/id"
	"github.com/maxbat99/probax/internal/platform/logging"
)

type RouterOptions struct {
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
	// Metrics is mounted at GET /metrics when non-nil.
	Metrics http.Handler
}

func NewRouter(handler *Handler, logger *logging.Logger, opts RouterOptions) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, opts)
	registerGeoRoutes(mux, handler)
	registerStadiumRoutes(mux, handler)
	registerWeatherRoutes(mux, handler)
	registerTeamRoutes(mux, handler)
	registerMatchRoutes(mux, handler)

	return RequestTracing(RequestID(id.NewRandomGenerator(), RequestLogging(logger, CORS(opts.CORSAllowedOrigins, recoverPanic(logger, mux)))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
