package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/maxbat99/probax/internal/platform/upstream"
	"github.com/maxbat99/probax/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "probax"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	writeErrorEnvelope(ctx, w, mapError(ctx, err), err.Error())
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	writeErrorEnvelope(ctx, w, mappedError{
		HTTPStatus: http.StatusInternalServerError,
		Reason:     "internalError",
		Status:     "INTERNAL",
	}, "internal server error")
}

func writeErrorEnvelope(ctx context.Context, w http.ResponseWriter, mapped mappedError, message string) {
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors:  []googleErrorItem{{Domain: errorDomain, Reason: mapped.Reason, Message: message}},
		},
	})
}

// dependencyReasons names the failing upstream in error responses.
var dependencyReasons = []struct {
	sentinel error
	reason   string
}{
	{usecase.ErrGeocoderUnavailable, "geocoderUnavailable"},
	{usecase.ErrKnowledgeGraphUnavailable, "knowledgeGraphUnavailable"},
	{usecase.ErrForecastUnavailable, "forecastUnavailable"},
	{usecase.ErrTeamDirectoryUnavailable, "teamDirectoryUnavailable"},
}

func mapError(ctx context.Context, err error) mappedError {
	ctx, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mapDependencyError(ctx, err)
	default:
		return mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}
	}
}

// mapDependencyError picks the status from how the upstream call failed:
// 503 when it was refused locally by the breaker or limiter, 504 on a
// timeout, 502 for anything the provider answered or dropped.
func mapDependencyError(_ context.Context, err error) mappedError {
	reason := "dependencyUnavailable"
	for _, candidate := range dependencyReasons {
		if errors.Is(err, candidate.sentinel) {
			reason = candidate.reason
			break
		}
	}

	switch {
	case upstream.IsRejected(err):
		return mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: reason, Status: "UNAVAILABLE"}
	case isTimeout(err):
		return mappedError{HTTPStatus: http.StatusGatewayTimeout, Reason: reason, Status: "DEADLINE_EXCEEDED"}
	default:
		return mappedError{HTTPStatus: http.StatusBadGateway, Reason: reason, Status: "UNAVAILABLE"}
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
