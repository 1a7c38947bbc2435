package httpapi

import (
	"fmt"
	"net/http"

	"github.com/maxbat99/probax/internal/usecase"
)

func (h *Handler) ResolveLocation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResolveLocation")
	defer span.End()

	req := locationFromQuery(r)
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	resolved, found, err := h.locationService.Resolve(ctx, req.query())
	if err != nil {
		h.logger.WarnContext(ctx, "resolve location failed", "query", req.query().FreeText(), "error", err)
		writeError(ctx, w, err)
		return
	}
	if !found {
		writeError(ctx, w, fmt.Errorf("%w: could not resolve coordinates for %q", usecase.ErrNotFound, req.query().FreeText()))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, resolvedToDTO(resolved))
}

func (h *Handler) GazetteerStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GazetteerStatus")
	defer span.End()

	status := h.locationService.GazetteerStatus(ctx)
	writeSuccess(ctx, w, http.StatusOK, gazetteerStatusDTO{
		Loaded:         status.Loaded,
		StadiumsLoaded: status.Rows,
		Error:          status.Error,
	})
}
