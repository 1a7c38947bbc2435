package httpapi

import (
	"net/http"

	"github.com/maxbat99/probax/internal/usecase"
)

func (h *Handler) SearchTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchTeams")
	defer span.End()

	req, err := h.parseSearch(r, usecase.DefaultTeamSearchLimit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teams, err := h.teamIndexService.Search(ctx, req.Query, req.Limit)
	if err != nil {
		h.logger.WarnContext(ctx, "search teams failed", "query", req.Query, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamListDTO{Items: teamsToDTO(teams)})
}

func (h *Handler) SuggestTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SuggestTeams")
	defer span.End()

	limit, err := queryInt(r, "limit", usecase.DefaultTeamSuggestLimit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, limitRequest{Limit: limit}); err != nil {
		writeError(ctx, w, err)
		return
	}

	teams, err := h.teamIndexService.Suggest(ctx, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "suggest teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamListDTO{Items: teamsToDTO(teams)})
}

func (h *Handler) RebuildTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RebuildTeams")
	defer span.End()

	result, err := h.teamIndexService.Rebuild(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "rebuild team index failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "team index rebuilt", "count", result.Count, "source", result.Source)
	writeSuccess(ctx, w, http.StatusOK, rebuildDTO{
		Count:       result.Count,
		Source:      result.Source,
		GeneratedAt: result.GeneratedAt,
	})
}
