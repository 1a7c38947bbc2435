package httpapi

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/maxbat99/probax/internal/domain/location"
	"github.com/maxbat99/probax/internal/domain/prediction"
	"github.com/maxbat99/probax/internal/usecase"
)

const maxPredictBodyBytes = 64 << 10

func (h *Handler) PredictMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PredictMatch")
	defer span.End()

	var req predictRequest
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxPredictBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.matchContextService.Build(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "predict match failed", "home", req.Home, "away", req.Away, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchContextToDTO(result))
}

// toInput falls back to the home side as the venue hint when the caller
// gave no location at all.
func (req predictRequest) toInput() (usecase.MatchContextInput, error) {
	mode, err := usecase.ParseTZMode(strings.ToLower(strings.TrimSpace(req.TZMode)))
	if err != nil {
		return usecase.MatchContextInput{}, err
	}

	query := location.Query{
		Stadium: strings.TrimSpace(req.Stadium),
		Team:    strings.TrimSpace(req.Team),
		City:    strings.TrimSpace(req.City),
		Country: strings.TrimSpace(req.Country),
	}
	if query.IsEmpty() {
		query.Team = strings.TrimSpace(req.Home)
	}

	input := usecase.MatchContextInput{
		Home:     req.Home,
		Away:     req.Away,
		Location: query,
		Kickoff:  strings.TrimSpace(req.KickoffISO),
		TZMode:   mode,
	}

	if len(req.Features) > 0 {
		features := prediction.DefaultFeatures()
		names := make([]string, 0, len(req.Features))
		for name := range req.Features {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if !features.Set(prediction.Feature(name), req.Features[name]) {
				return usecase.MatchContextInput{}, fmt.Errorf("%w: unknown feature %q", usecase.ErrInvalidInput, name)
			}
		}
		input.Features = &features
	}

	return input, nil
}
