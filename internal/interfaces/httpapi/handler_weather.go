package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/maxbat99/probax/internal/usecase"
)

func (h *Handler) WeatherGlobal(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.WeatherGlobal")
	defer span.End()

	req := weatherGlobalRequest{
		locationRequest: locationFromQuery(r),
		KickoffISO:      strings.TrimSpace(r.URL.Query().Get("kickoff_iso")),
		TZMode:          strings.ToLower(strings.TrimSpace(r.URL.Query().Get("tz_mode"))),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	mode, err := usecase.ParseTZMode(req.TZMode)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	query := req.query()
	resolved, found, err := h.locationService.Resolve(ctx, query)
	if err != nil {
		h.logger.WarnContext(ctx, "weather location lookup failed", "query", query.FreeText(), "error", err)
		writeError(ctx, w, err)
		return
	}
	if !found {
		writeError(ctx, w, fmt.Errorf("%w: could not resolve coordinates from stadium, team, city or country", usecase.ErrInvalidInput))
		return
	}

	kw, err := h.weatherService.KickoffWeather(ctx, resolved.Lat, resolved.Lon, req.KickoffISO, mode)
	if err != nil {
		h.logger.WarnContext(ctx, "kickoff weather failed", "lat", resolved.Lat, "lon", resolved.Lon, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weatherGlobalDTO{
		Query: weatherQueryDTO{
			Stadium:       req.Stadium,
			Team:          req.Team,
			City:          req.City,
			Country:       req.Country,
			KickoffISOUTC: req.KickoffISO,
			TZMode:        string(mode),
		},
		Coords:  resolvedToDTO(resolved),
		Results: kickoffWeatherToDTO(kw),
	})
}
