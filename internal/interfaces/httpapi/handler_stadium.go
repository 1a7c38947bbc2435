package httpapi

import (
	"net/http"
	"strings"

	"github.com/maxbat99/probax/internal/domain/weather"
	"github.com/maxbat99/probax/internal/usecase"
)

func (h *Handler) SearchStadiumsLive(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchStadiumsLive")
	defer span.End()

	req, err := h.parseSearch(r, usecase.DefaultStadiumLimit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.stadiumService.LiveSearch(ctx, req.Query, req.Limit)
	if err != nil {
		h.logger.WarnContext(ctx, "live stadium search failed", "query", req.Query, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, stadiumListDTO{Items: stadiumsToDTO(items)})
}

func (h *Handler) SearchStadiumsCached(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchStadiumsCached")
	defer span.End()

	req, err := h.parseSearch(r, usecase.DefaultStadiumLimit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.stadiumService.CachedSearch(ctx, req.Query, req.Limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "cached stadium search failed", "query", req.Query, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, stadiumListDTO{Items: stadiumsToDTO(items)})
}

func (h *Handler) WeatherByCoords(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.WeatherByCoords")
	defer span.End()

	var req coordsRequest
	var err error
	if req.Lat, err = queryFloat(r, "lat"); err != nil {
		writeError(ctx, w, err)
		return
	}
	if req.Lon, err = queryFloat(r, "lon"); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	forecast, err := h.weatherService.FetchHourly(ctx, req.Lat, req.Lon, weather.FrameUTC)
	if err != nil {
		h.logger.WarnContext(ctx, "weather by coords failed", "lat", req.Lat, "lon", req.Lon, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, coordsWeatherDTO{
		Coords:           coordsDTO{Lat: req.Lat, Lon: req.Lon},
		Timezone:         forecast.Timezone,
		UTCOffsetSeconds: forecast.UTCOffsetSeconds,
		Hourly:           hourlyToDTO(forecast.Hourly),
	})
}

func (h *Handler) parseSearch(r *http.Request, defaultLimit int) (searchRequest, error) {
	limit, err := queryInt(r, "limit", defaultLimit)
	if err != nil {
		return searchRequest{}, err
	}
	req := searchRequest{
		Query: strings.TrimSpace(r.URL.Query().Get("q")),
		Limit: limit,
	}
	if err := h.validateRequest(r.Context(), req); err != nil {
		return searchRequest{}, err
	}
	return req, nil
}
