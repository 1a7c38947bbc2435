package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, opts RouterOptions) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if opts.Metrics != nil {
		mux.Handle("GET /metrics", opts.Metrics)
	}
	if !opts.SwaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerGeoRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/geo/resolve", handler.ResolveLocation)
	mux.HandleFunc("GET /v1/geo/status", handler.GazetteerStatus)
}

func registerStadiumRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/stadiums/search_live", handler.SearchStadiumsLive)
	mux.HandleFunc("GET /v1/stadiums/search_cached", handler.SearchStadiumsCached)
	mux.HandleFunc("GET /v1/stadiums/weather_by_coords", handler.WeatherByCoords)
}

func registerWeatherRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/weather/global", handler.WeatherGlobal)
}

func registerTeamRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams/search", handler.SearchTeams)
	mux.HandleFunc("GET /v1/teams/suggest", handler.SuggestTeams)
	mux.HandleFunc("POST /v1/teams/rebuild", handler.RebuildTeams)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/match/predict", handler.PredictMatch)
}
