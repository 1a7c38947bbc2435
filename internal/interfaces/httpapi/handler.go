package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/maxbat99/probax/internal/platform/logging"
	"github.com/maxbat99/probax/internal/usecase"
)

type Handler struct {
	locationService     *usecase.LocationService
	stadiumService      *usecase.StadiumService
	weatherService      *usecase.WeatherService
	teamIndexService    *usecase.TeamIndexService
	matchContextService *usecase.MatchContextService
	logger              *logging.Logger
	validator           *validator.Validate
}

func NewHandler(
	locationService *usecase.LocationService,
	stadiumService *usecase.StadiumService,
	weatherService *usecase.WeatherService,
	teamIndexService *usecase.TeamIndexService,
	matchContextService *usecase.MatchContextService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		locationService:     locationService,
		stadiumService:      stadiumService,
		weatherService:      weatherService,
		teamIndexService:    teamIndexService,
		matchContextService: matchContextService,
		logger:              logger,
		validator:           validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return v, nil
}

func queryFloat(r *http.Request, key string) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", usecase.ErrInvalidInput, key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", usecase.ErrInvalidInput, key)
	}
	return v, nil
}
