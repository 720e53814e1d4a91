package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/saju-api/internal/calendar"
	"github.com/zapponejosh/saju-api/internal/config"
	"github.com/zapponejosh/saju-api/internal/dateadapter"
	"github.com/zapponejosh/saju-api/internal/logger"
	"github.com/zapponejosh/saju-api/internal/saju"
)

// maxBodyBytes caps chart request bodies.
const maxBodyBytes = 64 << 10

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	svc    *calendar.Service
	cfg    *config.Config
	logger *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(svc *calendar.Service, cfg *config.Config, logger *slog.Logger) *Handlers {
	return &Handlers{
		svc:    svc,
		cfg:    cfg,
		logger: logger,
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]any{
		"status":       "healthy",
		"date_backend": string(h.svc.Backend()),
		"mcp_enabled":  h.cfg.MCPEnabled,
	})
}

// CalculateSaju handles POST /api/v1/saju
func (h *Handlers) CalculateSaju(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in calendar.BirthInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		WriteBadRequest(w, r, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	chart, err := h.svc.Chart(ctx, in)
	if err != nil {
		h.writeServiceError(w, r, "chart calculation failed", err)
		return
	}

	logger.Info(ctx, "chart calculated",
		slog.String("pillars", chart.Result.Pillars.String()),
		slog.String("backend", chart.Birth.Backend),
	)
	WriteSuccess(w, r, chart)
}

// SolarToLunar handles GET /api/v1/lunar/{YYYY-MM-DD}
func (h *Handlers) SolarToLunar(w http.ResponseWriter, r *http.Request) {
	dateStr := chi.URLParam(r, "date")
	if dateStr == "" {
		WriteBadRequest(w, r, "Date parameter is required")
		return
	}

	conv, err := h.svc.SolarToLunar(r.Context(), dateStr)
	if err != nil {
		h.writeServiceError(w, r, "solar to lunar failed", err)
		return
	}

	WriteSuccess(w, r, conv)
}

// LunarToSolar handles GET /api/v1/solar/{YYYY-MM-DD}?leap=true
func (h *Handlers) LunarToSolar(w http.ResponseWriter, r *http.Request) {
	dateStr := chi.URLParam(r, "date")
	if dateStr == "" {
		WriteBadRequest(w, r, "Date parameter is required")
		return
	}

	leap := false
	if v := r.URL.Query().Get("leap"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			WriteBadRequest(w, r, fmt.Sprintf("Invalid leap flag: %s", v))
			return
		}
		leap = parsed
	}

	conv, err := h.svc.LunarToSolar(r.Context(), dateStr, leap)
	if err != nil {
		h.writeServiceError(w, r, "lunar to solar failed", err)
		return
	}

	WriteSuccess(w, r, conv)
}

// SolarTerms handles GET /api/v1/solar-terms/{year}?timezone=Area/City
func (h *Handlers) SolarTerms(w http.ResponseWriter, r *http.Request) {
	yearStr := chi.URLParam(r, "year")
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		WriteBadRequest(w, r, fmt.Sprintf("Invalid year: %s", yearStr))
		return
	}

	table, err := h.svc.SolarTerms(r.Context(), year, r.URL.Query().Get("timezone"))
	if err != nil {
		h.writeServiceError(w, r, "solar terms failed", err)
		return
	}

	WriteSuccess(w, r, table)
}

// writeServiceError maps calculation errors onto the response envelope.
// Client mistakes become 400, dates outside the tables 422, anything
// else 500.
func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	switch {
	case errors.Is(err, saju.ErrDateOutOfRange):
		WriteUnprocessable(w, r, err.Error(), "DATE_OUT_OF_RANGE")
	case errors.Is(err, saju.ErrInvalidGender):
		WriteError(w, r, http.StatusBadRequest, err.Error(), "INVALID_GENDER")
	case errors.Is(err, saju.ErrInvalidLunarDate):
		WriteError(w, r, http.StatusBadRequest, err.Error(), "INVALID_LUNAR_DATE")
	case errors.Is(err, dateadapter.ErrInvalidZone):
		WriteError(w, r, http.StatusBadRequest, err.Error(), "INVALID_TIMEZONE")
	case errors.Is(err, calendar.ErrInvalidInput):
		WriteBadRequest(w, r, err.Error())
	default:
		logger.Error(r.Context(), msg, err, slog.String("path", r.URL.Path))
		WriteInternalError(w, r, "Calculation failed")
	}
}
