package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"t20cli/internal/dataset"
	apierrors "t20cli/internal/errors"
	"t20cli/internal/exporter"
	"t20cli/internal/middleware"
	"t20cli/internal/services"
)

// grouped view kinds by route slug
var viewRoutes = map[string]services.ViewKind{
	"line-length":  services.ViewLineLength,
	"bowlers":      services.ViewBowler,
	"bowler-types": services.ViewBowlerType,
	"shots":        services.ViewShots,
	"ball-types":   services.ViewBallType,
	"feet":         services.ViewFeetMovement,
	"overs":        services.ViewOvers,
	"ball-in-over": services.ViewBallInOver,
}

// StatsHandler serves the batting analytics endpoints with RFC 7807
// error responses.
type StatsHandler struct {
	service       StatsServiceInterface
	logger        *slog.Logger
	errorHandler  *apierrors.ErrorHandler
	defaultWindow int
	ratePrecision int
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(service StatsServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, defaultWindow, ratePrecision int) *StatsHandler {
	return &StatsHandler{
		service:       service,
		logger:        logger.With(slog.String("component", "stats_handler")),
		errorHandler:  errorHandler,
		defaultWindow: defaultWindow,
		ratePrecision: ratePrecision,
	}
}

// Routes returns the stats routes
func (h *StatsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/batters", h.GetBatters)
	r.Get("/fixtures", h.GetFixtures)

	r.Route("/stats", func(r chi.Router) {
		r.Get("/summary", h.GetSummary)
		r.Get("/progression", h.GetProgression)
		r.Get("/dismissals", h.GetDismissals)
		r.Get("/wagon-wheel", h.GetWagonWheel)

		r.Route("/{view}", func(r chi.Router) {
			r.Use(h.ViewCtx)
			r.Get("/", h.GetGrouped)
		})
	})

	r.Get("/export/{format}", h.ExportReport)

	return r
}

// ViewCtx validates the grouped view slug
func (h *StatsHandler) ViewCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "view")
		if _, ok := viewRoutes[slug]; !ok {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("view", fmt.Sprintf("Unknown stats view: %s", slug)))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetBatters handles GET /api/batters
func (h *StatsHandler) GetBatters(w http.ResponseWriter, r *http.Request) {
	batters, err := h.service.Batters(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   batters,
		"count":  len(batters),
	})
}

// GetFixtures handles GET /api/fixtures
func (h *StatsHandler) GetFixtures(w http.ResponseWriter, r *http.Request) {
	fixtures, err := h.service.Fixtures(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   fixtures,
		"count":  len(fixtures),
	})
}

// GetSummary handles GET /api/stats/summary
func (h *StatsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	sel, err := bindSelection(r, true)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	view, err := h.service.Summary(r.Context(), sel)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.renderView(w, r, view)
}

// GetGrouped handles GET /api/stats/{view}
func (h *StatsHandler) GetGrouped(w http.ResponseWriter, r *http.Request) {
	sel, err := bindSelection(r, true)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	kind := viewRoutes[chi.URLParam(r, "view")]

	view, err := h.service.Grouped(r.Context(), sel, kind)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.renderView(w, r, view)
}

// GetProgression handles GET /api/stats/progression
func (h *StatsHandler) GetProgression(w http.ResponseWriter, r *http.Request) {
	sel, err := bindSelection(r, true)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	window, err := parseWindow(r, h.defaultWindow)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	view, err := h.service.Progression(r.Context(), sel, window)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.renderView(w, r, view)
}

// GetDismissals handles GET /api/stats/dismissals
func (h *StatsHandler) GetDismissals(w http.ResponseWriter, r *http.Request) {
	sel, err := bindSelection(r, true)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	view, err := h.service.Dismissals(r.Context(), sel)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.renderView(w, r, view)
}

// GetWagonWheel handles GET /api/stats/wagon-wheel
func (h *StatsHandler) GetWagonWheel(w http.ResponseWriter, r *http.Request) {
	sel, err := bindSelection(r, true)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	view, err := h.service.WagonWheel(r.Context(), sel)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.renderView(w, r, view)
}

// ExportReport handles GET /api/export/{format}, streaming the full
// batter report as an attachment.
func (h *StatsHandler) ExportReport(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if format != "xlsx" && format != "csv" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("format", fmt.Sprintf("Unsupported export format: %s", format)))
		return
	}

	sel, err := bindSelection(r, true)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	ctx := r.Context()

	summary, err := h.service.Summary(ctx, sel)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	var grouped []*services.GroupedView
	for _, kind := range []services.ViewKind{
		services.ViewLineLength, services.ViewBowler, services.ViewBowlerType,
		services.ViewShots, services.ViewBallType, services.ViewFeetMovement,
		services.ViewOvers, services.ViewBallInOver,
	} {
		view, err := h.service.Grouped(ctx, sel, kind)
		if err != nil {
			h.handleServiceError(w, r, err)
			return
		}
		grouped = append(grouped, view)
	}

	dismissals, err := h.service.Dismissals(ctx, sel)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "exporting batter report",
		slog.String("batter", sel.Batter),
		slog.String("format", format),
		slog.String("request_id", middleware.GetRequestID(ctx)),
	)

	if format == "csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sel.Batter+"_report.csv"))
		// CSV is flat, so the export carries the bowler-type view
		for _, view := range grouped {
			if view.View == services.ViewBowlerType {
				if err := exporter.StreamGroupedView(w, view, h.ratePrecision); err != nil {
					h.logger.ErrorContext(ctx, "csv export failed", slog.String("error", err.Error()))
				}
				return
			}
		}
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sel.Batter+"_report.xlsx"))

	report := exporter.Report{
		Summary:    summary,
		Grouped:    grouped,
		Dismissals: dismissals,
		Precision:  h.ratePrecision,
	}
	if err := exporter.Stream(w, report); err != nil {
		h.logger.ErrorContext(ctx, "workbook export failed", slog.String("error", err.Error()))
	}
}

// renderView renders a successful view payload
func (h *StatsHandler) renderView(w http.ResponseWriter, r *http.Request, view interface{}) {
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   view,
	})
}

// handleServiceError maps service errors to API responses. An empty
// filter result is not an error to the dashboard: it renders as a 200
// with an empty status so the frontend shows its "no data" notice.
func (h *StatsHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	switch {
	case errors.Is(err, services.ErrNoDeliveries):
		render.JSON(w, r, map[string]interface{}{
			"status":  "empty",
			"message": "No deliveries match this selection",
		})

	case errors.Is(err, services.ErrBatterUnknown):
		h.errorHandler.HandleError(w, r, apierrors.ErrBatterNotFound)

	case errors.Is(err, services.ErrInvalidWindow):
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("window", err.Error()))

	default:
		var dataErr *dataset.DataError
		if errors.As(err, &dataErr) {
			h.logger.ErrorContext(ctx, "dataset unavailable",
				slog.String("error", err.Error()),
				slog.String("file", dataErr.Path),
			)
			h.errorHandler.HandleError(w, r, apierrors.DatasetError(err))
			return
		}
		h.errorHandler.HandleError(w, r, err)
	}
}
