package statshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"kpm/internal/domain/stats"
	"kpm/internal/transport/http/api"
	"kpm/internal/transport/http/middleware"
	"kpm/internal/transport/http/shared"
)

type Handler struct {
	Service *stats.Service
}

func NewHandler(service *stats.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/stats", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/rankings", h.handleRankings)
		r.Get("/rankings/export", h.handleRankingsPDF)
		r.Get("/overall", h.handleOverall)
		r.Get("/roles", h.handleRoles)
		r.Get("/top-performers", h.handleTopPerformers)
		r.Get("/bottom-performers", h.handleBottomPerformers)
	})
}

func parseFilter(r *http.Request) stats.Filter {
	month, year := shared.ParsePeriod(r)
	return stats.Filter{
		Month:              month,
		Year:               year,
		Departments:        shared.ParseList(r, "departments"),
		ExcludeDepartments: shared.ParseList(r, "excludeDepartments"),
		Roles:              shared.ParseList(r, "roles"),
		ExcludeRoles:       shared.ParseList(r, "excludeRoles"),
	}
}

func (h *Handler) handleRankings(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 20, 100)
	rankings, err := h.Service.Rankings(r.Context(), parseFilter(r), page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "rankings_failed", "failed to compute rankings", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, rankings, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRankingsPDF(w http.ResponseWriter, r *http.Request) {
	content, err := h.Service.RankingsPDF(r.Context(), parseFilter(r))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to render rankings report", middleware.GetRequestID(r.Context()))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="kpi-rankings.pdf"`)
	_, _ = w.Write(content)
}

func (h *Handler) handleOverall(w http.ResponseWriter, r *http.Request) {
	filter := parseFilter(r)
	overall, err := h.Service.Overall(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "stats_failed", "failed to compute statistics", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, stats.ShapeOverall(overall, filter), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.Service.Roles(r.Context(), parseFilter(r))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "stats_failed", "failed to compute role statistics", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, roles, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleTopPerformers(w http.ResponseWriter, r *http.Request) {
	cohort, err := h.Service.TopPerformers(r.Context(), parseFilter(r))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "stats_failed", "failed to compute top performers", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, cohort, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleBottomPerformers(w http.ResponseWriter, r *http.Request) {
	cohort, err := h.Service.BottomPerformers(r.Context(), parseFilter(r))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "stats_failed", "failed to compute bottom performers", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, cohort, middleware.GetRequestID(r.Context()))
}
