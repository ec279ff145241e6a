package entryhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"kpm/internal/domain/entry"
	"kpm/internal/domain/template"
	"kpm/internal/platform/metrics"
	"kpm/internal/transport/http/api"
	"kpm/internal/transport/http/middleware"
	"kpm/internal/transport/http/shared"
)

type Handler struct {
	Service *entry.Service
	Metrics *metrics.Collector
}

func NewHandler(service *entry.Service, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/entries", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/status-summary", h.handleStatusSummary)
		r.Patch("/status", h.handleBulkStatus)
		r.Get("/{entryID}", h.handleGet)
		r.Put("/{entryID}", h.handleUpdate)
		r.Delete("/{entryID}", h.handleDelete)
	})
}

type entryPayload struct {
	Month      int                 `json:"month"`
	Year       int                 `json:"year"`
	TemplateID string              `json:"templateId"`
	KpiRef     entry.KpiRef        `json:"kpiRef"`
	CreatedFor string              `json:"createdFor"`
	Status     string              `json:"status"`
	Values     []template.RawValue `json:"values"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 20, 100)
	month, year := shared.ParsePeriod(r)
	filter := entry.Filter{
		Month:      month,
		Year:       year,
		TemplateID: r.URL.Query().Get("templateId"),
		CreatedFor: r.URL.Query().Get("createdFor"),
		Status:     r.URL.Query().Get("status"),
	}

	entries, total, err := h.Service.List(r.Context(), filter, page.Limit, page.Offset)
	if errors.Is(err, entry.ErrInvalidEntry) {
		api.Fail(w, http.StatusBadRequest, "invalid_filter", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "entry_list_failed", "failed to list entries", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"entries": entries, "total": total}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload entryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("templateId", payload.TemplateID, "template id is required")
	v.Required("createdFor", payload.CreatedFor, "createdFor is required")
	v.Enum("status", payload.Status, entry.Statuses, "must be one of created, initiated, generated")
	v.Period(payload.Month, payload.Year)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	created, err := h.Service.Create(r.Context(), entry.CreateParams{
		Month:      payload.Month,
		Year:       payload.Year,
		TemplateID: payload.TemplateID,
		KpiRef:     payload.KpiRef,
		CreatedFor: payload.CreatedFor,
		CreatedBy:  user.UserID,
		Status:     payload.Status,
		Values:     payload.Values,
	})
	if err != nil {
		h.failEntry(w, r, err, "entry_create_failed", "failed to create entry")
		return
	}

	if h.Metrics != nil {
		h.Metrics.EntryCreated()
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	e, err := h.Service.Get(r.Context(), chi.URLParam(r, "entryID"))
	if err != nil {
		h.failEntry(w, r, err, "entry_get_failed", "failed to load entry")
		return
	}
	api.Success(w, e, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Values []template.RawValue `json:"values"`
		Status string              `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	updated, err := h.Service.Update(r.Context(), chi.URLParam(r, "entryID"), entry.UpdateParams{
		Values: payload.Values,
		Status: payload.Status,
	})
	if err != nil {
		h.failEntry(w, r, err, "entry_update_failed", "failed to update entry")
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.Service.Delete(r.Context(), chi.URLParam(r, "entryID"))
	if err != nil {
		h.failEntry(w, r, err, "entry_delete_failed", "failed to delete entry")
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleBulkStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		IDs    []string `json:"ids"`
		Status string   `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	updated, err := h.Service.UpdateStatusBulk(r.Context(), payload.IDs, payload.Status)
	if errors.Is(err, entry.ErrInvalidEntry) {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "entry_status_failed", "failed to update entry statuses", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]int{"updated": updated}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleStatusSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.StatusSummary(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "entry_summary_failed", "failed to summarize entries", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

// failEntry maps domain errors onto response codes shared by every entry
// endpoint.
func (h *Handler) failEntry(w http.ResponseWriter, r *http.Request, err error, code, message string) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, entry.ErrEntryNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "entry not found", requestID)
	case errors.Is(err, entry.ErrEntryExists):
		api.Fail(w, http.StatusConflict, "entry_exists", "an entry already exists for this employee and period", requestID)
	case errors.Is(err, template.ErrTemplateNotFound):
		api.Fail(w, http.StatusBadRequest, "invalid_template", "referenced template does not exist", requestID)
	case errors.Is(err, entry.ErrInvalidEntry),
		errors.Is(err, template.ErrInvalidValue),
		errors.Is(err, template.ErrUnknownItem),
		errors.Is(err, template.ErrMissingItem):
		api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, code, message, requestID)
	}
}
