package templatehandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"kpm/internal/domain/template"
	"kpm/internal/transport/http/api"
	"kpm/internal/transport/http/middleware"
	"kpm/internal/transport/http/shared"
)

type Handler struct {
	Service *template.Service
}

func NewHandler(service *template.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/templates", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{templateID}", h.handleGet)
		r.Put("/{templateID}", h.handleUpdate)
		r.Delete("/{templateID}", h.handleDelete)
	})
}

type templatePayload struct {
	Name           string          `json:"name"`
	DepartmentSlug string          `json:"departmentSlug"`
	Role           string          `json:"role"`
	Items          []template.Item `json:"items"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 20, 100)
	department := r.URL.Query().Get("departmentSlug")
	role := r.URL.Query().Get("role")

	templates, total, err := h.Service.List(r.Context(), department, role, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "template_list_failed", "failed to list templates", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"templates": templates, "total": total}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload templatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.MaxLen("name", payload.Name, 200, "name must be at most 200 characters")
	v.Required("departmentSlug", payload.DepartmentSlug, "department slug is required")
	v.Required("role", payload.Role, "role is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Service.Create(r.Context(), template.Template{
		Name:           payload.Name,
		DepartmentSlug: payload.DepartmentSlug,
		Role:           payload.Role,
		Items:          payload.Items,
	})
	if errors.Is(err, template.ErrInvalidTemplate) || errors.Is(err, template.ErrUnknownKpiType) {
		api.Fail(w, http.StatusBadRequest, "invalid_template", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "template_create_failed", "failed to create template", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	tmpl, err := h.Service.Get(r.Context(), chi.URLParam(r, "templateID"))
	if errors.Is(err, template.ErrTemplateNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "template not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "template_get_failed", "failed to load template", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, tmpl, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload templatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	err := h.Service.Update(r.Context(), template.Template{
		ID:             chi.URLParam(r, "templateID"),
		Name:           payload.Name,
		DepartmentSlug: payload.DepartmentSlug,
		Role:           payload.Role,
		Items:          payload.Items,
	})
	if errors.Is(err, template.ErrTemplateNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "template not found", middleware.GetRequestID(r.Context()))
		return
	}
	if errors.Is(err, template.ErrInvalidTemplate) || errors.Is(err, template.ErrUnknownKpiType) {
		api.Fail(w, http.StatusBadRequest, "invalid_template", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "template_update_failed", "failed to update template", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"updated": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.Service.Delete(r.Context(), chi.URLParam(r, "templateID"))
	if errors.Is(err, template.ErrTemplateNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "template not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "template_delete_failed", "failed to delete template", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, middleware.GetRequestID(r.Context()))
}
