package migrationhandler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"kpm/internal/domain/migration"
	"kpm/internal/domain/template"
	"kpm/internal/identity"
	"kpm/internal/platform/metrics"
	"kpm/internal/transport/http/api"
	"kpm/internal/transport/http/middleware"
	"kpm/internal/transport/http/shared"
)

const maxCSVBytes = 10 << 20

type Handler struct {
	Service *migration.Service
	Metrics *metrics.Collector
}

func NewHandler(service *migration.Service, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/migration", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/csv", h.handleImportCSV)
	})
}

type importRequest struct {
	CSVText        string `json:"csvText"`
	Month          int    `json:"month"`
	Year           int    `json:"year"`
	TemplateID     string `json:"templateId"`
	DepartmentSlug string `json:"departmentSlug"`
	Role           string `json:"role"`
}

// handleImportCSV accepts either a JSON body or a multipart form with a
// "file" part plus the remaining parameters as form fields.
func (h *Handler) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	payload, err := decodeImportRequest(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid import request", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("csvText", payload.CSVText, "csv content is required")
	v.Required("templateId", payload.TemplateID, "template id is required")
	v.Required("departmentSlug", payload.DepartmentSlug, "department slug is required")
	v.Required("role", payload.Role, "role is required")
	v.Period(payload.Month, payload.Year)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	result, err := h.Service.Migrate(r.Context(), migration.Params{
		CSVText:        payload.CSVText,
		Month:          payload.Month,
		Year:           payload.Year,
		TemplateID:     payload.TemplateID,
		DepartmentSlug: payload.DepartmentSlug,
		Role:           payload.Role,
		CreatedBy:      user.UserID,
	})
	if err != nil {
		h.failImport(w, r, err)
		return
	}

	if h.Metrics != nil {
		h.Metrics.ImportRecord("success", result.SuccessfulEntries)
		h.Metrics.ImportRecord("failed", result.FailedEntries)
		h.Metrics.ImportRecord("skipped", result.SkippedEntries)
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func decodeImportRequest(r *http.Request) (importRequest, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxCSVBytes); err != nil {
			return importRequest{}, err
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return importRequest{}, err
		}
		defer file.Close()
		content, err := io.ReadAll(io.LimitReader(file, maxCSVBytes))
		if err != nil {
			return importRequest{}, err
		}

		month, _ := strconv.Atoi(r.FormValue("month"))
		year, _ := strconv.Atoi(r.FormValue("year"))
		return importRequest{
			CSVText:        string(content),
			Month:          month,
			Year:           year,
			TemplateID:     r.FormValue("templateId"),
			DepartmentSlug: r.FormValue("departmentSlug"),
			Role:           r.FormValue("role"),
		}, nil
	}

	var payload importRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return importRequest{}, err
	}
	return payload, nil
}

func (h *Handler) failImport(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, migration.ErrConfigNotFound):
		api.Fail(w, http.StatusBadRequest, "unknown_config", "no import configuration for this department and role", requestID)
	case errors.Is(err, migration.ErrMalformedCSV):
		api.Fail(w, http.StatusBadRequest, "malformed_csv", err.Error(), requestID)
	case errors.Is(err, template.ErrTemplateNotFound):
		api.Fail(w, http.StatusBadRequest, "invalid_template", "referenced template does not exist", requestID)
	case errors.Is(err, identity.ErrServiceFailure):
		api.Fail(w, http.StatusBadGateway, "identity_unavailable", "identity service is unavailable", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "import_failed", "csv import failed", requestID)
	}
}
