// Package handler exposes the portal over a JSON HTTP API.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appI18n "github.com/pavelanni/examcloud/internal/i18n"
	"github.com/pavelanni/examcloud/internal/importer"
	"github.com/pavelanni/examcloud/internal/metrics"
	"github.com/pavelanni/examcloud/internal/model"
	"github.com/pavelanni/examcloud/internal/store"
	"github.com/pavelanni/examcloud/internal/validate"
)

// maxBodyBytes caps JSON request bodies. Exam imports use maxImportBytes.
const maxBodyBytes = 1 << 20

// Grader scores open-ended answers. *llm.Client implements it.
type Grader interface {
	GradeWritten(ctx context.Context, q model.Question, answer string, hasImage bool) (model.AIGrading, error)
}

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	store   *store.Store
	grader  Grader
	hashes  importer.Hashes
	metrics *metrics.Metrics
}

// New creates a new Handler. grader and hashes may be nil, which disables AI
// grading and file imports respectively.
func New(s *store.Store, grader Grader, hashes importer.Hashes, m *metrics.Metrics) *Handler {
	return &Handler{store: s, grader: grader, hashes: hashes, metrics: m}
}

// RouterConfig configures the middleware stack around the API.
type RouterConfig struct {
	Lang        string
	CORSOrigins []string
	// MetricsHandler serves /metrics. promhttp.Handler() is used when nil.
	MetricsHandler http.Handler
}

// NewRouter builds the full HTTP handler: middleware, health and metrics
// endpoints, and the API under /api.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Accept-Language", "Content-Type", roleHeader},
			ExposedHeaders: []string{"Content-Length"},
			MaxAge:         300,
		}))
	}
	if h.metrics != nil {
		r.Use(h.metrics.Middleware)
	}
	r.Use(appI18n.Middleware(cfg.Lang))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mh := cfg.MetricsHandler
	if mh == nil {
		mh = promhttp.Handler()
	}
	r.Handle("/metrics", mh)

	r.Route("/api", h.Routes)
	return r
}

// Routes registers all API routes.
func (h *Handler) Routes(r chi.Router) {
	r.Use(withRole)
	editors := requireRole(model.RoleCreator, model.RoleAdmin)
	admins := requireRole(model.RoleAdmin)

	r.Get("/schools", h.handleListSchools)

	r.Get("/exams", h.handleListExams)
	r.Get("/exams/{examID}", h.handleGetExam)
	r.With(editors).Post("/exams/upsert", h.handleUpsertExam)
	r.With(editors).Post("/exams/{examID}/questions", h.handleAddQuestion)

	r.Get("/questions/bank", h.handleQuestionBank)
	r.Get("/questions/all", h.handleAllQuestions)
	r.Get("/questions/filter", h.handleFilterQuestions)
	r.With(editors).Patch("/questions/{questionID}", h.handleUpdateQuestion)
	r.With(editors).Delete("/questions/{questionID}", h.handleDeleteQuestion)

	r.Get("/custom-exams", h.handleListCustomExams)
	r.Post("/custom-exams", h.handleCreateCustomExam)
	r.Get("/custom-exams/{customID}", h.handleGetCustomExam)

	r.Get("/assignments", h.handleListAssignments)
	r.With(editors).Post("/assignments", h.handleCreateAssignment)
	r.Get("/assignments/{assignmentID}", h.handleGetAssignment)
	r.Get("/assignments/{assignmentID}/progress", h.handleAssignmentProgress)
	r.With(editors).Delete("/assignments/{assignmentID}", h.handleDeleteAssignment)

	r.Get("/results", h.handleListResults)
	r.Post("/results", h.handlePostResult)
	r.Post("/submissions", h.handleSubmit)

	r.Get("/students", h.handleListStudents)
	r.Get("/students/{studentID}", h.handleGetStudent)
	r.Get("/students/{studentID}/assignments", h.handleStudentAssignments)
	r.Get("/students/{studentID}/assigned-exams", h.handleStudentAssignedExams)
	r.Get("/students/{studentID}/announcements", h.handleStudentAnnouncements)

	r.Get("/analytics/mastery", h.handleMastery)

	r.Get("/announcements", h.handleListAnnouncements)
	r.With(editors).Post("/announcements", h.handleCreateAnnouncement)
	r.With(editors).Delete("/announcements/{announcementID}", h.handleDeleteAnnouncement)

	r.With(admins).Get("/admin/export/results", h.handleExportResults)
	r.With(admins).Post("/admin/import", h.handleImportExams)
}

// apiError is the JSON body of every error response.
type apiError struct {
	Error   string                `json:"error"`
	Message string                `json:"message"`
	Fields  []validate.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeError sends a localized error. msgID names the message in the locale
// files; data fills its template.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, msgID string, data map[string]any) {
	writeJSON(w, status, apiError{Error: code, Message: appI18n.Td(r.Context(), msgID, data)})
}

func writeNotFound(w http.ResponseWriter, r *http.Request, msgID, id string) {
	writeError(w, r, http.StatusNotFound, "not_found", msgID, map[string]any{"ID": id})
}

// writeBadRequest reports a body that failed to decode or validate.
func writeBadRequest(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validate.Error
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, apiError{
			Error:   "validation_failed",
			Message: appI18n.T(r.Context(), "ValidationFailed"),
			Fields:  verr.Fields,
		})
		return
	}
	slog.Debug("bad request body", "path", r.URL.Path, "error", err)
	writeError(w, r, http.StatusBadRequest, "invalid_request", "InvalidBody", nil)
}

// decodeJSON reads the request body into out and validates it.
func decodeJSON(w http.ResponseWriter, r *http.Request, out any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(out); err != nil {
		return err
	}
	return validate.Struct(out)
}
