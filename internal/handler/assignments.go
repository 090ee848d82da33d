package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pavelanni/examcloud/internal/analytics"
	"github.com/pavelanni/examcloud/internal/model"
)

func (h *Handler) handleListAssignments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Assignments())
}

func (h *Handler) handleCreateAssignment(w http.ResponseWriter, r *http.Request) {
	var in model.AssignmentInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeBadRequest(w, r, err)
		return
	}
	if in.ExamID.ID == "" {
		writeError(w, r, http.StatusBadRequest, "validation_failed", "ValidationFailed", nil)
		return
	}
	a := h.store.CreateAssignment(in)
	if h.metrics != nil {
		h.metrics.Assignments.Inc()
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *Handler) handleGetAssignment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "assignmentID")
	a := h.store.AssignmentByID(id)
	if a == nil {
		writeNotFound(w, r, "AssignmentNotFound", id)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *Handler) handleAssignmentProgress(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "assignmentID")
	a := h.store.AssignmentByID(id)
	if a == nil {
		writeNotFound(w, r, "AssignmentNotFound", id)
		return
	}
	writeJSON(w, http.StatusOK, analytics.AssignmentProgress(*a, h.store.Results()))
}

func (h *Handler) handleDeleteAssignment(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteAssignment(chi.URLParam(r, "assignmentID"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListStudents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.StudentViews())
}

func (h *Handler) handleGetStudent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "studentID")
	st, ok := h.store.StudentView(id)
	if !ok {
		writeNotFound(w, r, "StudentNotFound", id)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *Handler) handleStudentAssignments(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "studentID")
	list, ok := h.store.StudentAssignments(id)
	if !ok {
		writeNotFound(w, r, "StudentNotFound", id)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleStudentAssignedExams(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "studentID")
	refs := h.store.ActiveAssignedExams(id)
	if refs == nil {
		writeNotFound(w, r, "StudentNotFound", id)
		return
	}
	writeJSON(w, http.StatusOK, refs)
}

func (h *Handler) handleStudentAnnouncements(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "studentID")
	list, ok := h.store.AnnouncementsFor(id)
	if !ok {
		writeNotFound(w, r, "StudentNotFound", id)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleListAnnouncements(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Announcements())
}

func (h *Handler) handleCreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var in model.AnnouncementInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeBadRequest(w, r, err)
		return
	}
	if in.Type == "" {
		in.Type = model.AnnouncementInfo
	}
	writeJSON(w, http.StatusCreated, h.store.CreateAnnouncement(in))
}

func (h *Handler) handleDeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteAnnouncement(chi.URLParam(r, "announcementID"))
	w.WriteHeader(http.StatusNoContent)
}

// masteryResponse pairs per-tag mastery with the weakest tags.
type masteryResponse struct {
	UserID   string                 `json:"userId,omitempty"`
	Mastery  []analytics.TagMastery `json:"mastery"`
	WeakTags []analytics.TagMastery `json:"weakTags"`
}

const defaultWeakTags = 3

func (h *Handler) handleMastery(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	results := h.store.Results()
	if userID != "" {
		results = h.store.ResultsByUser(userID)
	}

	n := defaultWeakTags
	if s := r.URL.Query().Get("weak"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			writeError(w, r, http.StatusBadRequest, "invalid_limit", "InvalidLimit", nil)
			return
		}
		n = v
	}

	views := h.store.ExamViews("")
	exams := make([]*model.Exam, len(views))
	for i := range views {
		exams[i] = &views[i]
	}
	m := analytics.Mastery(exams, results)
	writeJSON(w, http.StatusOK, masteryResponse{
		UserID:   userID,
		Mastery:  m,
		WeakTags: analytics.WeakTags(m, n),
	})
}
