package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pavelanni/examcloud/internal/model"
	"github.com/pavelanni/examcloud/internal/store"
	"github.com/pavelanni/examcloud/internal/validate"
)

func (h *Handler) handleListSchools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Schools())
}

func (h *Handler) handleListExams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.ExamViews(r.URL.Query().Get("schoolId")))
}

func (h *Handler) handleGetExam(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "examID")
	e, ok := h.store.ExamView(id)
	if !ok {
		writeNotFound(w, r, "ExamNotFound", id)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *Handler) handleUpsertExam(w http.ResponseWriter, r *http.Request) {
	var in model.ExamInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeBadRequest(w, r, err)
		return
	}
	// Exam ids never change, so reading one off the stored exam is safe.
	id := h.store.UpsertExam(in).ID
	e, ok := h.store.ExamView(id)
	if !ok {
		writeNotFound(w, r, "ExamNotFound", id)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *Handler) handleAddQuestion(w http.ResponseWriter, r *http.Request) {
	examID := chi.URLParam(r, "examID")
	var q model.Question
	if err := decodeJSON(w, r, &q); err != nil {
		writeBadRequest(w, r, err)
		return
	}
	added, err := h.store.AddQuestion(examID, q)
	if errors.Is(err, store.ErrNotFound) {
		writeNotFound(w, r, "ExamNotFound", examID)
		return
	}
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "server_error", "InternalError", nil)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (h *Handler) handleUpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "questionID")
	var p model.QuestionPatch
	if err := decodeJSON(w, r, &p); err != nil {
		writeBadRequest(w, r, err)
		return
	}
	q, err := h.store.UpdateQuestion(id, p)
	if errors.Is(err, store.ErrNotFound) {
		writeNotFound(w, r, "QuestionNotFound", id)
		return
	}
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "server_error", "InternalError", nil)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *Handler) handleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteQuestion(chi.URLParam(r, "questionID"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleQuestionBank(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.QuestionBank())
}

func (h *Handler) handleAllQuestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.AllQuestions())
}

// questionFilterQuery mirrors model.QuestionFilter for query-string binding.
type questionFilterQuery struct {
	Chapter      string `json:"chapter"`
	Difficulty   string `json:"difficulty" validate:"omitempty,oneof=easy medium hard mixed"`
	ExamCategory string `json:"examCategory" validate:"omitempty,oneof=school junior_high gsat ast all"`
	Limit        int    `json:"limit" validate:"gte=0"`
}

func (h *Handler) handleFilterQuestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fq := questionFilterQuery{
		Chapter:      q.Get("chapter"),
		Difficulty:   q.Get("difficulty"),
		ExamCategory: q.Get("examCategory"),
	}
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeError(w, r, http.StatusBadRequest, "invalid_limit", "InvalidLimit", nil)
			return
		}
		fq.Limit = n
	}
	if err := validate.Struct(fq); err != nil {
		writeBadRequest(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, h.store.FilterQuestions(model.QuestionFilter{
		Chapter:      fq.Chapter,
		Difficulty:   model.Difficulty(fq.Difficulty),
		ExamCategory: model.ExamCategory(fq.ExamCategory),
		Limit:        fq.Limit,
	}))
}

type createCustomExamRequest struct {
	Title      string           `json:"title" validate:"notblank"`
	Chapter    string           `json:"chapter"`
	Difficulty model.Difficulty `json:"difficulty" validate:"omitempty,oneof=easy medium hard mixed"`
	Questions  []model.Question `json:"questions"`
}

func (h *Handler) handleCreateCustomExam(w http.ResponseWriter, r *http.Request) {
	var req createCustomExamRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, r, err)
		return
	}
	c := h.store.CreateCustomExam(req.Title, req.Chapter, req.Difficulty, req.Questions)
	if h.metrics != nil {
		h.metrics.CustomExams.Inc()
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) handleListCustomExams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.CustomExams())
}

func (h *Handler) handleGetCustomExam(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "customID")
	v := h.store.CustomExam(id)
	if v == nil {
		writeNotFound(w, r, "CustomExamNotFound", id)
		return
	}
	writeJSON(w, http.StatusOK, v)
}
