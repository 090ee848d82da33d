package handler

import (
	"log/slog"
	"net/http"

	"github.com/pavelanni/examcloud/internal/grading"
	"github.com/pavelanni/examcloud/internal/model"
)

func (h *Handler) handleListResults(w http.ResponseWriter, r *http.Request) {
	if userID := r.URL.Query().Get("userId"); userID != "" {
		writeJSON(w, http.StatusOK, h.store.ResultsByUser(userID))
		return
	}
	writeJSON(w, http.StatusOK, h.store.Results())
}

// handlePostResult records an already scored result as sent.
func (h *Handler) handlePostResult(w http.ResponseWriter, r *http.Request) {
	var res model.ExamResult
	if err := decodeJSON(w, r, &res); err != nil {
		writeBadRequest(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.store.PostResult(res))
}

// submission is a student's answer sheet for one exam.
type submission struct {
	ExamID       model.ExamRef     `json:"examId"`
	UserID       string            `json:"userId"`
	AssignmentID string            `json:"assignmentId,omitempty"`
	Answers      map[string]string `json:"answers"`
	// Images maps question ids to uploaded work for questions that allow it.
	Images map[string]string `json:"images,omitempty"`
}

// handleSubmit scores a submission against the exam it names and records the
// result. Open-ended answers are graded by the LLM when one is configured; a
// failed LLM call keeps the string-match result for that answer.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var sub submission
	if err := decodeJSON(w, r, &sub); err != nil {
		writeBadRequest(w, r, err)
		return
	}

	exam := h.store.Resolve(sub.ExamID)
	if exam == nil {
		writeError(w, r, http.StatusNotFound, "not_found", "ExamRefUnresolved", map[string]any{"Ref": sub.ExamID.String()})
		return
	}

	out := grading.Score(exam.Questions, sub.Answers)
	for i, q := range exam.Questions {
		rec := &out.Answers[i]
		if img := sub.Images[q.ID]; img != "" && q.AllowImageUpload {
			rec.ImageURL = img
		}
		if h.grader == nil || !q.Type.IsOpenEnded() || (rec.Answer == "" && rec.ImageURL == "") {
			continue
		}
		g, err := h.grader.GradeWritten(r.Context(), q, rec.Answer, rec.ImageURL != "")
		if err != nil {
			slog.Error("AI grading failed", "exam", exam.Ref.String(), "question", q.ID, "error", err)
			h.countAIGrading("error")
			continue
		}
		h.countAIGrading("ok")
		grading.ApplyAI(rec, q, g)
	}
	out.Recount()

	res := h.store.PostResult(model.ExamResult{
		ExamID:       exam.Ref,
		SchoolID:     exam.SchoolID,
		Score:        out.Score,
		Total:        out.Total,
		Answers:      out.Answers,
		UserID:       sub.UserID,
		AssignmentID: sub.AssignmentID,
	})

	if h.metrics != nil {
		kind := "ordinary"
		if exam.Ref.IsCustom() {
			kind = "custom"
		}
		h.metrics.Submissions.WithLabelValues(kind).Inc()
	}
	slog.Info("recorded submission", "result", res.ID, "exam", exam.Ref.String(), "user", res.UserID, "score", res.Score, "total", res.Total)
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handler) countAIGrading(outcome string) {
	if h.metrics != nil {
		h.metrics.AIGradings.WithLabelValues(outcome).Inc()
	}
}
