package store

import (
	"log/slog"
	"slices"

	"github.com/pavelanni/examcloud/internal/model"
)

// CreateCustomExam freezes questions into a new custom exam. The stored
// snapshot holds deep copies, so later catalog edits do not reach it. Only the
// manifest is returned.
func (s *Store) CreateCustomExam(title, chapter string, difficulty model.Difficulty, questions []model.Question) model.CustomExam {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, len(questions))
	frozen := make([]model.Question, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
		frozen[i] = q.Clone()
	}

	manifest := model.CustomExam{
		ID:          s.nextID("custom"),
		Title:       title,
		Chapter:     chapter,
		Difficulty:  difficulty,
		QuestionIDs: ids,
		CreatedAt:   s.now(),
	}
	s.customExams = append(s.customExams, model.CustomExamSnapshot{
		CustomExam: manifest,
		Questions:  frozen,
	})
	s.persistLocked()

	slog.Info("created custom exam", "id", manifest.ID, "questions", len(ids))
	manifest.QuestionIDs = slices.Clone(ids)
	return manifest
}

// CustomExam returns the manifest and frozen questions of a custom exam, or
// nil when no custom exam has that id.
func (s *Store) CustomExam(id string) *model.CustomExamView {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.customLocked(id)
	if snap == nil {
		return nil
	}
	view := &model.CustomExamView{Exam: snap.CustomExam, Questions: make([]model.Question, len(snap.Questions))}
	view.Exam.QuestionIDs = slices.Clone(snap.QuestionIDs)
	for i, q := range snap.Questions {
		view.Questions[i] = q.Clone()
	}
	return view
}

// CustomExams lists the manifests of every custom exam.
func (s *Store) CustomExams() []model.CustomExam {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.CustomExam, len(s.customExams))
	for i, c := range s.customExams {
		out[i] = c.CustomExam
		out[i].QuestionIDs = slices.Clone(c.QuestionIDs)
	}
	return out
}

func (s *Store) customLocked(id string) *model.CustomExamSnapshot {
	for i := range s.customExams {
		if s.customExams[i].ID == id {
			return &s.customExams[i]
		}
	}
	return nil
}

// ResolvedExam is an exam reference resolved to its questions.
type ResolvedExam struct {
	Ref       model.ExamRef
	Title     string
	SchoolID  string
	Questions []model.Question
}

// Resolve looks up the exam behind ref, ordinary or custom. It returns nil
// when the exam does not exist.
func (s *Store) Resolve(ref model.ExamRef) *ResolvedExam {
	s.mu.Lock()
	defer s.mu.Unlock()

	var r *ResolvedExam
	var src []model.Question
	if ref.IsCustom() {
		snap := s.customLocked(ref.ID)
		if snap == nil {
			return nil
		}
		r = &ResolvedExam{Ref: ref, Title: snap.Title}
		src = snap.Questions
	} else {
		e := s.examLocked(ref.ID)
		if e == nil {
			return nil
		}
		r = &ResolvedExam{Ref: ref, Title: e.Title, SchoolID: e.SchoolID}
		src = e.Questions
	}
	r.Questions = make([]model.Question, len(src))
	for i, q := range src {
		r.Questions[i] = q.Clone()
	}
	return r
}
