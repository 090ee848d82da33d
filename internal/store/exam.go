package store

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/pavelanni/examcloud/internal/model"
)

// Defaults for exams created without the field set.
const (
	defaultSchoolID = "s01"
	defaultGrade    = "高一"
	defaultSubject  = "數學"
	defaultYear     = "114"
)

// Schools lists every school.
func (s *Store) Schools() []model.School {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSlice(s.schools)
}

// Exams lists every exam in catalog order, newest created first.
func (s *Store) Exams() []*model.Exam {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSlice(s.exams)
}

// ExamsBySchool lists the exams of one school.
func (s *Store) ExamsBySchool(schoolID string) []*model.Exam {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*model.Exam{}
	for _, e := range s.exams {
		if e.SchoolID == schoolID {
			out = append(out, e)
		}
	}
	return out
}

// ExamByID returns the exam with the given id, or nil.
func (s *Store) ExamByID(id string) *model.Exam {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.examLocked(id)
}

// ExamView returns a deep copy of the exam with the given id, taken under the
// lock. ok is false when no exam has that id.
func (s *Store) ExamView(id string) (e model.Exam, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p := s.examLocked(id); p != nil {
		return p.Clone(), true
	}
	return model.Exam{}, false
}

// ExamViews returns deep copies of the exams of one school, or of every exam
// when schoolID is empty.
func (s *Store) ExamViews(schoolID string) []model.Exam {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Exam{}
	for _, e := range s.exams {
		if schoolID == "" || e.SchoolID == schoolID {
			out = append(out, e.Clone())
		}
	}
	return out
}

// UpsertExam merges in into the exam with the same id. When no such exam
// exists a new one is created with a generated id and defaults for unset
// fields, and placed first in the catalog.
func (s *Store) UpsertExam(in model.ExamInput) *model.Exam {
	s.mu.Lock()
	defer s.mu.Unlock()

	if in.ID != "" {
		if e := s.examLocked(in.ID); e != nil {
			in.Questions = s.ownQuestionsLocked(in.Questions)
			in.ApplyTo(e)
			if in.Questions != nil {
				s.reindexLocked()
			}
			s.persistLocked()
			slog.Info("updated exam", "id", e.ID)
			return e
		}
	}

	now := s.now()
	e := &model.Exam{
		ID:           s.nextID("e"),
		ExamCategory: model.CategorySchool,
		SchoolID:     defaultSchoolID,
		Grade:        defaultGrade,
		Subject:      defaultSubject,
		Year:         defaultYear,
		Title:        in.Title,
		Questions:    []model.Question{},
		CreatedAt:    &now,
	}
	in.Questions = nil
	in.ApplyTo(e)

	s.exams = slices.Insert(s.exams, 0, e)
	s.examIndex[e.ID] = e
	s.persistLocked()
	slog.Info("created exam", "id", e.ID, "title", e.Title)
	return e
}

// ownQuestionsLocked copies questions for storage in the catalog: missing ids
// are generated and any source is dropped. A nil slice stays nil.
func (s *Store) ownQuestionsLocked(questions []model.Question) []model.Question {
	if questions == nil {
		return nil
	}
	out := make([]model.Question, len(questions))
	for i, q := range questions {
		q = q.Clone()
		if q.ID == "" {
			q.ID = s.nextID("q")
		}
		q.Source = nil
		out[i] = q
	}
	return out
}

// AddQuestion appends q to an exam under a new id and returns the stored question.
func (s *Store) AddQuestion(examID string, q model.Question) (model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.examLocked(examID)
	if e == nil {
		return model.Question{}, fmt.Errorf("exam %s: %w", examID, ErrNotFound)
	}

	q = q.Clone()
	q.ID = s.nextID("q")
	q.Source = nil
	e.Questions = append(e.Questions, q)
	s.indexQuestion(q.ID, e.ID)
	s.persistLocked()
	return q.Clone(), nil
}

// UpdateQuestion merges p into the first question with the given id.
func (s *Store) UpdateQuestion(id string, p model.QuestionPatch) (model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, i := s.findQuestionLocked(id)
	if e == nil {
		return model.Question{}, fmt.Errorf("question %s: %w", id, ErrNotFound)
	}
	p.ApplyTo(&e.Questions[i])
	s.persistLocked()
	return e.Questions[i].Clone(), nil
}

// DeleteQuestion removes the first question with the given id. Deleting a
// missing question does nothing.
func (s *Store) DeleteQuestion(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, i := s.findQuestionLocked(id)
	if e == nil {
		return
	}
	e.Questions = slices.Delete(e.Questions, i, i+1)
	delete(s.questionIndex, id)
	// A later exam may hold a question with the same id.
	for _, other := range s.exams {
		if slices.ContainsFunc(other.Questions, func(q model.Question) bool { return q.ID == id }) {
			s.questionIndex[id] = other.ID
			break
		}
	}
	s.persistLocked()
}

// AllQuestions lists every question with its exam, without deduplication.
func (s *Store) AllQuestions() []model.ExamQuestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.ExamQuestion
	for _, e := range s.exams {
		for _, q := range e.Questions {
			out = append(out, model.ExamQuestion{Question: q.Clone(), ExamID: e.ID, ExamTitle: e.Title})
		}
	}
	return nonNil(out)
}

func (s *Store) examLocked(id string) *model.Exam {
	if e, ok := s.examIndex[id]; ok && e.ID == id {
		return e
	}
	for _, e := range s.exams {
		if e.ID == id {
			s.examIndex[id] = e
			return e
		}
	}
	delete(s.examIndex, id)
	return nil
}

// findQuestionLocked locates a question through the index, falling back to a
// catalog scan when the index entry is missing or stale.
func (s *Store) findQuestionLocked(id string) (*model.Exam, int) {
	if examID, ok := s.questionIndex[id]; ok {
		if e := s.examLocked(examID); e != nil {
			if i := questionPos(e, id); i >= 0 {
				return e, i
			}
		}
	}
	for _, e := range s.exams {
		if i := questionPos(e, id); i >= 0 {
			s.questionIndex[id] = e.ID
			return e, i
		}
	}
	delete(s.questionIndex, id)
	return nil, -1
}

func questionPos(e *model.Exam, id string) int {
	return slices.IndexFunc(e.Questions, func(q model.Question) bool { return q.ID == id })
}

func (s *Store) indexQuestion(questionID, examID string) {
	if _, ok := s.questionIndex[questionID]; !ok {
		s.questionIndex[questionID] = examID
	}
}

func (s *Store) reindexLocked() {
	s.examIndex = make(map[string]*model.Exam, len(s.exams))
	s.questionIndex = make(map[string]string)
	for _, e := range s.exams {
		if _, ok := s.examIndex[e.ID]; !ok {
			s.examIndex[e.ID] = e
		}
		for _, q := range e.Questions {
			s.indexQuestion(q.ID, e.ID)
		}
	}
}
