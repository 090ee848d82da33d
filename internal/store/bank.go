package store

import (
	"strings"

	"github.com/pavelanni/examcloud/internal/model"
)

// QuestionBank flattens every exam's questions into one list. Questions with
// identical content are the same bank question; the first one in catalog
// order is kept. Each question carries the source of the exam it came from.
func (s *Store) QuestionBank() []model.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bankLocked()
}

func (s *Store) bankLocked() []model.Question {
	names := make(map[string]string, len(s.schools))
	for _, sc := range s.schools {
		names[sc.ID] = sc.Name
	}

	seen := make(map[string]bool)
	out := []model.Question{}
	for _, e := range s.exams {
		for _, q := range e.Questions {
			if seen[q.Content] {
				continue
			}
			seen[q.Content] = true

			c := q.Clone()
			c.Source = &model.QuestionSource{
				ExamCategory: e.ExamCategory,
				SchoolID:     e.SchoolID,
				SchoolName:   names[e.SchoolID],
				Year:         e.Year,
				Grade:        e.Grade,
				Subject:      e.Subject,
				ExamTitle:    e.Title,
			}
			out = append(out, c)
		}
	}
	return out
}

// QualifyingQuestions returns the bank questions matching every criterion of
// f, in bank order. f.Limit is ignored.
func (s *Store) QualifyingQuestions(f model.QuestionFilter) []model.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return qualifying(s.bankLocked(), f)
}

// FilterQuestions returns the qualifying questions in random order, cut to
// f.Limit when it is positive. Two calls with the same filter may differ in
// order and, when limited, in membership.
func (s *Store) FilterQuestions(f model.QuestionFilter) []model.Question {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := qualifying(s.bankLocked(), f)
	s.rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out
}

func qualifying(bank []model.Question, f model.QuestionFilter) []model.Question {
	out := []model.Question{}
	for _, q := range bank {
		if MatchesFilter(q, f) {
			out = append(out, q)
		}
	}
	return out
}

// MatchesFilter reports whether a bank question satisfies f: some tag contains
// f.Chapter, the difficulty equals f.Difficulty unless it is "mixed", and the
// source category equals f.ExamCategory unless it is "all".
func MatchesFilter(q model.Question, f model.QuestionFilter) bool {
	if f.Chapter != "" && !hasTagContaining(q.Tags, f.Chapter) {
		return false
	}
	if f.Difficulty != "" && f.Difficulty != model.DifficultyMixed && q.Difficulty != f.Difficulty {
		return false
	}
	if f.ExamCategory != "" && f.ExamCategory != model.CategoryAll {
		if q.Source == nil || q.Source.ExamCategory != f.ExamCategory {
			return false
		}
	}
	return true
}

func hasTagContaining(tags []string, sub string) bool {
	for _, t := range tags {
		if strings.Contains(t, sub) {
			return true
		}
	}
	return false
}
