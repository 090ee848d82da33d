package store

import (
	"slices"

	"github.com/pavelanni/examcloud/internal/catalog"
	"github.com/pavelanni/examcloud/internal/model"
)

// PostResult records a submission at the head of the ledger. A missing id is
// generated, a missing user defaults to the demo student and a missing
// submission time to now. Scores are stored as given.
func (s *Store) PostResult(r model.ExamResult) model.ExamResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		r.ID = s.nextID("r")
	}
	if r.UserID == "" {
		r.UserID = catalog.DefaultStudentID
	}
	if r.SubmittedAt.IsZero() {
		r.SubmittedAt = s.now()
	}
	r.Answers = cloneSlice(r.Answers)

	s.results = slices.Insert(s.results, 0, r)
	s.persistLocked()
	return r
}

// Results returns the ledger, newest first.
func (s *Store) Results() []model.ExamResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSlice(s.results)
}

// ResultsByUser returns one student's results, newest first.
func (s *Store) ResultsByUser(userID string) []model.ExamResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.ExamResult{}
	for _, r := range s.results {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}
