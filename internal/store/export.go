package store

import (
	"github.com/pavelanni/examcloud/internal/model"
)

// ExportResults builds export-ready results with student, exam and
// assignment names filled in.
func (s *Store) ExportResults() model.ResultsExport {
	s.mu.Lock()
	defer s.mu.Unlock()

	assignmentNames := make(map[string]string, len(s.assignments))
	for _, a := range s.assignments {
		assignmentNames[a.ID] = a.Name
	}

	results := make([]model.StudentResult, 0, len(s.results))
	for _, r := range s.results {
		sr := model.StudentResult{
			ResultID:       r.ID,
			UserID:         r.UserID,
			ExamID:         r.ExamID.String(),
			ExamTitle:      s.examTitleLocked(r.ExamID),
			AssignmentID:   r.AssignmentID,
			AssignmentName: assignmentNames[r.AssignmentID],
			Score:          r.Score,
			Total:          r.Total,
			SubmittedAt:    r.SubmittedAt,
			Answers:        cloneSlice(r.Answers),
		}
		if st := s.studentLocked(r.UserID); st != nil {
			sr.StudentName = st.Name
			sr.ClassName = st.ClassName
		}
		results = append(results, sr)
	}

	return model.ResultsExport{
		ExportedAt: s.now(),
		Count:      len(results),
		Results:    results,
	}
}

func (s *Store) examTitleLocked(ref model.ExamRef) string {
	if ref.IsCustom() {
		if c := s.customLocked(ref.ID); c != nil {
			return c.Title
		}
		return ""
	}
	if e := s.examLocked(ref.ID); e != nil {
		return e.Title
	}
	return ""
}
