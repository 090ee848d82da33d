package store

import (
	"log/slog"
	"slices"

	"github.com/pavelanni/examcloud/internal/model"
)

// Assignments lists every assignment in creation order.
func (s *Store) Assignments() []model.ExamAssignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ExamAssignment, len(s.assignments))
	for i, a := range s.assignments {
		out[i] = cloneAssignment(a)
	}
	return out
}

// AssignmentByID returns the assignment with the given id, or nil.
func (s *Store) AssignmentByID(id string) *model.ExamAssignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.assignmentPos(id); i >= 0 {
		a := cloneAssignment(s.assignments[i])
		return &a
	}
	return nil
}

// CreateAssignment records a new assignment and links it to every target
// student: the assignment id goes on the student's assignment list and the
// exam reference on the legacy assigned-exam list, once. Unknown students are
// skipped.
func (s *Store) CreateAssignment(in model.AssignmentInput) model.ExamAssignment {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := model.ExamAssignment{
		ID:               s.nextID("assign"),
		Name:             in.Name,
		ExamID:           in.ExamID,
		ExamTitle:        in.ExamTitle,
		TargetStudentIDs: cloneSlice(in.TargetStudentIDs),
		CreatedAt:        s.now(),
		DueDate:          in.DueDate,
	}
	s.assignments = append(s.assignments, a)

	ref := a.ExamID.String()
	linked := 0
	for _, sid := range a.TargetStudentIDs {
		st := s.studentLocked(sid)
		if st == nil {
			slog.Warn("assignment target not found", "assignment", a.ID, "student", sid)
			continue
		}
		st.Assignments = append(st.Assignments, a.ID)
		if !slices.Contains(st.AssignedExams, ref) {
			st.AssignedExams = append(st.AssignedExams, ref)
		}
		linked++
	}
	s.persistLocked()

	slog.Info("created assignment", "id", a.ID, "exam", ref, "targets", linked)
	return cloneAssignment(a)
}

// DeleteAssignment removes an assignment and retracts its id from each target
// student. The legacy assigned-exam entries stay. Deleting a missing
// assignment does nothing.
func (s *Store) DeleteAssignment(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.assignmentPos(id)
	if i < 0 {
		return
	}
	a := s.assignments[i]
	s.assignments = slices.Delete(s.assignments, i, i+1)

	for _, sid := range a.TargetStudentIDs {
		if st := s.studentLocked(sid); st != nil {
			st.Assignments = slices.DeleteFunc(st.Assignments, func(v string) bool { return v == id })
		}
	}
	s.persistLocked()
	slog.Info("deleted assignment", "id", id)
}

// AssignmentStatus is an assignment as seen by one student.
type AssignmentStatus struct {
	model.ExamAssignment
	Completed bool `json:"completed"`
}

// StudentAssignments lists the live assignments on a student's assignment
// list with their completion state. ok is false when the student is unknown.
func (s *Store) StudentAssignments(studentID string) (out []AssignmentStatus, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.studentLocked(studentID)
	if st == nil {
		return nil, false
	}
	out = []AssignmentStatus{}
	for _, a := range s.liveAssignmentsLocked(st) {
		out = append(out, AssignmentStatus{
			ExamAssignment: cloneAssignment(a),
			Completed:      model.IsAssignmentCompleted(a, studentID, s.results),
		})
	}
	return out, true
}

// ActiveAssignedExams derives the assigned-exam list from the student's live
// assignments. Unlike the stored legacy list it drops exams whose assignments
// were deleted.
func (s *Store) ActiveAssignedExams(studentID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.studentLocked(studentID)
	if st == nil {
		return nil
	}
	out := []string{}
	for _, a := range s.liveAssignmentsLocked(st) {
		if ref := a.ExamID.String(); !slices.Contains(out, ref) {
			out = append(out, ref)
		}
	}
	return out
}

func (s *Store) liveAssignmentsLocked(st *model.StudentUser) []model.ExamAssignment {
	var out []model.ExamAssignment
	for _, id := range st.Assignments {
		if i := s.assignmentPos(id); i >= 0 {
			out = append(out, s.assignments[i])
		}
	}
	return out
}

func (s *Store) assignmentPos(id string) int {
	return slices.IndexFunc(s.assignments, func(a model.ExamAssignment) bool { return a.ID == id })
}

func cloneAssignment(a model.ExamAssignment) model.ExamAssignment {
	a.TargetStudentIDs = cloneSlice(a.TargetStudentIDs)
	return a
}
