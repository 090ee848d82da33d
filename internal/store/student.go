package store

import (
	"log/slog"
	"slices"

	"github.com/pavelanni/examcloud/internal/model"
)

// Students lists every student account.
func (s *Store) Students() []*model.StudentUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSlice(s.students)
}

// StudentByID returns the student with the given id, or nil.
func (s *Store) StudentByID(id string) *model.StudentUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.studentLocked(id)
}

// StudentViews returns deep copies of every student account.
func (s *Store) StudentViews() []model.StudentUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.StudentUser, len(s.students))
	for i, st := range s.students {
		out[i] = st.Clone()
	}
	return out
}

// StudentView returns a deep copy of one student. ok is false when the
// student is unknown.
func (s *Store) StudentView(id string) (st model.StudentUser, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p := s.studentLocked(id); p != nil {
		return p.Clone(), true
	}
	return model.StudentUser{}, false
}

func (s *Store) studentLocked(id string) *model.StudentUser {
	for _, st := range s.students {
		if st.ID == id {
			return st
		}
	}
	return nil
}

// Announcements lists every announcement, newest first.
func (s *Store) Announcements() []model.Announcement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSlice(s.announcements)
}

// AnnouncementsFor lists the announcements targeting a student. ok is false
// when the student is unknown.
func (s *Store) AnnouncementsFor(studentID string) (out []model.Announcement, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.studentLocked(studentID)
	if st == nil {
		return nil, false
	}
	out = []model.Announcement{}
	for _, a := range s.announcements {
		if a.Matches(*st) {
			out = append(out, a)
		}
	}
	return out, true
}

// CreateAnnouncement publishes a new announcement at the head of the list.
func (s *Store) CreateAnnouncement(in model.AnnouncementInput) model.Announcement {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := model.Announcement{
		ID:            s.nextID("ann"),
		Title:         in.Title,
		Content:       in.Content,
		Type:          in.Type,
		TargetGrades:  cloneSlice(in.TargetGrades),
		TargetClasses: cloneSlice(in.TargetClasses),
		TargetRegions: cloneSlice(in.TargetRegions),
		CreatedAt:     s.now(),
		ExpiresAt:     in.ExpiresAt,
	}
	s.announcements = slices.Insert(s.announcements, 0, a)
	s.persistLocked()
	slog.Info("created announcement", "id", a.ID, "type", a.Type)
	return a
}

// DeleteAnnouncement removes an announcement. Deleting a missing one does nothing.
func (s *Store) DeleteAnnouncement(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.announcements, func(a model.Announcement) bool { return a.ID == id })
	if i < 0 {
		return
	}
	s.announcements = slices.Delete(s.announcements, i, i+1)
	s.persistLocked()
}
