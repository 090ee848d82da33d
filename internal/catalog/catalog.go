// Package catalog builds the static content the portal starts from: schools,
// past exams, student accounts, announcements and a handful of results.
package catalog

import (
	"log/slog"
	"time"

	"github.com/pavelanni/examcloud/internal/model"
)

// Seed is a freshly built catalog. Every call to Build returns new values, so
// stores built from different seeds share no state.
type Seed struct {
	Schools       []model.School
	Exams         []*model.Exam
	Students      []*model.StudentUser
	Announcements []model.Announcement
	Results       []model.ExamResult
}

// Build generates the catalog. Exams are ordered by category batch (school,
// junior high, GSAT, AST) and School.ExamCount is computed from them.
func Build(now time.Time) *Seed {
	sch := schools()

	g := &generator{next: 1}
	var exams []*model.Exam
	exams = append(exams, g.schoolExams(sch)...)
	exams = append(exams, g.juniorHighExams()...)
	exams = append(exams, g.gsatExams()...)
	exams = append(exams, g.astExams()...)

	counts := make(map[string]int)
	for _, e := range exams {
		if e.SchoolID != "" {
			counts[e.SchoolID]++
		}
	}
	for i := range sch {
		sch[i].ExamCount = counts[sch[i].ID]
	}

	slog.Debug("built catalog", "schools", len(sch), "exams", len(exams))

	return &Seed{
		Schools:       sch,
		Exams:         exams,
		Students:      students(),
		Announcements: announcements(now),
		Results:       results(exams, now),
	}
}

