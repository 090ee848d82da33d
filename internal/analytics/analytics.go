// Package analytics derives per-student statistics from the result ledger.
package analytics

import (
	"math"
	"slices"

	"github.com/pavelanni/examcloud/internal/model"
)

// TagMastery is how often answers to questions carrying a tag were correct.
type TagMastery struct {
	Tag     string `json:"tag"`
	Correct int    `json:"correct"`
	Total   int    `json:"total"`
	// Mastery is the rounded percentage of correct answers.
	Mastery int `json:"mastery"`
}

// Mastery counts answers per tag over results. Every tag of an answered
// question is credited. Answers to questions that are not in exams are
// ignored; when two exams hold the same question id the later one wins.
// Tags are ordered by first appearance.
func Mastery(exams []*model.Exam, results []model.ExamResult) []TagMastery {
	questions := make(map[string]model.Question)
	for _, e := range exams {
		for _, q := range e.Questions {
			questions[q.ID] = q
		}
	}

	var order []string
	stats := make(map[string]*TagMastery)
	for _, r := range results {
		for _, a := range r.Answers {
			q, ok := questions[a.QuestionID]
			if !ok {
				continue
			}
			for _, tag := range q.Tags {
				m, ok := stats[tag]
				if !ok {
					m = &TagMastery{Tag: tag}
					stats[tag] = m
					order = append(order, tag)
				}
				m.Total++
				if a.IsCorrect {
					m.Correct++
				}
			}
		}
	}

	out := make([]TagMastery, 0, len(order))
	for _, tag := range order {
		m := *stats[tag]
		if m.Total > 0 {
			m.Mastery = int(math.Round(float64(m.Correct) / float64(m.Total) * 100))
		}
		out = append(out, m)
	}
	return out
}

// WeakTags returns up to n tags with the lowest mastery. Ties keep their
// original order.
func WeakTags(mastery []TagMastery, n int) []TagMastery {
	sorted := slices.Clone(mastery)
	slices.SortStableFunc(sorted, func(a, b TagMastery) int {
		return a.Mastery - b.Mastery
	})
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// Progress splits an assignment's targets by whether they have finished it.
type Progress struct {
	AssignmentID string   `json:"assignmentId"`
	Completed    []string `json:"completed"`
	Pending      []string `json:"pending"`
}

// AssignmentProgress reports which targets of a have a completing result.
func AssignmentProgress(a model.ExamAssignment, results []model.ExamResult) Progress {
	p := Progress{AssignmentID: a.ID, Completed: []string{}, Pending: []string{}}
	for _, sid := range a.TargetStudentIDs {
		if model.IsAssignmentCompleted(a, sid, results) {
			p.Completed = append(p.Completed, sid)
		} else {
			p.Pending = append(p.Pending, sid)
		}
	}
	return p
}
