// Package grading scores submitted answers against a question's correct answer.
//
// Matching is exact after trimming and lower-casing both sides. It is not
// semantic: "4/5" and "0.8" are different answers.
package grading

import (
	"strings"

	"github.com/pavelanni/examcloud/internal/model"
)

// Normalize trims surrounding whitespace and lower-cases s.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsCorrect reports whether answer matches q's correct answer. A question
// without a correct answer is never answered correctly.
func IsCorrect(q model.Question, answer string) bool {
	if strings.TrimSpace(q.CorrectAnswer) == "" {
		return false
	}
	return Normalize(answer) == Normalize(q.CorrectAnswer)
}

// Outcome is a scored answer sheet.
type Outcome struct {
	Score   int
	Total   int
	Answers []model.AnswerRecord
}

// Score grades answers, keyed by question id, against every question in
// order. Unanswered questions count as wrong. Total is the number of questions.
func Score(questions []model.Question, answers map[string]string) Outcome {
	out := Outcome{Total: len(questions), Answers: make([]model.AnswerRecord, 0, len(questions))}
	for _, q := range questions {
		a := answers[q.ID]
		rec := model.AnswerRecord{
			QuestionID: q.ID,
			Answer:     a,
			IsCorrect:  IsCorrect(q, a),
		}
		if q.MaxScore > 0 {
			maxScore := q.MaxScore
			got := 0.0
			if rec.IsCorrect {
				got = maxScore
			}
			rec.Score = &got
			rec.MaxScore = &maxScore
		}
		if rec.IsCorrect {
			out.Score++
		}
		out.Answers = append(out.Answers, rec)
	}
	return out
}

// Recount recomputes the score after answers were regraded.
func (o *Outcome) Recount() {
	o.Score = 0
	for _, a := range o.Answers {
		if a.IsCorrect {
			o.Score++
		}
	}
}

// ApplyAI records an AI grading on rec. The answer counts as correct only
// when the AI awarded the full score of q.
func ApplyAI(rec *model.AnswerRecord, q model.Question, g model.AIGrading) {
	full := q.Points()
	got := g.Score
	rec.AIGrading = &g
	rec.Score = &got
	rec.MaxScore = &full
	rec.IsCorrect = got >= full
}
