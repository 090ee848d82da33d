package analytics

import (
	"testing"

	"github.com/pavelanni/examcloud/internal/model"
)

func testExams() []*model.Exam {
	return []*model.Exam{
		{ID: "e1", Questions: []model.Question{
			{ID: "q1", Tags: []string{"機率", "古典機率"}},
			{ID: "q2", Tags: []string{"統計"}},
		}},
		{ID: "e2", Questions: []model.Question{
			{ID: "q3", Tags: []string{"機率"}},
		}},
	}
}

func answer(id string, correct bool) model.AnswerRecord {
	return model.AnswerRecord{QuestionID: id, IsCorrect: correct}
}

func TestMastery(t *testing.T) {
	results := []model.ExamResult{
		{Answers: []model.AnswerRecord{answer("q1", true), answer("q2", false), answer("gone", true)}},
		{Answers: []model.AnswerRecord{answer("q3", false), answer("q1", true)}},
	}

	got := Mastery(testExams(), results)
	want := []TagMastery{
		{Tag: "機率", Correct: 2, Total: 3, Mastery: 67},
		{Tag: "古典機率", Correct: 2, Total: 2, Mastery: 100},
		{Tag: "統計", Correct: 0, Total: 1, Mastery: 0},
	}
	if len(got) != len(want) {
		t.Fatalf("Mastery() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Mastery()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestMasteryEmpty(t *testing.T) {
	if got := Mastery(testExams(), nil); len(got) != 0 {
		t.Errorf("Mastery(no results) = %v, want empty", got)
	}
}

func TestWeakTags(t *testing.T) {
	m := []TagMastery{
		{Tag: "a", Mastery: 80},
		{Tag: "b", Mastery: 20},
		{Tag: "c", Mastery: 50},
		{Tag: "d", Mastery: 20},
	}

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{"top three", 3, []string{"b", "d", "c"}},
		{"all", 10, []string{"b", "d", "c", "a"}},
		{"none", 0, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeakTags(m, tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("WeakTags(%d) = %v, want %v", tt.n, got, tt.want)
			}
			for i, tag := range tt.want {
				if got[i].Tag != tag {
					t.Errorf("WeakTags(%d)[%d] = %q, want %q", tt.n, i, got[i].Tag, tag)
				}
			}
		})
	}
	if m[0].Tag != "a" {
		t.Error("WeakTags reordered its input")
	}
}

func TestAssignmentProgress(t *testing.T) {
	a := model.ExamAssignment{ID: "a1", ExamID: model.Custom("c1"), TargetStudentIDs: []string{"st1", "st2", "st3"}}
	results := []model.ExamResult{
		{UserID: "st1", ExamID: model.Custom("c1")},
		{UserID: "st2", ExamID: model.Ordinary("c1")},
		{UserID: "st3", ExamID: model.Ordinary("e9"), AssignmentID: "a1"},
	}

	p := AssignmentProgress(a, results)
	if len(p.Completed) != 2 || p.Completed[0] != "st1" || p.Completed[1] != "st3" {
		t.Errorf("Completed = %v, want [st1 st3]", p.Completed)
	}
	if len(p.Pending) != 1 || p.Pending[0] != "st2" {
		t.Errorf("Pending = %v, want [st2]", p.Pending)
	}
}
