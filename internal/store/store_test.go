package store

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/pavelanni/examcloud/internal/catalog"
	"github.com/pavelanni/examcloud/internal/model"
	"github.com/pavelanni/examcloud/internal/storage"
)

var testNow = time.Date(2026, 1, 18, 9, 0, 0, 0, time.UTC)

type memPersister struct {
	mu      sync.Mutex
	docs    map[string][]byte
	saves   int
	saveErr error
}

func newMemPersister() *memPersister {
	return &memPersister{docs: make(map[string][]byte)}
}

func (m *memPersister) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.docs[key], nil
}

func (m *memPersister) Save(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.docs[key] = value
	return nil
}

func (m *memPersister) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, key)
	return nil
}

func q(id, content string, d model.Difficulty, tags ...string) model.Question {
	return model.Question{ID: id, Type: model.TypeFill, Content: content, CorrectAnswer: "ans-" + id, Tags: tags, Difficulty: d}
}

// smallSeed has five distinct question contents spread over three exams, with
// content "A" appearing in both the school exam and the GSAT exam.
func smallSeed() *catalog.Seed {
	return &catalog.Seed{
		Schools: []model.School{{ID: "s01", Name: "建國中學", Region: "基北區", ExamCount: 1, IsFreeTrial: true}},
		Exams: []*model.Exam{
			{ID: "e1", ExamCategory: model.CategorySchool, SchoolID: "s01", Grade: "高一", Subject: "數學", Year: "114", Title: "School exam",
				Questions: []model.Question{
					q("q1", "A", model.DifficultyEasy, "機率", "古典機率"),
					q("q2", "B", model.DifficultyMedium, "統計"),
				}},
			{ID: "e2", ExamCategory: model.CategoryGSAT, Grade: "高中", Subject: "數學A", Year: "113", Title: "GSAT exam",
				Questions: []model.Question{
					q("q3", "A", model.DifficultyEasy, "機率"),
					q("q4", "C", model.DifficultyEasy, "機率", "獨立事件"),
					q("q5", "D", model.DifficultyHard, "條件機率"),
				}},
			{ID: "e3", ExamCategory: model.CategoryAST, Grade: "高中", Subject: "數學甲", Year: "113", Title: "AST exam",
				Questions: []model.Question{
					q("q6", "E", model.DifficultyEasy, "積分"),
				}},
		},
		Students: []*model.StudentUser{
			{ID: "st1", Name: "One", ClassName: "高一a班", Grade: "高一", Region: "基北區", Plan: model.PlanVIP, AssignedExams: []string{}, Assignments: []string{}},
			{ID: "st2", Name: "Two", ClassName: "高一a班", Grade: "高一", Region: "基北區", Plan: model.PlanVIP, AssignedExams: []string{}, Assignments: []string{}},
			{ID: "st3", Name: "Three", ClassName: "高三a班", Grade: "高三", Region: "中投區", Plan: model.PlanVIP, AssignedExams: []string{}, Assignments: []string{}},
		},
		Announcements: []model.Announcement{
			{ID: "ann1", Title: "all", TargetGrades: []string{}, TargetClasses: []string{}, TargetRegions: []string{}},
			{ID: "ann2", Title: "seniors", TargetGrades: []string{"高三"}, TargetClasses: []string{}, TargetRegions: []string{}},
		},
	}
}

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return testNow }), WithSeed(1)}, opts...)
	return New(smallSeed(), opts...)
}

func contents(qs []model.Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.Content
	}
	return out
}

func TestReadsCopyTopLevel(t *testing.T) {
	s := newTestStore(t)

	exams := s.Exams()
	exams[0] = &model.Exam{ID: "bogus"}
	if got := s.Exams()[0].ID; got != "e1" {
		t.Fatalf("Exams()[0].ID = %q after caller overwrote the returned slice, want e1", got)
	}

	// Nested state is shared with the store.
	s.ExamByID("e1").Title = "renamed"
	if got := s.Exams()[0].Title; got != "renamed" {
		t.Errorf("nested exam title = %q, want shared pointer", got)
	}

	if got := s.ExamByID("missing"); got != nil {
		t.Errorf("ExamByID(missing) = %v, want nil", got)
	}
	if got := len(s.ExamsBySchool("s01")); got != 1 {
		t.Errorf("len(ExamsBySchool(s01)) = %d, want 1", got)
	}
	if got := len(s.ExamsBySchool("nope")); got != 0 {
		t.Errorf("len(ExamsBySchool(nope)) = %d, want 0", got)
	}
}

func TestUpsertExam(t *testing.T) {
	s := newTestStore(t)

	created := s.UpsertExam(model.ExamInput{Title: "New exam"})
	if created.ID == "" || created.ID[0] != 'e' {
		t.Errorf("created id = %q, want e-prefixed", created.ID)
	}
	if created.ExamCategory != model.CategorySchool || created.SchoolID != "s01" ||
		created.Grade != "高一" || created.Subject != "數學" || created.Year != "114" || created.IsPremium {
		t.Errorf("defaults not applied: %+v", created)
	}
	if created.CreatedAt == nil || !created.CreatedAt.Equal(testNow) {
		t.Errorf("CreatedAt = %v, want %v", created.CreatedAt, testNow)
	}
	if created.Questions == nil || len(created.Questions) != 0 {
		t.Errorf("Questions = %v, want empty", created.Questions)
	}
	if first := s.Exams()[0]; first.ID != created.ID {
		t.Errorf("first exam = %q, want new exam first", first.ID)
	}

	grade := "高二"
	updated := s.UpsertExam(model.ExamInput{ID: "e1", Title: "Renamed", Grade: &grade})
	if updated.ID != "e1" || updated.Title != "Renamed" || updated.Grade != "高二" {
		t.Errorf("merge result = %+v", updated)
	}
	if updated.Subject != "數學" || len(updated.Questions) != 2 {
		t.Errorf("unset fields changed: %+v", updated)
	}
	if got := len(s.Exams()); got != 4 {
		t.Errorf("len(Exams) = %d, want 4", got)
	}
}

func TestUpsertExamOwnsQuestions(t *testing.T) {
	s := newTestStore(t)

	in := []model.Question{
		q("", "new one", model.DifficultyEasy, "機率"),
		q("keep", "new two", model.DifficultyHard, "統計"),
	}
	in[0].Source = &model.QuestionSource{ExamCategory: model.CategoryGSAT}
	s.UpsertExam(model.ExamInput{ID: "e1", Title: "Replaced", Questions: in})

	in[1].Content = "changed by caller"

	e, ok := s.ExamView("e1")
	if !ok || len(e.Questions) != 2 {
		t.Fatalf("ExamView(e1) = %+v, %v", e, ok)
	}
	if e.Questions[0].ID == "" || e.Questions[0].ID[0] != 'q' {
		t.Errorf("missing id not generated: %q", e.Questions[0].ID)
	}
	if e.Questions[0].Source != nil {
		t.Errorf("Source = %+v, want dropped", e.Questions[0].Source)
	}
	if e.Questions[1].ID != "keep" || e.Questions[1].Content != "new two" {
		t.Errorf("second question = %+v, want its own copy", e.Questions[1])
	}

	if _, err := s.UpdateQuestion(e.Questions[0].ID, model.QuestionPatch{}); err != nil {
		t.Errorf("generated id not indexed: %v", err)
	}
}

func TestViewsAreDeepCopies(t *testing.T) {
	s := newTestStore(t)

	e, ok := s.ExamView("e1")
	if !ok {
		t.Fatal("ExamView(e1) not found")
	}
	e.Questions[0].Tags[0] = "changed"
	e.Questions = append(e.Questions, model.Question{ID: "extra"})
	if got := s.ExamByID("e1"); len(got.Questions) != 2 || got.Questions[0].Tags[0] != "機率" {
		t.Errorf("stored exam changed through a view: %+v", got.Questions)
	}
	if _, ok := s.ExamView("missing"); ok {
		t.Error("ExamView(missing) ok = true")
	}

	if got := len(s.ExamViews("")); got != 3 {
		t.Errorf("len(ExamViews(\"\")) = %d, want 3", got)
	}
	if got := s.ExamViews("s01"); len(got) != 1 || got[0].ID != "e1" {
		t.Errorf("ExamViews(s01) = %v", got)
	}

	st, ok := s.StudentView("st1")
	if !ok {
		t.Fatal("StudentView(st1) not found")
	}
	st.Assignments = append(st.Assignments, "ghost")
	if got := s.StudentByID("st1"); len(got.Assignments) != 0 {
		t.Errorf("stored student changed through a view: %v", got.Assignments)
	}
	if got := len(s.StudentViews()); got != 3 {
		t.Errorf("len(StudentViews()) = %d, want 3", got)
	}
}

func TestAddQuestion(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddQuestion("missing", q("", "X", model.DifficultyEasy, "x"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("AddQuestion(missing) error = %v, want ErrNotFound", err)
	}

	added, err := s.AddQuestion("e3", q("ignored", "F", model.DifficultyMedium, "微分"))
	if err != nil {
		t.Fatalf("AddQuestion: %v", err)
	}
	if added.ID == "ignored" || added.ID[0] != 'q' {
		t.Errorf("added id = %q, want generated q id", added.ID)
	}
	e3 := s.ExamByID("e3")
	if n := len(e3.Questions); n != 2 || e3.Questions[1].ID != added.ID {
		t.Errorf("e3 questions = %v, want new question appended", e3.Questions)
	}

	if _, err := s.UpdateQuestion(added.ID, model.QuestionPatch{}); err != nil {
		t.Errorf("UpdateQuestion on added question: %v", err)
	}
}

func TestUpdateQuestion(t *testing.T) {
	s := newTestStore(t)

	content := "A2"
	got, err := s.UpdateQuestion("q1", model.QuestionPatch{Content: &content})
	if err != nil {
		t.Fatalf("UpdateQuestion: %v", err)
	}
	if got.ID != "q1" || got.Content != "A2" || got.Difficulty != model.DifficultyEasy {
		t.Errorf("UpdateQuestion() = %+v", got)
	}
	if c := s.ExamByID("e1").Questions[0].Content; c != "A2" {
		t.Errorf("stored content = %q, want A2", c)
	}

	_, err = s.UpdateQuestion("missing", model.QuestionPatch{Content: &content})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateQuestion(missing) error = %v, want ErrNotFound", err)
	}
}

func TestQuestionIndexRepair(t *testing.T) {
	s := newTestStore(t)

	// Point the index at the wrong exam and at a missing exam.
	s.questionIndex["q1"] = "e3"
	s.questionIndex["q4"] = "gone"

	content := "fixed"
	if _, err := s.UpdateQuestion("q1", model.QuestionPatch{Content: &content}); err != nil {
		t.Fatalf("UpdateQuestion with stale index: %v", err)
	}
	if s.questionIndex["q1"] != "e1" {
		t.Errorf("index[q1] = %q, want repaired to e1", s.questionIndex["q1"])
	}
	s.DeleteQuestion("q4")
	if n := len(s.ExamByID("e2").Questions); n != 2 {
		t.Errorf("e2 has %d questions after delete, want 2", n)
	}
}

func TestDeleteQuestion(t *testing.T) {
	p := newMemPersister()
	s := newTestStore(t, WithPersister(p))

	s.DeleteQuestion("missing")
	if p.saves != 0 {
		t.Errorf("deleting a missing question saved %d times", p.saves)
	}

	s.DeleteQuestion("q2")
	e1 := s.ExamByID("e1")
	if len(e1.Questions) != 1 || e1.Questions[0].ID != "q1" {
		t.Errorf("e1 questions = %v", e1.Questions)
	}
	if _, err := s.UpdateQuestion("q2", model.QuestionPatch{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateQuestion(deleted) error = %v, want ErrNotFound", err)
	}
	s.DeleteQuestion("q2")
}

func TestAllQuestions(t *testing.T) {
	s := newTestStore(t)
	all := s.AllQuestions()
	if len(all) != 6 {
		t.Fatalf("len(AllQuestions) = %d, want 6", len(all))
	}
	if all[2].ExamID != "e2" || all[2].ExamTitle != "GSAT exam" || all[2].Question.ID != "q3" {
		t.Errorf("AllQuestions()[2] = %+v", all[2])
	}
}

func TestQuestionBankDedup(t *testing.T) {
	s := newTestStore(t)
	bank := s.QuestionBank()

	want := []string{"A", "B", "C", "D", "E"}
	got := contents(bank)
	if len(got) != len(want) {
		t.Fatalf("bank contents = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bank[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	first := bank[0]
	if first.ID != "q1" {
		t.Errorf("duplicate content kept %q, want first occurrence q1", first.ID)
	}
	src := first.Source
	if src == nil || src.ExamCategory != model.CategorySchool || src.SchoolName != "建國中學" || src.ExamTitle != "School exam" || src.Year != "114" {
		t.Errorf("source = %+v", src)
	}
	if s.ExamByID("e1").Questions[0].Source != nil {
		t.Error("bank projection attached source to the stored question")
	}
}

func TestFilterComposition(t *testing.T) {
	s := newTestStore(t)
	f := model.QuestionFilter{Chapter: "機率", Difficulty: model.DifficultyEasy, ExamCategory: model.CategoryGSAT}

	got := s.FilterQuestions(f)
	returned := make(map[string]bool)
	for _, q := range got {
		returned[q.ID] = true
		if !hasTagContaining(q.Tags, "機率") || q.Difficulty != model.DifficultyEasy || q.Source.ExamCategory != model.CategoryGSAT {
			t.Errorf("returned question %s fails the filter", q.ID)
		}
	}
	for _, q := range s.QuestionBank() {
		if !returned[q.ID] && MatchesFilter(q, f) {
			t.Errorf("bank question %s matches but was not returned", q.ID)
		}
	}
	// Content "A" first appears in the school exam, so only q4 is left.
	if len(got) != 1 || got[0].ID != "q4" {
		t.Errorf("FilterQuestions() = %v, want [q4]", contents(got))
	}
}

func TestFilterWildcards(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name   string
		filter model.QuestionFilter
		want   int
	}{
		{"empty filter", model.QuestionFilter{}, 5},
		{"mixed and all", model.QuestionFilter{Difficulty: model.DifficultyMixed, ExamCategory: model.CategoryAll}, 5},
		{"chapter substring", model.QuestionFilter{Chapter: "機率"}, 3},
		{"hard", model.QuestionFilter{Difficulty: model.DifficultyHard}, 1},
		{"ast", model.QuestionFilter{ExamCategory: model.CategoryAST}, 1},
		{"junior high", model.QuestionFilter{ExamCategory: model.CategoryJuniorHigh}, 0},
		{"limit", model.QuestionFilter{Limit: 2}, 2},
		{"limit above size", model.QuestionFilter{Limit: 50}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(s.FilterQuestions(tt.filter)); got != tt.want {
				t.Errorf("len(FilterQuestions(%+v)) = %d, want %d", tt.filter, got, tt.want)
			}
		})
	}
}

func TestFilterQualifyingSetIsDeterministic(t *testing.T) {
	s := newTestStore(t)
	f := model.QuestionFilter{Difficulty: model.DifficultyEasy}

	a := contents(s.QualifyingQuestions(f))
	b := contents(s.QualifyingQuestions(f))
	if len(a) != 3 || len(a) != len(b) {
		t.Fatalf("qualifying sets = %v and %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("qualifying[%d] = %q then %q", i, a[i], b[i])
		}
	}

	qualifies := make(map[string]bool)
	for _, c := range a {
		qualifies[c] = true
	}
	orders := make(map[string]bool)
	for range 20 {
		got := contents(s.FilterQuestions(f))
		if len(got) != len(a) {
			t.Fatalf("FilterQuestions returned %d items, want %d", len(got), len(a))
		}
		key := ""
		for _, c := range got {
			if !qualifies[c] {
				t.Errorf("FilterQuestions returned non-qualifying %q", c)
			}
			key += c
		}
		orders[key] = true
	}
	if len(orders) < 2 {
		t.Errorf("20 shuffles produced a single ordering %v", orders)
	}
}

func TestFilterSeededOrder(t *testing.T) {
	f := model.QuestionFilter{}
	a := contents(newTestStore(t, WithSeed(42)).FilterQuestions(f))
	b := contents(newTestStore(t, WithSeed(42)).FilterQuestions(f))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed gave %v and %v", a, b)
		}
	}
}

func TestCustomExamIsFrozen(t *testing.T) {
	s := newTestStore(t)
	picked := s.QualifyingQuestions(model.QuestionFilter{Chapter: "機率"})

	manifest := s.CreateCustomExam("機率練習", "機率", model.DifficultyMixed, picked)
	if len(manifest.QuestionIDs) != len(picked) || manifest.QuestionIDs[0] != "q1" {
		t.Errorf("manifest ids = %v", manifest.QuestionIDs)
	}
	if !manifest.CreatedAt.Equal(testNow) {
		t.Errorf("CreatedAt = %v, want %v", manifest.CreatedAt, testNow)
	}

	content := "changed"
	if _, err := s.UpdateQuestion("q1", model.QuestionPatch{Content: &content, Tags: []string{"other"}}); err != nil {
		t.Fatal(err)
	}
	s.DeleteQuestion("q4")
	picked[0].Content = "caller edit"

	view := s.CustomExam(manifest.ID)
	if view == nil {
		t.Fatalf("CustomExam(%s) = nil", manifest.ID)
	}
	if got := view.Questions[0].Content; got != "A" {
		t.Errorf("frozen content = %q, want A", got)
	}
	if got := view.Questions[0].Tags; len(got) != 2 || got[0] != "機率" {
		t.Errorf("frozen tags = %v", got)
	}
	if len(view.Questions) != 3 {
		t.Errorf("frozen exam has %d questions, want 3", len(view.Questions))
	}
	if view.Questions[0].Source == nil || view.Questions[0].Source.ExamCategory != model.CategorySchool {
		t.Errorf("frozen source = %+v", view.Questions[0].Source)
	}

	view.Questions[0].Content = "view edit"
	if got := s.CustomExam(manifest.ID).Questions[0].Content; got != "A" {
		t.Errorf("editing a view changed the snapshot to %q", got)
	}

	if s.CustomExam("missing") != nil {
		t.Error("CustomExam(missing) != nil")
	}
	if got := len(s.CustomExams()); got != 1 {
		t.Errorf("len(CustomExams) = %d, want 1", got)
	}
}

func TestResolve(t *testing.T) {
	s := newTestStore(t)
	c := s.CreateCustomExam("mine", "積分", model.DifficultyEasy, s.QualifyingQuestions(model.QuestionFilter{Chapter: "積分"}))

	tests := []struct {
		name      string
		ref       model.ExamRef
		wantTitle string
		wantN     int
		wantNil   bool
	}{
		{"ordinary", model.Ordinary("e2"), "GSAT exam", 3, false},
		{"custom", model.Custom(c.ID), "mine", 1, false},
		{"custom id as ordinary", model.Ordinary(c.ID), "", 0, true},
		{"missing", model.Ordinary("nope"), "", 0, true},
		{"missing custom", model.Custom("nope"), "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Resolve(tt.ref)
			if tt.wantNil {
				if got != nil {
					t.Errorf("Resolve(%s) = %+v, want nil", tt.ref, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("Resolve(%s) = nil", tt.ref)
			}
			if got.Title != tt.wantTitle || len(got.Questions) != tt.wantN {
				t.Errorf("Resolve(%s) = %q with %d questions, want %q with %d", tt.ref, got.Title, len(got.Questions), tt.wantTitle, tt.wantN)
			}
		})
	}
}

func TestCreateAssignmentFanOut(t *testing.T) {
	s := newTestStore(t)
	in := model.AssignmentInput{
		Name:             "Week 1",
		ExamID:           model.Ordinary("e1"),
		ExamTitle:        "School exam",
		TargetStudentIDs: []string{"st1", "st2", "ghost"},
		DueDate:          "2026-02-01",
	}

	a1 := s.CreateAssignment(in)
	a2 := s.CreateAssignment(in)
	if a1.ID == a2.ID {
		t.Fatalf("two assignments share id %q", a1.ID)
	}
	if !a1.CreatedAt.Equal(testNow) || a1.DueDate != "2026-02-01" {
		t.Errorf("assignment = %+v", a1)
	}

	for _, id := range []string{"st1", "st2"} {
		st := s.StudentByID(id)
		if len(st.Assignments) != 2 || st.Assignments[0] != a1.ID || st.Assignments[1] != a2.ID {
			t.Errorf("%s assignments = %v, want [%s %s]", id, st.Assignments, a1.ID, a2.ID)
		}
		if len(st.AssignedExams) != 1 || st.AssignedExams[0] != "e1" {
			t.Errorf("%s assignedExams = %v, want [e1]", id, st.AssignedExams)
		}
	}
	if st := s.StudentByID("st3"); len(st.Assignments) != 0 || len(st.AssignedExams) != 0 {
		t.Errorf("untargeted student was linked: %+v", st)
	}
	if got := len(s.Assignments()); got != 2 {
		t.Errorf("len(Assignments) = %d, want 2", got)
	}
	if got := s.AssignmentByID(a1.ID); got == nil || got.Name != "Week 1" {
		t.Errorf("AssignmentByID(%s) = %+v", a1.ID, got)
	}
}

func TestCreateAssignmentCustomRef(t *testing.T) {
	s := newTestStore(t)
	c := s.CreateCustomExam("mine", "", model.DifficultyMixed, nil)

	s.CreateAssignment(model.AssignmentInput{Name: "custom", ExamID: model.Custom(c.ID), TargetStudentIDs: []string{"st1"}})
	st := s.StudentByID("st1")
	if want := model.CustomPrefix + c.ID; len(st.AssignedExams) != 1 || st.AssignedExams[0] != want {
		t.Errorf("assignedExams = %v, want [%s]", st.AssignedExams, want)
	}
}

func TestDeleteAssignment(t *testing.T) {
	s := newTestStore(t)
	keep := s.CreateAssignment(model.AssignmentInput{Name: "keep", ExamID: model.Ordinary("e2"), TargetStudentIDs: []string{"st1"}})
	drop := s.CreateAssignment(model.AssignmentInput{Name: "drop", ExamID: model.Ordinary("e1"), TargetStudentIDs: []string{"st1", "st2"}})

	s.DeleteAssignment(drop.ID)
	s.DeleteAssignment("missing")

	if s.AssignmentByID(drop.ID) != nil {
		t.Error("deleted assignment still listed")
	}
	st1 := s.StudentByID("st1")
	if len(st1.Assignments) != 1 || st1.Assignments[0] != keep.ID {
		t.Errorf("st1 assignments = %v, want [%s]", st1.Assignments, keep.ID)
	}
	// The legacy list keeps the retracted exam.
	if len(st1.AssignedExams) != 2 {
		t.Errorf("st1 assignedExams = %v, want both exams", st1.AssignedExams)
	}
	st2 := s.StudentByID("st2")
	if len(st2.Assignments) != 0 || len(st2.AssignedExams) != 1 {
		t.Errorf("st2 = %v / %v", st2.Assignments, st2.AssignedExams)
	}

	active := s.ActiveAssignedExams("st1")
	if len(active) != 1 || active[0] != "e2" {
		t.Errorf("ActiveAssignedExams(st1) = %v, want [e2]", active)
	}
	if got := s.ActiveAssignedExams("st2"); len(got) != 0 {
		t.Errorf("ActiveAssignedExams(st2) = %v, want empty", got)
	}
	if got := s.ActiveAssignedExams("ghost"); got != nil {
		t.Errorf("ActiveAssignedExams(ghost) = %v, want nil", got)
	}
}

func TestStudentAssignmentsCompletion(t *testing.T) {
	s := newTestStore(t)
	a := s.CreateAssignment(model.AssignmentInput{Name: "hw", ExamID: model.Ordinary("e1"), TargetStudentIDs: []string{"st1", "st2"}})

	status, ok := s.StudentAssignments("st1")
	if !ok || len(status) != 1 || status[0].Completed {
		t.Fatalf("StudentAssignments(st1) = %+v, %v", status, ok)
	}

	// st1 submits by exam reference, st2 by assignment id for another exam.
	s.PostResult(model.ExamResult{ExamID: model.Ordinary("e1"), UserID: "st1", Score: 1, Total: 2})
	s.PostResult(model.ExamResult{ExamID: model.Ordinary("e3"), UserID: "st2", AssignmentID: a.ID, Score: 0, Total: 1})
	// Someone else's result does not count.
	s.PostResult(model.ExamResult{ExamID: model.Ordinary("e1"), UserID: "st3", Score: 2, Total: 2})

	for _, id := range []string{"st1", "st2"} {
		status, _ := s.StudentAssignments(id)
		if len(status) != 1 || !status[0].Completed {
			t.Errorf("StudentAssignments(%s) = %+v, want completed", id, status)
		}
	}

	if _, ok := s.StudentAssignments("ghost"); ok {
		t.Error("StudentAssignments(ghost) ok = true")
	}
	if got, ok := s.StudentAssignments("st3"); !ok || len(got) != 0 {
		t.Errorf("StudentAssignments(st3) = %v, %v, want empty", got, ok)
	}
}

func TestPostResult(t *testing.T) {
	s := newTestStore(t)
	questions := s.Resolve(model.Ordinary("e2")).Questions
	answers := []model.AnswerRecord{
		{QuestionID: questions[0].ID, Answer: " ANS-Q3 ", IsCorrect: true},
		{QuestionID: questions[1].ID, Answer: "no", IsCorrect: false},
	}

	got := s.PostResult(model.ExamResult{ExamID: model.Ordinary("e2"), Score: 1, Total: 3, Answers: answers})
	if got.ID == "" || got.ID[0] != 'r' {
		t.Errorf("result id = %q, want r-prefixed", got.ID)
	}
	if got.UserID != catalog.DefaultStudentID {
		t.Errorf("UserID = %q, want %q", got.UserID, catalog.DefaultStudentID)
	}
	if !got.SubmittedAt.Equal(testNow) {
		t.Errorf("SubmittedAt = %v, want %v", got.SubmittedAt, testNow)
	}

	given := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	second := s.PostResult(model.ExamResult{ID: "mine", ExamID: model.Custom("c1"), UserID: "st1", Score: 0, Total: 0, SubmittedAt: given})
	if second.ID != "mine" || !second.SubmittedAt.Equal(given) {
		t.Errorf("explicit fields overwritten: %+v", second)
	}

	all := s.Results()
	if len(all) != 2 || all[0].ID != "mine" || all[1].ID != got.ID {
		t.Fatalf("Results() order = %v", all)
	}
	if all[1].Score != 1 || all[1].Total != 3 || len(all[1].Answers) != 2 {
		t.Errorf("stored result = %+v", all[1])
	}
	if !all[0].ExamID.IsCustom() {
		t.Errorf("custom ref lost: %v", all[0].ExamID)
	}

	answers[0].Answer = "edited"
	if s.Results()[1].Answers[0].Answer == "edited" {
		t.Error("ledger shares answers with the caller")
	}
	if got := len(s.ResultsByUser("st1")); got != 1 {
		t.Errorf("len(ResultsByUser(st1)) = %d, want 1", got)
	}
}

func TestAnnouncements(t *testing.T) {
	s := newTestStore(t)

	senior, ok := s.AnnouncementsFor("st3")
	if !ok || len(senior) != 2 {
		t.Errorf("AnnouncementsFor(st3) = %v, %v, want both", senior, ok)
	}
	junior, _ := s.AnnouncementsFor("st1")
	if len(junior) != 1 || junior[0].ID != "ann1" {
		t.Errorf("AnnouncementsFor(st1) = %v, want [ann1]", junior)
	}
	if _, ok := s.AnnouncementsFor("ghost"); ok {
		t.Error("AnnouncementsFor(ghost) ok = true")
	}

	a := s.CreateAnnouncement(model.AnnouncementInput{
		Title:         "北區",
		Type:          model.AnnouncementImportant,
		TargetGrades:  []string{"高一"},
		TargetRegions: []string{"基北區"},
	})
	if s.Announcements()[0].ID != a.ID {
		t.Error("new announcement is not first")
	}
	if got, _ := s.AnnouncementsFor("st1"); len(got) != 2 {
		t.Errorf("AnnouncementsFor(st1) after create = %d items, want 2", len(got))
	}
	if got, _ := s.AnnouncementsFor("st3"); len(got) != 2 {
		t.Errorf("AnnouncementsFor(st3) after create = %d items, want 2", len(got))
	}

	s.DeleteAnnouncement(a.ID)
	s.DeleteAnnouncement("missing")
	if got := len(s.Announcements()); got != 2 {
		t.Errorf("len(Announcements) = %d, want 2", got)
	}
}

func TestExportResults(t *testing.T) {
	s := newTestStore(t)
	a := s.CreateAssignment(model.AssignmentInput{Name: "hw", ExamID: model.Ordinary("e1"), TargetStudentIDs: []string{"st1"}})
	s.PostResult(model.ExamResult{ExamID: model.Ordinary("e1"), UserID: "st1", AssignmentID: a.ID, Score: 1, Total: 2})
	s.PostResult(model.ExamResult{ExamID: model.Custom("nope"), UserID: "ghost"})

	exp := s.ExportResults()
	if exp.Count != 2 || !exp.ExportedAt.Equal(testNow) {
		t.Fatalf("export header = %d at %v", exp.Count, exp.ExportedAt)
	}
	r := exp.Results[1]
	if r.StudentName != "One" || r.ClassName != "高一a班" || r.ExamTitle != "School exam" || r.AssignmentName != "hw" || r.ExamID != "e1" {
		t.Errorf("export row = %+v", r)
	}
	if r := exp.Results[0]; r.StudentName != "" || r.ExamTitle != "" || r.ExamID != "custom:nope" {
		t.Errorf("unknown refs row = %+v", r)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	s := newTestStore(t, WithPersister(p))

	c := s.CreateCustomExam("mine", "機率", model.DifficultyEasy, s.QualifyingQuestions(model.QuestionFilter{Chapter: "機率"}))
	s.CreateAssignment(model.AssignmentInput{Name: "hw", ExamID: model.Custom(c.ID), TargetStudentIDs: []string{"st1"}})
	s.UpsertExam(model.ExamInput{Title: "added"})
	s.PostResult(model.ExamResult{ExamID: model.Custom(c.ID), UserID: "st1", Score: 2, Total: 3})
	if p.saves != 4 {
		t.Errorf("saves = %d, want one per mutation", p.saves)
	}

	before, err := json.Marshal(s.Document())
	if err != nil {
		t.Fatal(err)
	}

	restored := New(smallSeed(), WithPersister(p))
	if err := restored.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	after, err := json.Marshal(restored.Document())
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Errorf("restored document differs:\n%s\n%s", before, after)
	}

	status, _ := restored.StudentAssignments("st1")
	if len(status) != 1 || !status[0].Completed {
		t.Errorf("restored assignment status = %+v", status)
	}
	if v := restored.CustomExam(c.ID); v == nil || len(v.Questions) != 3 {
		t.Errorf("restored custom exam = %+v", v)
	}
	if got := len(restored.Schools()); got != 1 {
		t.Errorf("schools come from the seed, got %d", got)
	}
}

func TestLoadPartialDocument(t *testing.T) {
	p := newMemPersister()
	p.docs[StorageKey] = []byte(`{"results": [], "assignments": [{"id": "a1", "name": "x", "examId": "custom:c9", "targetStudentIds": ["st1"]}]}`)

	seed := smallSeed()
	seed.Results = []model.ExamResult{{ID: "seeded", ExamID: model.Ordinary("e1")}}
	s := New(seed, WithPersister(p))
	if err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := len(s.Results()); got != 0 {
		t.Errorf("results not replaced, have %d", got)
	}
	if got := len(s.Exams()); got != 3 {
		t.Errorf("exams should stay from seed, have %d", got)
	}
	a := s.AssignmentByID("a1")
	if a == nil || a.ExamID != model.Custom("c9") {
		t.Errorf("loaded assignment = %+v", a)
	}
}

func TestLoadUnreadableDocument(t *testing.T) {
	p := newMemPersister()
	p.docs[StorageKey] = []byte("{not json")

	s := newTestStore(t, WithPersister(p))
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v, want seed fallback", err)
	}
	if got := len(s.Exams()); got != 3 {
		t.Errorf("len(Exams) = %d, want seed", got)
	}
}

func TestPersistFailureKeepsChange(t *testing.T) {
	p := newMemPersister()
	p.saveErr = errors.New("disk full")
	s := newTestStore(t, WithPersister(p))

	r := s.PostResult(model.ExamResult{ExamID: model.Ordinary("e1")})
	if got := s.Results(); len(got) != 1 || got[0].ID != r.ID {
		t.Errorf("Results() = %v after failed save", got)
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	s := newTestStore(t, WithPersister(p))
	s.PostResult(model.ExamResult{ExamID: model.Ordinary("e1")})
	s.DeleteQuestion("q1")

	if err := s.Reset(ctx, smallSeed()); err != nil {
		t.Fatal(err)
	}
	if len(s.Results()) != 0 || len(s.ExamByID("e1").Questions) != 2 {
		t.Error("Reset did not restore the seed")
	}
	if _, ok := p.docs[StorageKey]; ok {
		t.Error("Reset left the stored document")
	}
	if _, err := s.UpdateQuestion("q1", model.QuestionPatch{}); err != nil {
		t.Errorf("index not rebuilt after Reset: %v", err)
	}
}

func TestSQLitePersistence(t *testing.T) {
	ctx := context.Background()
	db, err := storage.Open(ctx, storage.DriverSQLite, filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s := newTestStore(t, WithPersister(db))
	a := s.CreateAssignment(model.AssignmentInput{Name: "hw", ExamID: model.Ordinary("e2"), TargetStudentIDs: []string{"st2"}})

	restored := New(smallSeed(), WithPersister(db))
	if err := restored.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if restored.AssignmentByID(a.ID) == nil {
		t.Error("assignment not restored from sqlite")
	}
	if st := restored.StudentByID("st2"); len(st.Assignments) != 1 {
		t.Errorf("student links not restored: %+v", st)
	}
}
