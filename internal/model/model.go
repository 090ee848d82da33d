package model

import (
	"context"
	"slices"
	"time"
)

// Role represents a portal user's access level.
type Role string

const (
	// RoleStudent takes exams and sees assignments.
	RoleStudent Role = "student"
	// RoleCreator edits exams, builds custom exams and assigns them.
	RoleCreator Role = "creator"
	// RoleAdmin manages announcements and students.
	RoleAdmin Role = "admin"
)

// ParseRole returns the role for s and whether s names a known role.
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleStudent, RoleCreator, RoleAdmin:
		return r, true
	}
	return "", false
}

type roleCtxKey struct{}

// ContextWithRole stores the caller's role in the request context.
func ContextWithRole(ctx context.Context, r Role) context.Context {
	return context.WithValue(ctx, roleCtxKey{}, r)
}

// RoleFromContext retrieves the caller's role, or the empty role.
func RoleFromContext(ctx context.Context) Role {
	r, _ := ctx.Value(roleCtxKey{}).(Role)
	return r
}

// QuestionType is the answer format of a question.
type QuestionType string

const (
	TypeMCQ     QuestionType = "MCQ"
	TypeTF      QuestionType = "TF"
	TypeFill    QuestionType = "Fill"
	TypeCalc    QuestionType = "Calc"
	TypeProof   QuestionType = "Proof"
	TypeWritten QuestionType = "Written"
)

// IsOpenEnded reports whether answers of this type need more than string matching.
func (t QuestionType) IsOpenEnded() bool {
	return t == TypeCalc || t == TypeProof || t == TypeWritten
}

// Difficulty represents question difficulty level.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	// DifficultyMixed is only meaningful in filters and custom exams.
	DifficultyMixed Difficulty = "mixed"
)

// ExamCategory groups exams by the kind of test they come from.
type ExamCategory string

const (
	CategorySchool     ExamCategory = "school"
	CategoryJuniorHigh ExamCategory = "junior_high"
	CategoryGSAT       ExamCategory = "gsat"
	CategoryAST        ExamCategory = "ast"
	// CategoryAll disables category filtering.
	CategoryAll ExamCategory = "all"
)

// Plan is a student's subscription plan.
type Plan string

const (
	PlanFree Plan = "free"
	PlanVIP  Plan = "vip"
)

// AnnouncementType controls how an announcement is highlighted.
type AnnouncementType string

const (
	AnnouncementInfo      AnnouncementType = "info"
	AnnouncementNew       AnnouncementType = "new"
	AnnouncementPromo     AnnouncementType = "promo"
	AnnouncementImportant AnnouncementType = "important"
)

// School is a high school whose past exams are in the catalog.
type School struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Region string `json:"region"`
	// ExamCount is computed when the catalog is built and not maintained afterwards.
	ExamCount   int  `json:"examCount"`
	IsFreeTrial bool `json:"isFreeTrial"`
}

// QuestionSource describes the exam a bank question was taken from.
type QuestionSource struct {
	ExamCategory ExamCategory `json:"examCategory"`
	SchoolID     string       `json:"schoolId,omitempty"`
	SchoolName   string       `json:"schoolName,omitempty"`
	Year         string       `json:"year,omitempty"`
	Grade        string       `json:"grade,omitempty"`
	Subject      string       `json:"subject,omitempty"`
	ExamTitle    string       `json:"examTitle,omitempty"`
}

// Question is a single exam question. Tags[0] is the canonical chapter.
type Question struct {
	ID               string          `json:"id"`
	Type             QuestionType    `json:"type"`
	Content          string          `json:"content"`
	Options          []string        `json:"options,omitempty"`
	CorrectAnswer    string          `json:"correctAnswer"`
	TextExplanation  string          `json:"textExplanation"`
	VideoURL         string          `json:"videoUrl,omitempty"`
	Images           []string        `json:"images,omitempty"`
	Tags             []string        `json:"tags"`
	Difficulty       Difficulty      `json:"difficulty"`
	MaxScore         float64         `json:"maxScore,omitempty"`
	GradingCriteria  string          `json:"gradingCriteria,omitempty"`
	AllowImageUpload bool            `json:"allowImageUpload,omitempty"`
	Source           *QuestionSource `json:"source,omitempty"`
}

// Chapter returns the canonical chapter tag, or "" for an untagged question.
func (q Question) Chapter() string {
	if len(q.Tags) == 0 {
		return ""
	}
	return q.Tags[0]
}

// Points returns the full score of q, 1 when MaxScore is unset.
func (q Question) Points() float64 {
	if q.MaxScore > 0 {
		return q.MaxScore
	}
	return 1
}

// Clone returns a deep copy of q.
func (q Question) Clone() Question {
	c := q
	c.Options = slices.Clone(q.Options)
	c.Images = slices.Clone(q.Images)
	c.Tags = slices.Clone(q.Tags)
	if q.Source != nil {
		src := *q.Source
		c.Source = &src
	}
	return c
}

// Exam owns its embedded questions.
type Exam struct {
	ID           string       `json:"id"`
	ExamCategory ExamCategory `json:"examCategory"`
	SchoolID     string       `json:"schoolId,omitempty"`
	Grade        string       `json:"grade"`
	Subject      string       `json:"subject"`
	Year         string       `json:"year"`
	Semester     string       `json:"semester,omitempty"`
	ExamNo       string       `json:"examNo,omitempty"`
	Title        string       `json:"title"`
	IsPremium    bool         `json:"isPremium"`
	Questions    []Question   `json:"questions"`
	CreatedAt    *time.Time   `json:"createdAt,omitempty"`
}

// Clone returns a deep copy of e.
func (e Exam) Clone() Exam {
	c := e
	if e.CreatedAt != nil {
		t := *e.CreatedAt
		c.CreatedAt = &t
	}
	if e.Questions != nil {
		c.Questions = make([]Question, len(e.Questions))
		for i, q := range e.Questions {
			c.Questions[i] = q.Clone()
		}
	}
	return c
}

// CustomExam is the manifest of a frozen practice exam.
type CustomExam struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Chapter     string     `json:"chapter"`
	Difficulty  Difficulty `json:"difficulty"`
	QuestionIDs []string   `json:"questionIds"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// CustomExamSnapshot is the stored form of a custom exam: its manifest plus
// deep copies of the questions taken when it was built.
type CustomExamSnapshot struct {
	CustomExam
	Questions []Question `json:"questions"`
}

// CustomExamView is what a custom exam lookup returns.
type CustomExamView struct {
	Exam      CustomExam `json:"exam"`
	Questions []Question `json:"questions"`
}

// ExamAssignment binds one exam, ordinary or custom, to a set of students.
type ExamAssignment struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	ExamID           ExamRef   `json:"examId"`
	ExamTitle        string    `json:"examTitle"`
	TargetStudentIDs []string  `json:"targetStudentIds"`
	CreatedAt        time.Time `json:"createdAt"`
	DueDate          string    `json:"dueDate,omitempty"`
}

// Targets reports whether studentID is one of the assignment's targets.
func (a ExamAssignment) Targets(studentID string) bool {
	return slices.Contains(a.TargetStudentIDs, studentID)
}

// StudentUser is a student account.
type StudentUser struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	School         string `json:"school"`
	ClassName      string `json:"className"`
	Grade          string `json:"grade"`
	Region         string `json:"region"`
	Plan           Plan   `json:"plan"`
	JoinDate       string `json:"joinDate"`
	LastActiveDate string `json:"lastActiveDate,omitempty"`
	ExamsTaken     int    `json:"examsTaken,omitempty"`
	AvgScore       int    `json:"avgScore,omitempty"`
	// AssignedExams is the legacy exam reference list. It is appended to on
	// assignment but never retracted.
	AssignedExams []string `json:"assignedExams"`
	Assignments   []string `json:"assignments"`
}

// Clone returns a deep copy of s.
func (s StudentUser) Clone() StudentUser {
	c := s
	c.AssignedExams = slices.Clone(s.AssignedExams)
	c.Assignments = slices.Clone(s.Assignments)
	return c
}

// AIGrading is an LLM's assessment of an open-ended answer.
type AIGrading struct {
	Score      float64   `json:"score"`
	Feedback   string    `json:"feedback"`
	Confidence float64   `json:"confidence"`
	GradedAt   time.Time `json:"gradedAt"`
}

// AnswerRecord is one answered question inside a result.
type AnswerRecord struct {
	QuestionID string     `json:"questionId"`
	Answer     string     `json:"answer"`
	IsCorrect  bool       `json:"isCorrect"`
	Score      *float64   `json:"score,omitempty"`
	MaxScore   *float64   `json:"maxScore,omitempty"`
	ImageURL   string     `json:"imageUrl,omitempty"`
	AIGrading  *AIGrading `json:"aiGrading,omitempty"`
}

// ExamResult is an immutable record of one submission.
type ExamResult struct {
	ID           string         `json:"id,omitempty"`
	ExamID       ExamRef        `json:"examId"`
	SchoolID     string         `json:"schoolId,omitempty"`
	Score        int            `json:"score"`
	Total        int            `json:"total"`
	Answers      []AnswerRecord `json:"answers"`
	SubmittedAt  time.Time      `json:"submittedAt"`
	UserID       string         `json:"userId,omitempty"`
	AssignmentID string         `json:"assignmentId,omitempty"`
}

// Announcement is a notice shown on student dashboards.
type Announcement struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Content       string           `json:"content"`
	Type          AnnouncementType `json:"type"`
	TargetGrades  []string         `json:"targetGrades"`
	TargetClasses []string         `json:"targetClasses"`
	TargetRegions []string         `json:"targetRegions"`
	CreatedAt     time.Time        `json:"createdAt"`
	ExpiresAt     string           `json:"expiresAt,omitempty"`
}

// Matches reports whether the announcement targets the student. Each target
// list is an allow-list that matches everyone when empty.
func (a Announcement) Matches(s StudentUser) bool {
	return allows(a.TargetGrades, s.Grade) &&
		allows(a.TargetClasses, s.ClassName) &&
		allows(a.TargetRegions, s.Region)
}

func allows(list []string, v string) bool {
	return len(list) == 0 || slices.Contains(list, v)
}

// QuestionFilter selects questions from the bank. Zero values disable a criterion.
type QuestionFilter struct {
	Chapter      string       `json:"chapter,omitempty"`
	Difficulty   Difficulty   `json:"difficulty,omitempty"`
	ExamCategory ExamCategory `json:"examCategory,omitempty"`
	Limit        int          `json:"limit,omitempty"`
}

// ExamQuestion is a catalog question listed with the exam that owns it.
type ExamQuestion struct {
	Question  Question `json:"question"`
	ExamID    string   `json:"examId"`
	ExamTitle string   `json:"examTitle"`
}

// IsAssignmentCompleted reports whether any result shows studentID finished
// the assignment. Some submission paths only stamp the exam reference and
// others only the assignment id, so both are accepted.
func IsAssignmentCompleted(a ExamAssignment, studentID string, results []ExamResult) bool {
	for _, r := range results {
		if r.UserID != studentID {
			continue
		}
		if r.ExamID == a.ExamID || (r.AssignmentID != "" && r.AssignmentID == a.ID) {
			return true
		}
	}
	return false
}
