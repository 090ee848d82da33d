package model

import "slices"

// ExamInput is a partial exam for upserts. Nil fields are left unchanged on
// existing exams and take defaults on new ones.
type ExamInput struct {
	ID           string        `json:"id,omitempty"`
	ExamCategory *ExamCategory `json:"examCategory,omitempty"`
	SchoolID     *string       `json:"schoolId,omitempty"`
	Grade        *string       `json:"grade,omitempty"`
	Subject      *string       `json:"subject,omitempty"`
	Year         *string       `json:"year,omitempty"`
	Semester     *string       `json:"semester,omitempty"`
	ExamNo       *string       `json:"examNo,omitempty"`
	Title        string        `json:"title" validate:"required"`
	IsPremium    *bool         `json:"isPremium,omitempty"`
	Questions    []Question    `json:"questions,omitempty"`
}

// ApplyTo merges the set fields into e.
func (in ExamInput) ApplyTo(e *Exam) {
	setIf(&e.ExamCategory, in.ExamCategory)
	setIf(&e.SchoolID, in.SchoolID)
	setIf(&e.Grade, in.Grade)
	setIf(&e.Subject, in.Subject)
	setIf(&e.Year, in.Year)
	setIf(&e.Semester, in.Semester)
	setIf(&e.ExamNo, in.ExamNo)
	setIf(&e.IsPremium, in.IsPremium)
	if in.Title != "" {
		e.Title = in.Title
	}
	if in.Questions != nil {
		e.Questions = in.Questions
	}
}

// QuestionPatch holds the fields of a question update.
type QuestionPatch struct {
	Type             *QuestionType `json:"type,omitempty"`
	Content          *string       `json:"content,omitempty"`
	Options          []string      `json:"options,omitempty"`
	CorrectAnswer    *string       `json:"correctAnswer,omitempty"`
	TextExplanation  *string       `json:"textExplanation,omitempty"`
	VideoURL         *string       `json:"videoUrl,omitempty"`
	Images           []string      `json:"images,omitempty"`
	Tags             []string      `json:"tags,omitempty"`
	Difficulty       *Difficulty   `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
	MaxScore         *float64      `json:"maxScore,omitempty" validate:"omitempty,gte=0"`
	GradingCriteria  *string       `json:"gradingCriteria,omitempty"`
	AllowImageUpload *bool         `json:"allowImageUpload,omitempty"`
}

// ApplyTo merges the set fields into q. The question id never changes.
func (p QuestionPatch) ApplyTo(q *Question) {
	setIf(&q.Type, p.Type)
	setIf(&q.Content, p.Content)
	setIf(&q.CorrectAnswer, p.CorrectAnswer)
	setIf(&q.TextExplanation, p.TextExplanation)
	setIf(&q.VideoURL, p.VideoURL)
	setIf(&q.Difficulty, p.Difficulty)
	setIf(&q.MaxScore, p.MaxScore)
	setIf(&q.GradingCriteria, p.GradingCriteria)
	setIf(&q.AllowImageUpload, p.AllowImageUpload)
	if p.Options != nil {
		q.Options = slices.Clone(p.Options)
	}
	if p.Images != nil {
		q.Images = slices.Clone(p.Images)
	}
	if p.Tags != nil {
		q.Tags = slices.Clone(p.Tags)
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// AssignmentInput describes a new assignment.
type AssignmentInput struct {
	Name             string   `json:"name" validate:"notblank"`
	ExamID           ExamRef  `json:"examId"`
	ExamTitle        string   `json:"examTitle"`
	TargetStudentIDs []string `json:"targetStudentIds" validate:"min=1,dive,notblank"`
	DueDate          string   `json:"dueDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// AnnouncementInput describes a new announcement.
type AnnouncementInput struct {
	Title         string           `json:"title" validate:"notblank"`
	Content       string           `json:"content"`
	Type          AnnouncementType `json:"type" validate:"omitempty,oneof=info new promo important"`
	TargetGrades  []string         `json:"targetGrades"`
	TargetClasses []string         `json:"targetClasses"`
	TargetRegions []string         `json:"targetRegions"`
	ExpiresAt     string           `json:"expiresAt,omitempty"`
}
