package model

import "time"

// ResultsExport is the top-level JSON structure for result export.
type ResultsExport struct {
	ExportedAt time.Time       `json:"exported_at"`
	Count      int             `json:"count"`
	Results    []StudentResult `json:"results"`
}

// StudentResult holds one submission with the names a reader needs.
type StudentResult struct {
	ResultID       string         `json:"result_id"`
	UserID         string         `json:"user_id"`
	StudentName    string         `json:"student_name,omitempty"`
	ClassName      string         `json:"class_name,omitempty"`
	ExamID         string         `json:"exam_id"`
	ExamTitle      string         `json:"exam_title,omitempty"`
	AssignmentID   string         `json:"assignment_id,omitempty"`
	AssignmentName string         `json:"assignment_name,omitempty"`
	Score          int            `json:"score"`
	Total          int            `json:"total"`
	SubmittedAt    time.Time      `json:"submitted_at"`
	Answers        []AnswerRecord `json:"answers"`
}

// ExamImport is one exam in an import file.
type ExamImport struct {
	ExamInput
	Questions []Question `json:"questions"`
}
