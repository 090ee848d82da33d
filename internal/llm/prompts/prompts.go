// Package prompts renders the grading prompts sent to the LLM.
package prompts

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"text/template"
	"unicode/utf8"

	"github.com/pavelanni/examcloud/internal/model"
)

// Files holds the built-in prompt templates.
//
//go:embed templates/*.txt
var Files embed.FS

const maxAnswerRunes = 10000

var (
	studentAnswerRegex      = regexp.MustCompile(`(?i)</?\s*student-answer\b[^>]*>`)
	systemInstructionsRegex = regexp.MustCompile(`(?i)</?\s*system-instructions\b[^>]*>`)
)

// PromptVariant represents a grading prompt variant.
type PromptVariant string

const (
	// PromptStrict only credits fully justified steps.
	PromptStrict PromptVariant = "strict"
	// PromptStandard is the default grading variant.
	PromptStandard PromptVariant = "standard"
	// PromptLenient credits the right idea in practice exams.
	PromptLenient PromptVariant = "lenient"
)

var validVariants = map[PromptVariant]bool{
	PromptStrict:   true,
	PromptStandard: true,
	PromptLenient:  true,
}

var (
	loadOnce       sync.Once
	loadErr        error
	gradeTemplates map[PromptVariant]*template.Template
)

// IsValidVariant checks if a prompt variant name is valid.
func IsValidVariant(v string) bool {
	return validVariants[PromptVariant(v)]
}

// GradeData holds template data for grading prompts.
type GradeData struct {
	QuestionType    model.QuestionType
	Content         string
	MaxScore        string
	Criteria        string
	ReferenceAnswer string
	Answer          string
	HasImage        bool
}

// Load parses templates/grade_<variant>.txt from fsys. Only the first call
// has any effect.
func Load(fsys fs.FS) error {
	loadOnce.Do(func() {
		gradeTemplates = make(map[PromptVariant]*template.Template)
		for _, v := range []PromptVariant{PromptStrict, PromptStandard, PromptLenient} {
			name := "templates/grade_" + string(v) + ".txt"
			content, err := fs.ReadFile(fsys, name)
			if err != nil {
				loadErr = fmt.Errorf("read prompt file %s: %w", name, err)
				return
			}
			tmpl, err := template.New(string(v)).Parse(string(content))
			if err != nil {
				loadErr = fmt.Errorf("parse prompt template %s: %w", name, err)
				return
			}
			gradeTemplates[v] = tmpl
		}
	})
	return loadErr
}

// BuildGradePrompt renders the grading prompt for one answer to q.
func BuildGradePrompt(variant PromptVariant, q model.Question, answer string, hasImage bool) (string, error) {
	if gradeTemplates == nil {
		if loadErr != nil {
			return "", fmt.Errorf("templates load failed: %w", loadErr)
		}
		return "", errors.New("templates not initialized: call Load first")
	}
	tmpl, ok := gradeTemplates[variant]
	if !ok {
		return "", errors.New("invalid prompt variant: " + string(variant))
	}

	data := GradeData{
		QuestionType:    q.Type,
		Content:         q.Content,
		MaxScore:        strconv.FormatFloat(q.Points(), 'f', -1, 64),
		Criteria:        q.GradingCriteria,
		ReferenceAnswer: strings.TrimSpace(q.CorrectAnswer + "\n" + q.TextExplanation),
		Answer:          sanitizeAnswer(answer),
		HasImage:        hasImage,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func sanitizeAnswer(answer string) string {
	answer = studentAnswerRegex.ReplaceAllString(answer, "")
	answer = systemInstructionsRegex.ReplaceAllString(answer, "")
	answer = strings.TrimSpace(answer)

	if answer == "" {
		return "[No answer provided]"
	}

	if utf8.RuneCountInString(answer) > maxAnswerRunes {
		runes := []rune(answer)
		answer = string(runes[:maxAnswerRunes]) + "\n\n[Answer truncated due to length]"
	}
	return answer
}
