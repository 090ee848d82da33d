// Package client talks to a running portal over its HTTP API. Every non-2xx
// response is returned as a *TransportError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pavelanni/examcloud/internal/model"
)

const roleHeader = "X-Examcloud-Role"

// TransportError is a non-2xx API response.
type TransportError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *TransportError) Error() string {
	if e.Body == "" {
		return "examcloud api: " + e.Status
	}
	return fmt.Sprintf("examcloud api: %s: %s", e.Status, e.Body)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.StatusCode == http.StatusNotFound
}

// Client is an API client bound to one base URL and caller role.
type Client struct {
	baseURL string
	http    *http.Client
	role    model.Role
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithRole sends role on every request.
func WithRole(role model.Role) Option {
	return func(c *Client) { c.role = role }
}

// New creates a client for the API served at baseURL, e.g.
// "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/api",
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.role != "" {
		req.Header.Set(roleHeader, string(c.role))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &TransportError{StatusCode: resp.StatusCode, Status: resp.Status, Body: strings.TrimSpace(string(b))}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func get[T any](ctx context.Context, c *Client, path string) (T, error) {
	var v T
	err := c.do(ctx, http.MethodGet, path, nil, &v)
	return v, err
}

func (c *Client) Schools(ctx context.Context) ([]model.School, error) {
	return get[[]model.School](ctx, c, "/schools")
}

// Exams lists the catalog, or one school's exams when schoolID is set.
func (c *Client) Exams(ctx context.Context, schoolID string) ([]model.Exam, error) {
	path := "/exams"
	if schoolID != "" {
		path += "?schoolId=" + url.QueryEscape(schoolID)
	}
	return get[[]model.Exam](ctx, c, path)
}

func (c *Client) Exam(ctx context.Context, id string) (model.Exam, error) {
	return get[model.Exam](ctx, c, "/exams/"+url.PathEscape(id))
}

func (c *Client) UpsertExam(ctx context.Context, in model.ExamInput) (model.Exam, error) {
	var e model.Exam
	err := c.do(ctx, http.MethodPost, "/exams/upsert", in, &e)
	return e, err
}

func (c *Client) AddQuestion(ctx context.Context, examID string, q model.Question) (model.Question, error) {
	var out model.Question
	err := c.do(ctx, http.MethodPost, "/exams/"+url.PathEscape(examID)+"/questions", q, &out)
	return out, err
}

func (c *Client) UpdateQuestion(ctx context.Context, id string, p model.QuestionPatch) (model.Question, error) {
	var out model.Question
	err := c.do(ctx, http.MethodPatch, "/questions/"+url.PathEscape(id), p, &out)
	return out, err
}

func (c *Client) DeleteQuestion(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/questions/"+url.PathEscape(id), nil, nil)
}

func (c *Client) QuestionBank(ctx context.Context) ([]model.Question, error) {
	return get[[]model.Question](ctx, c, "/questions/bank")
}

func (c *Client) FilterQuestions(ctx context.Context, f model.QuestionFilter) ([]model.Question, error) {
	q := url.Values{}
	if f.Chapter != "" {
		q.Set("chapter", f.Chapter)
	}
	if f.Difficulty != "" {
		q.Set("difficulty", string(f.Difficulty))
	}
	if f.ExamCategory != "" {
		q.Set("examCategory", string(f.ExamCategory))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	path := "/questions/filter"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	return get[[]model.Question](ctx, c, path)
}

// CreateCustomExam freezes questions into a custom exam and returns its manifest.
func (c *Client) CreateCustomExam(ctx context.Context, title, chapter string, difficulty model.Difficulty, questions []model.Question) (model.CustomExam, error) {
	in := map[string]any{
		"title":      title,
		"chapter":    chapter,
		"difficulty": difficulty,
		"questions":  questions,
	}
	var out model.CustomExam
	err := c.do(ctx, http.MethodPost, "/custom-exams", in, &out)
	return out, err
}

func (c *Client) CustomExam(ctx context.Context, id string) (model.CustomExamView, error) {
	return get[model.CustomExamView](ctx, c, "/custom-exams/"+url.PathEscape(id))
}

func (c *Client) Assignments(ctx context.Context) ([]model.ExamAssignment, error) {
	return get[[]model.ExamAssignment](ctx, c, "/assignments")
}

func (c *Client) Assignment(ctx context.Context, id string) (model.ExamAssignment, error) {
	return get[model.ExamAssignment](ctx, c, "/assignments/"+url.PathEscape(id))
}

func (c *Client) CreateAssignment(ctx context.Context, in model.AssignmentInput) (model.ExamAssignment, error) {
	var out model.ExamAssignment
	err := c.do(ctx, http.MethodPost, "/assignments", in, &out)
	return out, err
}

func (c *Client) DeleteAssignment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/assignments/"+url.PathEscape(id), nil, nil)
}

// Results lists the ledger, or one student's results when userID is set.
func (c *Client) Results(ctx context.Context, userID string) ([]model.ExamResult, error) {
	path := "/results"
	if userID != "" {
		path += "?userId=" + url.QueryEscape(userID)
	}
	return get[[]model.ExamResult](ctx, c, path)
}

func (c *Client) PostResult(ctx context.Context, r model.ExamResult) (model.ExamResult, error) {
	var out model.ExamResult
	err := c.do(ctx, http.MethodPost, "/results", r, &out)
	return out, err
}

// Submission is an answer sheet to be scored by the server.
type Submission struct {
	ExamID       model.ExamRef     `json:"examId"`
	UserID       string            `json:"userId,omitempty"`
	AssignmentID string            `json:"assignmentId,omitempty"`
	Answers      map[string]string `json:"answers"`
	Images       map[string]string `json:"images,omitempty"`
}

// Submit scores a submission on the server and returns the recorded result.
func (c *Client) Submit(ctx context.Context, s Submission) (model.ExamResult, error) {
	var out model.ExamResult
	err := c.do(ctx, http.MethodPost, "/submissions", s, &out)
	return out, err
}

func (c *Client) Students(ctx context.Context) ([]model.StudentUser, error) {
	return get[[]model.StudentUser](ctx, c, "/students")
}

// StudentAssignment is an assignment with the student's completion state.
type StudentAssignment struct {
	model.ExamAssignment
	Completed bool `json:"completed"`
}

func (c *Client) StudentAssignments(ctx context.Context, studentID string) ([]StudentAssignment, error) {
	return get[[]StudentAssignment](ctx, c, "/students/"+url.PathEscape(studentID)+"/assignments")
}

func (c *Client) StudentAnnouncements(ctx context.Context, studentID string) ([]model.Announcement, error) {
	return get[[]model.Announcement](ctx, c, "/students/"+url.PathEscape(studentID)+"/announcements")
}

func (c *Client) Announcements(ctx context.Context) ([]model.Announcement, error) {
	return get[[]model.Announcement](ctx, c, "/announcements")
}

func (c *Client) CreateAnnouncement(ctx context.Context, in model.AnnouncementInput) (model.Announcement, error) {
	var out model.Announcement
	err := c.do(ctx, http.MethodPost, "/announcements", in, &out)
	return out, err
}

func (c *Client) DeleteAnnouncement(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/announcements/"+url.PathEscape(id), nil, nil)
}

// ExportResults downloads the enriched result export. It needs the admin role.
func (c *Client) ExportResults(ctx context.Context) (model.ResultsExport, error) {
	return get[model.ResultsExport](ctx, c, "/admin/export/results")
}
