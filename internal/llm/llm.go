// Package llm grades open-ended answers with an OpenAI-compatible chat API.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pavelanni/examcloud/internal/llm/prompts"
	"github.com/pavelanni/examcloud/internal/model"
)

// gradeResponse is the JSON object the grading prompt asks for.
type gradeResponse struct {
	Score      float64 `json:"score"`
	Feedback   string  `json:"feedback"`
	Confidence float64 `json:"confidence"`
}

// Client wraps an OpenAI-compatible API client.
type Client struct {
	api     *openai.Client
	model   string
	variant prompts.PromptVariant
	now     func() time.Time
}

// New creates a new LLM client. The prompt templates must be loaded with
// prompts.Load before grading.
func New(baseURL, apiKey, modelName string, variant prompts.PromptVariant) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if variant == "" {
		variant = prompts.PromptStandard
	}
	return &Client{
		api:     openai.NewClientWithConfig(config),
		model:   modelName,
		variant: variant,
		now:     time.Now,
	}
}

// GradeWritten asks the LLM to score one answer to an open-ended question.
// The returned score is within [0, q.Points()] and the confidence within [0, 1].
func (c *Client) GradeWritten(ctx context.Context, q model.Question, answer string, hasImage bool) (model.AIGrading, error) {
	prompt, err := prompts.BuildGradePrompt(c.variant, q, answer, hasImage)
	if err != nil {
		return model.AIGrading{}, fmt.Errorf("build grading prompt: %w", err)
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.1,
	})
	if err != nil {
		return model.AIGrading{}, fmt.Errorf("LLM grading API call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return model.AIGrading{}, fmt.Errorf("LLM returned no choices for grading")
	}

	raw := resp.Choices[0].Message.Content
	slog.Debug("LLM grading response", "question", q.ID, "raw", raw)

	g, err := parseGrade(raw, q.Points())
	if err != nil {
		return model.AIGrading{}, err
	}
	g.GradedAt = c.now()
	return g, nil
}

// Ping checks that the endpoint answers a model listing.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.api.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

func parseGrade(raw string, maxScore float64) (model.AIGrading, error) {
	var r gradeResponse
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return model.AIGrading{}, fmt.Errorf("parse grading response: %w (raw: %s)", err, raw)
	}
	return model.AIGrading{
		Score:      clamp(r.Score, 0, maxScore),
		Feedback:   r.Feedback,
		Confidence: clamp(r.Confidence, 0, 1),
	}, nil
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
