package service

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"interviewprep/internal/config"
	"interviewprep/internal/model"
)

// QuizAPIGenerator asks an external quiz-generation endpoint for questions.
// The endpoint receives the prompt fields as JSON and answers with
// {"questions": [{"question", "explanation"}]} or a bare array.
type QuizAPIGenerator struct {
	client *resty.Client
	url    string
}

// NewQuizAPIGenerator creates a quiz API generator
func NewQuizAPIGenerator(cfg *config.AIConfig) *QuizAPIGenerator {
	client := resty.New().
		SetTimeout(cfg.Timeout()).
		SetHeader("Accept", "application/json")
	if cfg.QuizAPIKey != "" {
		client.SetAuthToken(cfg.QuizAPIKey)
	}
	return &QuizAPIGenerator{client: client, url: cfg.QuizAPIURL}
}

func (g *QuizAPIGenerator) Generate(ctx context.Context, p model.GenerationPrompt) ([]model.GeneratedItem, error) {
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(p).
		Post(g.url)
	if err != nil {
		return nil, fmt.Errorf("quiz api request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("quiz api returned status %d", resp.StatusCode())
	}
	return parseGeneratedItems(resp.String())
}
