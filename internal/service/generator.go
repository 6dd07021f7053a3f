package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tidwall/gjson"

	"interviewprep/internal/config"
	"interviewprep/internal/model"
)

// Generator produces raw question items for a company and role. Backends
// honour ctx cancellation and never retry.
type Generator interface {
	Generate(ctx context.Context, prompt model.GenerationPrompt) ([]model.GeneratedItem, error)
}

// NewGenerator builds the backend selected by cfg. Without a configured
// provider it returns a MockGenerator.
func NewGenerator(ctx context.Context, cfg *config.AIConfig) (Generator, error) {
	if cfg == nil || !cfg.IsEnabled() {
		slog.Info("question generator: mock (no AI provider configured)")
		return NewMockGenerator(), nil
	}

	switch cfg.Provider {
	case config.ProviderGemini:
		slog.Info("question generator: gemini", "model", cfg.Model)
		return NewGeminiGenerator(ctx, cfg)
	case config.ProviderQuizAPI:
		slog.Info("question generator: quiz api", "url", cfg.QuizAPIURL)
		return NewQuizAPIGenerator(cfg), nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %q", cfg.Provider)
	}
}

// MockGenerator returns canned items built from the prompt
type MockGenerator struct{}

// NewMockGenerator creates a deterministic generator
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

func (g *MockGenerator) Generate(ctx context.Context, p model.GenerationPrompt) ([]model.GeneratedItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []model.GeneratedItem{
		{
			Question:    fmt.Sprintf("Tell me about a time you delivered a %s project as a %s at %s.", p.Domain, p.Role, p.Company),
			Explanation: "Use the STAR format and quantify the outcome.",
		},
		{
			Question:    fmt.Sprintf("How would you design a system that %s relies on for %s work?", p.Company, p.Domain),
			Explanation: "Start from requirements, then sketch components, data flow and scaling limits.",
		},
		{
			Question:    fmt.Sprintf("Implement a function a %s would need for %s problems, then analyse its complexity.", p.Role, p.Domain),
			Explanation: "Clarify inputs, write a working version first, then optimise.",
		},
	}, nil
}

// buildGenerationPrompt renders the instruction sent to LLM backends
func buildGenerationPrompt(p model.GenerationPrompt) string {
	return fmt.Sprintf(`Generate realistic interview questions. Return ONLY valid JSON:
{
  "questions": [{"question": "...", "explanation": "..."}]
}

Company: %s
Role: %s
Focus areas: %s
Difficulty: %s

Generate 5 questions this company is known to ask for this role. The explanation says what a strong answer covers.`,
		p.Company, p.Role, p.Domain, p.Difficulty)
}

// parseGeneratedItems accepts a bare array of items or an object with a
// "questions" array, optionally wrapped in a markdown code fence. Items
// without question text are skipped.
func parseGeneratedItems(raw string) ([]model.GeneratedItem, error) {
	text := stripCodeFence(raw)
	if !gjson.Valid(text) {
		return nil, fmt.Errorf("generator returned invalid JSON")
	}

	root := gjson.Parse(text)
	list := root
	if !root.IsArray() {
		list = root.Get("questions")
		if !list.IsArray() {
			return nil, fmt.Errorf("generator response has no questions array")
		}
	}

	items := make([]model.GeneratedItem, 0)
	list.ForEach(func(_, v gjson.Result) bool {
		q := strings.TrimSpace(v.Get("question").String())
		if q == "" {
			return true
		}
		items = append(items, model.GeneratedItem{
			Question:    q,
			Explanation: strings.TrimSpace(v.Get("explanation").String()),
		})
		return true
	})
	return items, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:] // drop the language hint
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
