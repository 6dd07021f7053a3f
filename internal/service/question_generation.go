package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"interviewprep/internal/model"
)

// Metrics assigned to generated questions, which have no interview history
const (
	generatedFrequency          = 0.5
	generatedSuccessRate        = 0.7
	generatedAvgTimeToAnswer    = 5
	generatedFollowUpLikelihood = 0.3
)

// GenerateQuestions asks the generator for fresh questions tailored to a
// company and role. Results are caller-owned and never added to the corpus.
func (s *QuestionService) GenerateQuestions(ctx context.Context, req model.GenerationRequest) (*model.GenerationResult, error) {
	c, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	company, ok := s.catalog.Company(req.CompanyID)
	if !ok {
		return nil, companyNotFound(req.CompanyID)
	}
	role, ok := s.catalog.Role(req.RoleID)
	if !ok {
		return nil, roleNotFound(req.RoleID)
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = model.DifficultyIntermediate
	}
	if !difficulty.Valid() {
		return nil, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidRequest, req.Difficulty)
	}

	domains := make([]string, 0, len(req.Categories))
	for _, cat := range req.Categories {
		if !cat.Valid() {
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidRequest, cat)
		}
		domains = append(domains, string(cat))
	}
	domain := "general"
	if len(domains) > 0 {
		domain = strings.Join(domains, ", ")
	}

	if s.generator == nil {
		return nil, fmt.Errorf("%w: no generator configured", ErrGenerationFailed)
	}

	items, err := s.generator.Generate(ctx, model.GenerationPrompt{
		Company:    company.Name,
		Role:       role.Title,
		Domain:     domain,
		Difficulty: difficulty,
	})
	if err != nil {
		slog.Error("question generation failed",
			"company", req.CompanyID,
			"role", req.RoleID,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	now := s.now()
	questions := make([]model.Question, 0, len(items))
	for i, item := range items {
		tags := InferTags(item.Question, c.tags)
		questions = append(questions, model.Question{
			ID:            fmt.Sprintf("%s-%d-%d", req.CompanyID, now.UnixMilli(), i),
			Question:      item.Question,
			ExampleAnswer: item.Explanation,
			Category:      InferCategory(item.Question),
			Difficulty:    difficulty,
			Tags:          tags,
			PrimaryTag:    tags[0].ID,
			CompanyID:     req.CompanyID,
			RoleIDs:       []string{req.RoleID},
			CompanySpecific: model.CompanySpecific{
				InterviewRound:     model.RoundAny,
				Frequency:          generatedFrequency,
				SuccessRate:        generatedSuccessRate,
				AvgTimeToAnswer:    generatedAvgTimeToAnswer,
				FollowUpLikelihood: generatedFollowUpLikelihood,
			},
			Type:      model.QuestionTypeVerbal,
			CreatedAt: now,
			UpdatedAt: now,
			Source:    model.SourceAIGenerated,
			Verified:  false,
		})
	}

	patterns := make([]model.InterviewPattern, 0)
	if req.IncludePatterns {
		patterns = append(patterns, c.patterns[req.CompanyID]...)
	}

	slog.Info("generated questions",
		"company", req.CompanyID,
		"role", req.RoleID,
		"count", len(questions),
	)
	return &model.GenerationResult{Questions: questions, Patterns: patterns}, nil
}
