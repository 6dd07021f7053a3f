package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"interviewprep/internal/catalog"
	"interviewprep/internal/model"
	"interviewprep/internal/seed"
)

var (
	tagProblemSolving = model.Tag{ID: "problem-solving", Name: "Problem Solving", Category: model.TagCategoryTechnical}
	tagLeadership     = model.Tag{ID: "leadership", Name: "Leadership", Category: model.TagCategoryBehavioral}
	tagScalability    = model.Tag{ID: "scalability", Name: "Scalability", Category: model.TagCategoryTechnical}
	tagAlgorithms     = model.Tag{ID: "algorithms", Name: "Algorithms", Category: model.TagCategoryTechnical}
)

func minutes(n int) *int { return &n }

type questionSpec struct {
	id         string
	company    string
	category   model.Category
	difficulty model.Difficulty
	tags       []model.Tag
	roles      []string
	round      model.InterviewRound
	qtype      model.QuestionType
	frequency  float64
	success    float64
	timeLimit  *int
	verified   bool
}

func (s questionSpec) build() model.Question {
	created := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return model.Question{
		ID:         s.id,
		Question:   "Question " + s.id,
		Category:   s.category,
		Difficulty: s.difficulty,
		Tags:       s.tags,
		PrimaryTag: s.tags[0].ID,
		CompanyID:  s.company,
		RoleIDs:    s.roles,
		CompanySpecific: model.CompanySpecific{
			InterviewRound:     s.round,
			Frequency:          s.frequency,
			SuccessRate:        s.success,
			AvgTimeToAnswer:    4,
			FollowUpLikelihood: 0.5,
		},
		Type:      s.qtype,
		TimeLimit: s.timeLimit,
		CreatedAt: created,
		UpdatedAt: created,
		Source:    model.SourceInterviewData,
		Verified:  s.verified,
	}
}

// testDataset has two companies with questions. The catalog additionally
// knows "initech" and the "data-scientist" role, neither of which has any.
func testDataset() *seed.Dataset {
	acme := []questionSpec{
		{"a1", "acme", model.CategoryBehavioral, model.DifficultyBeginner, []model.Tag{tagLeadership}, []string{"swe", "pm"}, model.RoundPhone, model.QuestionTypeVerbal, 0.9, 0.8, minutes(10), true},
		{"a2", "acme", model.CategorySystemDesign, model.DifficultyAdvanced, []model.Tag{tagScalability, tagProblemSolving}, []string{"swe"}, model.RoundOnsite, model.QuestionTypeWhiteboard, 0.6, 0.4, minutes(45), true},
		{"a3", "acme", model.CategoryCoding, model.DifficultyIntermediate, []model.Tag{tagAlgorithms}, []string{"swe"}, model.RoundVideo, model.QuestionTypeCoding, 0.9, 0.5, nil, false},
		{"a4", "acme", model.CategoryTechnical, model.DifficultyExpert, []model.Tag{tagScalability}, []string{"pm"}, model.RoundAny, model.QuestionTypeVerbal, 0.2, 0.6, minutes(20), false},
	}
	globex := []questionSpec{
		{"g1", "globex", model.CategoryCoding, model.DifficultyAdvanced, []model.Tag{tagAlgorithms, tagProblemSolving}, []string{"swe"}, model.RoundOnsite, model.QuestionTypeCoding, 0.7, 0.3, minutes(30), true},
		{"g2", "globex", model.CategoryCaseStudies, model.DifficultyIntermediate, []model.Tag{tagProblemSolving}, []string{"pm"}, model.RoundFinal, model.QuestionTypeVerbal, 0.4, 0.9, minutes(15), false},
	}

	ds := &seed.Dataset{
		Version:   "test-1",
		Tags:      []model.Tag{tagProblemSolving, tagLeadership, tagScalability, tagAlgorithms},
		Companies: []string{"acme", "globex"},
		Questions: map[string][]model.Question{},
		Patterns: map[string][]model.InterviewPattern{
			"acme":   {{ID: "acme-p1", CompanyID: "acme", Type: model.PatternFocusArea, Description: "Heavy on design", Frequency: 0.7}},
			"globex": {{ID: "globex-p1", CompanyID: "globex", Type: model.PatternFormat, Description: "Pair programming", Frequency: 0.5}},
		},
	}
	for _, s := range acme {
		ds.Questions["acme"] = append(ds.Questions["acme"], s.build())
	}
	for _, s := range globex {
		ds.Questions["globex"] = append(ds.Questions["globex"], s.build())
	}
	return ds
}

func testCatalog(t *testing.T) *catalog.Static {
	t.Helper()
	c, err := catalog.New(
		[]model.Company{
			{ID: "acme", Name: "Acme Corp"},
			{ID: "globex", Name: "Globex"},
			{ID: "initech", Name: "Initech"},
		},
		[]model.Role{
			{ID: "swe", Title: "Software Engineer"},
			{ID: "pm", Title: "Product Manager"},
			{ID: "data-scientist", Title: "Data Scientist"},
		},
	)
	require.NoError(t, err)
	return c
}

func newTestService(t *testing.T, gen Generator) *QuestionService {
	t.Helper()
	return NewQuestionService(seed.Static{Dataset: testDataset()}, testCatalog(t), gen)
}

func questionIDs(qs []model.Question) []string {
	ids := make([]string, 0, len(qs))
	for _, q := range qs {
		ids = append(ids, q.ID)
	}
	return ids
}

// countingSource counts loads and delegates to fn
type countingSource struct {
	mu    sync.Mutex
	calls int
	fn    func(ctx context.Context) (*seed.Dataset, error)
}

func (s *countingSource) Load(ctx context.Context) (*seed.Dataset, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.fn(ctx)
}

func (s *countingSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// recordingGenerator remembers prompts and returns fixed items
type recordingGenerator struct {
	mu      sync.Mutex
	prompts []model.GenerationPrompt
	items   []model.GeneratedItem
	err     error
}

func (g *recordingGenerator) Generate(ctx context.Context, p model.GenerationPrompt) ([]model.GeneratedItem, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, p)
	return g.items, g.err
}

func (g *recordingGenerator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}
