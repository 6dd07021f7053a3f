package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interviewprep/internal/cache"
	"interviewprep/internal/catalog"
	"interviewprep/internal/model"
	"interviewprep/internal/seed"
)

func TestInitializeIsIdempotent(t *testing.T) {
	src := &countingSource{fn: func(ctx context.Context) (*seed.Dataset, error) {
		return testDataset(), nil
	}}
	svc := NewQuestionService(src, testCatalog(t), nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.Initialize(context.Background()))
		}()
	}
	wg.Wait()
	require.NoError(t, svc.Initialize(context.Background()))

	assert.Equal(t, 1, src.Calls())
}

func TestInitializeFailureIsSticky(t *testing.T) {
	boom := errors.New("disk on fire")
	src := &countingSource{fn: func(ctx context.Context) (*seed.Dataset, error) {
		return nil, boom
	}}
	svc := NewQuestionService(src, testCatalog(t), nil)

	err := svc.Initialize(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInitialization)
	assert.ErrorIs(t, err, boom)

	_, err = svc.SearchQuestions(context.Background(), model.QuestionFilter{})
	assert.ErrorIs(t, err, ErrInitialization)
	_, err = svc.AnalyzeCompanyPatterns(context.Background(), "acme")
	assert.ErrorIs(t, err, ErrInitialization)

	assert.Equal(t, 1, src.Calls())
}

func TestInitializeRejectsInvalidDataset(t *testing.T) {
	ds := testDataset()
	ds.Questions["acme"][0].RoleIDs = nil
	svc := NewQuestionService(seed.Static{Dataset: ds}, testCatalog(t), nil)

	err := svc.Initialize(context.Background())
	assert.ErrorIs(t, err, ErrInitialization)
	assert.ErrorIs(t, err, seed.ErrInvalidDataset)
}

func TestInitializeRetriesAfterCancellation(t *testing.T) {
	src := &countingSource{fn: func(ctx context.Context) (*seed.Dataset, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return testDataset(), nil
	}}
	svc := NewQuestionService(src, testCatalog(t), nil)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	err := svc.Initialize(cancelled)
	assert.ErrorIs(t, err, ErrInitialization)
	assert.ErrorIs(t, err, context.Canceled)

	require.NoError(t, svc.Initialize(context.Background()))
	assert.Equal(t, 2, src.Calls())
}

func TestSearchEmptyFilterReturnsEverything(t *testing.T) {
	svc := newTestService(t, nil)

	res, err := svc.SearchQuestions(context.Background(), model.QuestionFilter{})
	require.NoError(t, err)

	assert.Equal(t, 6, res.TotalCount)
	assert.Equal(t, []string{"a1", "a2", "a3", "a4", "g1", "g2"}, questionIDs(res.Questions))
	assert.Len(t, res.Patterns, 2)

	assert.Equal(t, []model.FacetCount{
		{ID: "acme", Name: "Acme Corp", Count: 4},
		{ID: "globex", Name: "Globex", Count: 2},
	}, res.Facets.Companies)

	// single-valued dimensions partition the result
	for name, facets := range map[string][]model.FacetCount{
		"companies":    res.Facets.Companies,
		"categories":   res.Facets.Categories,
		"difficulties": res.Facets.Difficulties,
	} {
		sum := 0
		for _, f := range facets {
			sum += f.Count
		}
		assert.Equal(t, res.TotalCount, sum, name)
	}

	// ties broken by id
	assert.Equal(t, "Advanced", res.Facets.Difficulties[0].ID)
	assert.Equal(t, 2, res.Facets.Difficulties[0].Count)
	assert.Equal(t, "Intermediate", res.Facets.Difficulties[1].ID)
	assert.Equal(t, model.FacetCount{ID: "problem-solving", Name: "Problem Solving", Count: 3}, res.Facets.Tags[0])
}

func TestSearchFilters(t *testing.T) {
	svc := newTestService(t, nil)

	tests := []struct {
		name   string
		filter model.QuestionFilter
		want   []string
	}{
		{
			name:   "company order follows the request",
			filter: model.QuestionFilter{Companies: []string{"globex", "acme"}},
			want:   []string{"g1", "g2", "a1", "a2", "a3", "a4"},
		},
		{
			name:   "role and difficulty combine",
			filter: model.QuestionFilter{Roles: []string{"swe"}, Difficulties: []model.Difficulty{model.DifficultyAdvanced}},
			want:   []string{"a2", "g1"},
		},
		{
			name:   "list values are alternatives",
			filter: model.QuestionFilter{Categories: []model.Category{model.CategoryBehavioral, model.CategoryCaseStudies}},
			want:   []string{"a1", "g2"},
		},
		{
			name:   "tag and round",
			filter: model.QuestionFilter{Tags: []string{"algorithms"}, InterviewRounds: []model.InterviewRound{model.RoundOnsite}},
			want:   []string{"g1"},
		},
		{
			name:   "round any is an exact value",
			filter: model.QuestionFilter{InterviewRounds: []model.InterviewRound{model.RoundAny}},
			want:   []string{"a4"},
		},
		{
			name:   "question type",
			filter: model.QuestionFilter{QuestionTypes: []model.QuestionType{model.QuestionTypeCoding}},
			want:   []string{"a3", "g1"},
		},
		{
			name:   "max time uses default limit",
			filter: model.QuestionFilter{TimeLimit: &model.TimeRange{Max: minutes(10)}},
			want:   []string{"a1", "a3"},
		},
		{
			name:   "time window",
			filter: model.QuestionFilter{TimeLimit: &model.TimeRange{Min: minutes(15), Max: minutes(30)}},
			want:   []string{"a4", "g1", "g2"},
		},
		{
			name: "min frequency",
			filter: model.QuestionFilter{MinFrequency: func() *float64 {
				v := 0.9
				return &v
			}()},
			want: []string{"a1", "a3"},
		},
		{
			name:   "verified only",
			filter: model.QuestionFilter{VerifiedOnly: true},
			want:   []string{"a1", "a2", "g1"},
		},
		{
			name:   "unknown company",
			filter: model.QuestionFilter{Companies: []string{"umbrella"}},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.SearchQuestions(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, questionIDs(res.Questions))
			assert.Equal(t, len(tt.want), res.TotalCount)
			for i := range res.Questions {
				assert.True(t, tt.filter.Matches(&res.Questions[i]), res.Questions[i].ID)
			}
		})
	}
}

func TestSearchPatternsFollowSelectedCompanies(t *testing.T) {
	svc := newTestService(t, nil)

	res, err := svc.SearchQuestions(context.Background(), model.QuestionFilter{
		Companies:    []string{"globex"},
		Difficulties: []model.Difficulty{model.DifficultyExpert},
	})
	require.NoError(t, err)

	assert.Empty(t, res.Questions)
	require.Len(t, res.Patterns, 1)
	assert.Equal(t, "globex-p1", res.Patterns[0].ID)
}

func TestSearchEmbeddedGoogleAdvanced(t *testing.T) {
	companies, err := catalog.Default()
	require.NoError(t, err)
	svc := NewQuestionService(seed.Embedded(), companies, nil)

	res, err := svc.SearchQuestions(context.Background(), model.QuestionFilter{
		Companies:    []string{"google"},
		Difficulties: []model.Difficulty{model.DifficultyAdvanced},
	})
	require.NoError(t, err)

	assert.Contains(t, questionIDs(res.Questions), "google-sd-url-shortener")
	for _, q := range res.Questions {
		assert.Equal(t, "google", q.CompanyID)
		assert.Equal(t, model.DifficultyAdvanced, q.Difficulty)
	}
	require.Len(t, res.Facets.Companies, 1)
	assert.Equal(t, "Google", res.Facets.Companies[0].Name)
}

func TestGetCompanyQuestions(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	all, err := svc.GetCompanyQuestions(ctx, "acme", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a2", "a3", "a4"}, questionIDs(all))

	// the filter's own company list is ignored
	pm, err := svc.GetCompanyQuestions(ctx, "acme", &model.QuestionFilter{
		Companies: []string{"globex"},
		Roles:     []string{"pm"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a4"}, questionIDs(pm))

	none, err := svc.GetCompanyQuestions(ctx, "umbrella", nil)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestGetRoleBasedQuestionSet(t *testing.T) {
	svc := newTestService(t, nil)

	set, err := svc.GetRoleBasedQuestionSet(context.Background(), "acme", "swe")
	require.NoError(t, err)

	assert.Equal(t, "Acme Corp", set.CompanyName)
	assert.Equal(t, "Software Engineer", set.RoleName)
	assert.Equal(t, []string{"a1", "a2", "a3"}, questionIDs(set.Questions))
	assert.Equal(t, []string{"a1", "a3", "a2"}, questionIDs(set.RecommendedOrder))
	assert.Equal(t, 60, set.EstimatedDuration)
	assert.Equal(t, []model.Difficulty{
		model.DifficultyBeginner,
		model.DifficultyIntermediate,
		model.DifficultyAdvanced,
	}, set.DifficultyProgression)
	assert.Equal(t, []string{"Leadership", "Scalability", "Problem Solving", "Algorithms"}, set.FocusAreas)

	// every acme question for the role is present
	all, err := svc.GetCompanyQuestions(context.Background(), "acme", &model.QuestionFilter{Roles: []string{"swe"}})
	require.NoError(t, err)
	assert.ElementsMatch(t, questionIDs(all), questionIDs(set.RecommendedOrder))
}

func TestGetRoleBasedQuestionSetWithoutQuestions(t *testing.T) {
	svc := newTestService(t, nil)

	set, err := svc.GetRoleBasedQuestionSet(context.Background(), "initech", "data-scientist")
	require.NoError(t, err)
	assert.Empty(t, set.Questions)
	assert.Empty(t, set.RecommendedOrder)
	assert.Zero(t, set.EstimatedDuration)
	assert.Empty(t, set.DifficultyProgression)
	assert.Empty(t, set.FocusAreas)
}

func TestNotFoundErrors(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		kind string
		id   string
	}{
		{"role set unknown company", func() error {
			_, err := svc.GetRoleBasedQuestionSet(ctx, "umbrella", "swe")
			return err
		}, "company", "umbrella"},
		{"role set unknown role", func() error {
			_, err := svc.GetRoleBasedQuestionSet(ctx, "acme", "astronaut")
			return err
		}, "role", "astronaut"},
		{"analysis unknown company", func() error {
			_, err := svc.AnalyzeCompanyPatterns(ctx, "umbrella")
			return err
		}, "company", "umbrella"},
		{"analysis company without questions", func() error {
			_, err := svc.AnalyzeCompanyPatterns(ctx, "initech")
			return err
		}, "company", "initech"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.ErrorIs(t, err, ErrNotFound)
			var nf *NotFoundError
			require.ErrorAs(t, err, &nf)
			assert.Equal(t, tt.kind, nf.Kind)
			assert.Equal(t, tt.id, nf.ID)
			assert.Contains(t, err.Error(), tt.id)
		})
	}
}

func TestAnalyzeCompanyPatterns(t *testing.T) {
	svc := newTestService(t, nil)
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	a, err := svc.AnalyzeCompanyPatterns(context.Background(), "acme")
	require.NoError(t, err)

	assert.Equal(t, "acme", a.CompanyID)
	assert.Equal(t, "Acme Corp", a.CompanyName)
	assert.Equal(t, 4, a.TotalQuestions)
	assert.Equal(t, 2.5, a.AverageDifficulty)
	assert.Equal(t, fixed, a.GeneratedAt)

	assert.Equal(t, []model.CategoryShare{
		{Category: model.CategoryBehavioral, Count: 1, Percentage: 25},
		{Category: model.CategorySystemDesign, Count: 1, Percentage: 25},
		{Category: model.CategoryCoding, Count: 1, Percentage: 25},
		{Category: model.CategoryTechnical, Count: 1, Percentage: 25},
	}, a.TopCategories)

	require.Len(t, a.TopTags, 4)
	assert.Equal(t, model.TagShare{TagID: "scalability", Name: "Scalability", Count: 2, Percentage: 50}, a.TopTags[0])
	assert.Equal(t, "leadership", a.TopTags[1].TagID)

	assert.Equal(t, map[model.Difficulty]int{
		model.DifficultyBeginner:     1,
		model.DifficultyIntermediate: 1,
		model.DifficultyAdvanced:     1,
		model.DifficultyExpert:       1,
	}, a.DifficultyDistribution)

	assert.Equal(t, model.TimeAllocation{Behavioral: 10, Technical: 20, SystemDesign: 45, Coding: 5}, a.TimeAllocation)
	assert.Equal(t, model.TimeAllocationPercent{Behavioral: 12.5, Technical: 25, SystemDesign: 56.25, Coding: 6.25},
		a.RecommendedPreparation.TimeAllocation)

	assert.Equal(t, map[model.Category]float64{
		model.CategoryBehavioral:   0.8,
		model.CategorySystemDesign: 0.4,
		model.CategoryCoding:       0.5,
		model.CategoryTechnical:    0.6,
	}, a.SuccessRateByCategory)

	assert.Equal(t, []string{"Scalability", "Leadership", "Problem Solving", "Algorithms"}, a.RecommendedPreparation.FocusAreas)
	assert.Equal(t, []string{"Leadership", "Scalability", "Problem Solving", "Algorithms"}, a.RecommendedPreparation.SkillsToImprove)
	require.Len(t, a.Patterns, 1)
	assert.Equal(t, "acme-p1", a.Patterns[0].ID)
}

func TestAnalyzeCompanyPatternsHistogramHasEveryLevel(t *testing.T) {
	svc := newTestService(t, nil)

	a, err := svc.AnalyzeCompanyPatterns(context.Background(), "globex")
	require.NoError(t, err)

	assert.Len(t, a.DifficultyDistribution, len(model.Difficulties))
	assert.Equal(t, 0, a.DifficultyDistribution[model.DifficultyBeginner])
	assert.Equal(t, 1, a.DifficultyDistribution[model.DifficultyAdvanced])
	// case studies have no time bucket
	assert.Equal(t, model.TimeAllocation{Coding: 30}, a.TimeAllocation)
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestAnalyticsServedFromCache(t *testing.T) {
	mr, client := newRedis(t)
	analytics := cache.NewAnalyticsCache(client, time.Minute)
	svc := newTestService(t, nil)
	svc.SetAnalyticsCache(analytics)
	ctx := context.Background()

	first, err := svc.AnalyzeCompanyPatterns(ctx, "acme")
	require.NoError(t, err)
	assert.True(t, mr.Exists("prep:test-1:company:acme:analysis"))

	// a planted entry proves the second call reads the cache
	planted := *first
	planted.TotalQuestions = 99
	require.NoError(t, analytics.SetCompanyAnalysis(ctx, "test-1", &planted))

	second, err := svc.AnalyzeCompanyPatterns(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, 99, second.TotalQuestions)

	_, err = svc.GetRoleBasedQuestionSet(ctx, "acme", "swe")
	require.NoError(t, err)
	assert.True(t, mr.Exists("prep:test-1:company:acme:role:swe:set"))
}

func TestAnalyticsIgnoresCacheFailures(t *testing.T) {
	mr, client := newRedis(t)
	svc := newTestService(t, nil)
	svc.SetAnalyticsCache(cache.NewAnalyticsCache(client, time.Minute))
	mr.Close()

	a, err := svc.AnalyzeCompanyPatterns(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, 4, a.TotalQuestions)
}

func TestTrendingCompanies(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	empty, err := svc.TrendingCompanies(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, client := newRedis(t)
	svc.SetTrendingCache(cache.NewTrendingCache(client))

	_, err = svc.GetCompanyQuestions(ctx, "globex", nil)
	require.NoError(t, err)
	_, err = svc.GetCompanyQuestions(ctx, "globex", nil)
	require.NoError(t, err)
	_, err = svc.SearchQuestions(ctx, model.QuestionFilter{Companies: []string{"acme", "umbrella"}})
	require.NoError(t, err)
	// unfiltered searches do not count as lookups
	_, err = svc.SearchQuestions(ctx, model.QuestionFilter{})
	require.NoError(t, err)

	top, err := svc.TrendingCompanies(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []model.TrendingCompany{
		{CompanyID: "globex", CompanyName: "Globex", Lookups: 2, Rank: 1},
		{CompanyID: "acme", CompanyName: "Acme Corp", Lookups: 1, Rank: 2},
	}, top)
}
