package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"interviewprep/internal/cache"
	"interviewprep/internal/catalog"
	"interviewprep/internal/model"
	"interviewprep/internal/seed"
)

// QuestionService serves interview questions, role bundles and company
// analytics from an in-memory corpus loaded once from a seed source.
// Questions handed out share slices with the corpus and must be treated as
// read-only by callers; generated questions are fresh and caller-owned.
type QuestionService struct {
	source    seed.Source
	catalog   catalog.Catalog
	generator Generator

	analyticsCache cache.AnalyticsCache
	trending       cache.TrendingCache

	mu      sync.Mutex
	data    atomic.Pointer[corpus]
	initErr error

	now func() time.Time
}

// corpus is the read-only view built at initialization
type corpus struct {
	version   string
	tags      []model.Tag
	tagByID   map[string]model.Tag
	companies []string
	questions map[string][]model.Question
	patterns  map[string][]model.InterviewPattern
}

// NewQuestionService creates a new question service
func NewQuestionService(source seed.Source, companies catalog.Catalog, generator Generator) *QuestionService {
	return &QuestionService{
		source:    source,
		catalog:   companies,
		generator: generator,
		now:       time.Now,
	}
}

// SetAnalyticsCache enables caching of role bundles and company analyses
func (s *QuestionService) SetAnalyticsCache(c cache.AnalyticsCache) {
	s.analyticsCache = c
}

// SetTrendingCache enables counting of company lookups
func (s *QuestionService) SetTrendingCache(t cache.TrendingCache) {
	s.trending = t
}

// Initialize loads the corpus. It is safe to call repeatedly and
// concurrently; only the first successful call does any work. A malformed
// or unavailable dataset fails this and every later call with the same
// error, except when the failure came from ctx being done.
func (s *QuestionService) Initialize(ctx context.Context) error {
	_, err := s.load(ctx)
	return err
}

func (s *QuestionService) load(ctx context.Context) (*corpus, error) {
	if c := s.data.Load(); c != nil {
		return c, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if c := s.data.Load(); c != nil {
		return c, nil
	}
	if s.initErr != nil {
		return nil, s.initErr
	}

	ds, err := s.source.Load(ctx)
	if err == nil {
		err = seed.Validate(ds)
	}
	if err != nil {
		wrapped := fmt.Errorf("%w: %w", ErrInitialization, err)
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, wrapped
		}
		s.initErr = wrapped
		slog.Error("question corpus failed to load", "error", err)
		return nil, wrapped
	}

	c := newCorpus(ds)
	s.data.Store(c)
	slog.Info("question corpus ready",
		"version", c.version,
		"companies", len(c.companies),
		"questions", ds.QuestionCount(),
		"tags", len(c.tags),
	)
	return c, nil
}

func newCorpus(ds *seed.Dataset) *corpus {
	c := &corpus{
		version:   ds.Version,
		tags:      append([]model.Tag(nil), ds.Tags...),
		tagByID:   make(map[string]model.Tag, len(ds.Tags)),
		companies: append([]string(nil), ds.Companies...),
		questions: make(map[string][]model.Question, len(ds.Companies)),
		patterns:  make(map[string][]model.InterviewPattern, len(ds.Companies)),
	}
	for _, t := range ds.Tags {
		c.tagByID[t.ID] = t
	}
	for _, id := range ds.Companies {
		c.questions[id] = append([]model.Question(nil), ds.Questions[id]...)
		c.patterns[id] = append([]model.InterviewPattern(nil), ds.Patterns[id]...)
	}
	return c
}

// selectCompanies resolves the filter's company list, keeping the caller's
// order and dropping duplicates. Empty means every known company.
func (c *corpus) selectCompanies(ids []string) []string {
	if len(ids) == 0 {
		return c.companies
	}
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// SearchQuestions filters the corpus and facets the matches
func (s *QuestionService) SearchQuestions(ctx context.Context, filter model.QuestionFilter) (*model.SearchResult, error) {
	c, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	companies := c.selectCompanies(filter.Companies)

	matched := make([]model.Question, 0)
	patterns := make([]model.InterviewPattern, 0)
	for _, companyID := range companies {
		questions := c.questions[companyID]
		for i := range questions {
			if filter.Matches(&questions[i]) {
				matched = append(matched, questions[i])
			}
		}
		patterns = append(patterns, c.patterns[companyID]...)
	}

	if len(filter.Companies) > 0 {
		for _, companyID := range companies {
			s.recordLookup(ctx, c, companyID)
		}
	}

	return &model.SearchResult{
		Questions:  matched,
		TotalCount: len(matched),
		Facets:     s.buildFacets(matched),
		Patterns:   patterns,
	}, nil
}

// GetCompanyQuestions returns one company's questions, optionally filtered.
// The filter's company list is ignored. Unknown companies yield an empty list.
func (s *QuestionService) GetCompanyQuestions(ctx context.Context, companyID string, filter *model.QuestionFilter) ([]model.Question, error) {
	c, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	questions := c.questions[companyID]
	out := make([]model.Question, 0, len(questions))
	for i := range questions {
		if filter.Matches(&questions[i]) {
			out = append(out, questions[i])
		}
	}
	s.recordLookup(ctx, c, companyID)
	return out, nil
}

// CompanyPatterns returns the seeded interview patterns of a company
func (s *QuestionService) CompanyPatterns(ctx context.Context, companyID string) ([]model.InterviewPattern, error) {
	c, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return append(make([]model.InterviewPattern, 0, len(c.patterns[companyID])), c.patterns[companyID]...), nil
}

// Tags returns the tag catalog
func (s *QuestionService) Tags(ctx context.Context) ([]model.Tag, error) {
	c, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return append([]model.Tag(nil), c.tags...), nil
}

// Companies returns the company reference catalog
func (s *QuestionService) Companies() []model.Company {
	return s.catalog.Companies()
}

// Roles returns the role reference catalog
func (s *QuestionService) Roles() []model.Role {
	return s.catalog.Roles()
}

// TrendingCompanies returns the most looked-up companies. Without a
// trending cache the list is empty.
func (s *QuestionService) TrendingCompanies(ctx context.Context, limit int) ([]model.TrendingCompany, error) {
	out := make([]model.TrendingCompany, 0)
	if s.trending == nil {
		return out, nil
	}
	entries, err := s.trending.Top(ctx, limit)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		out = append(out, model.TrendingCompany{
			CompanyID:   e.CompanyID,
			CompanyName: s.companyName(e.CompanyID),
			Lookups:     e.Lookups,
			Rank:        e.Rank,
		})
	}
	return out, nil
}

// recordLookup bumps the trending counter for companies that have questions
func (s *QuestionService) recordLookup(ctx context.Context, c *corpus, companyID string) {
	if s.trending == nil || len(c.questions[companyID]) == 0 {
		return
	}
	if err := s.trending.Increment(ctx, companyID); err != nil {
		slog.Warn("failed to record company lookup", "company", companyID, "error", err)
	}
}

func (s *QuestionService) companyName(id string) string {
	if co, ok := s.catalog.Company(id); ok {
		return co.Name
	}
	return id
}

func (s *QuestionService) roleName(id string) string {
	if r, ok := s.catalog.Role(id); ok {
		return r.Title
	}
	return id
}

// facetCounter accumulates counts keyed by id, remembering display names
type facetCounter struct {
	counts map[string]int
	names  map[string]string
}

func newFacetCounter() *facetCounter {
	return &facetCounter{counts: make(map[string]int), names: make(map[string]string)}
}

func (f *facetCounter) add(id, name string) {
	f.counts[id]++
	if _, ok := f.names[id]; !ok {
		f.names[id] = name
	}
}

// list orders buckets by count descending, then id
func (f *facetCounter) list() []model.FacetCount {
	out := make([]model.FacetCount, 0, len(f.counts))
	for id, n := range f.counts {
		out = append(out, model.FacetCount{ID: id, Name: f.names[id], Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *QuestionService) buildFacets(questions []model.Question) model.SearchFacets {
	companies := newFacetCounter()
	roles := newFacetCounter()
	categories := newFacetCounter()
	difficulties := newFacetCounter()
	tags := newFacetCounter()

	for i := range questions {
		q := &questions[i]
		companies.add(q.CompanyID, s.companyName(q.CompanyID))
		for _, r := range q.RoleIDs {
			roles.add(r, s.roleName(r))
		}
		categories.add(string(q.Category), q.Category.DisplayName())
		difficulties.add(string(q.Difficulty), string(q.Difficulty))
		for _, t := range q.Tags {
			tags.add(t.ID, t.Name)
		}
	}

	return model.SearchFacets{
		Companies:    companies.list(),
		Roles:        roles.list(),
		Categories:   categories.list(),
		Difficulties: difficulties.list(),
		Tags:         tags.list(),
	}
}
