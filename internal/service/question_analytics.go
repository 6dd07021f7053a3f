package service

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"interviewprep/internal/model"
)

const (
	focusAreaLimit = 5
	topShareLimit  = 5
	skillsLimit    = 10
)

// GetRoleBasedQuestionSet bundles a company's questions for one role with a
// recommended practice order. Both ids must exist in the catalog.
func (s *QuestionService) GetRoleBasedQuestionSet(ctx context.Context, companyID, roleID string) (*model.RoleQuestionSet, error) {
	c, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	company, ok := s.catalog.Company(companyID)
	if !ok {
		return nil, companyNotFound(companyID)
	}
	role, ok := s.catalog.Role(roleID)
	if !ok {
		return nil, roleNotFound(roleID)
	}

	if s.analyticsCache != nil {
		cached, err := s.analyticsCache.GetRoleQuestionSet(ctx, c.version, companyID, roleID)
		if err != nil {
			slog.Warn("role question set cache read failed", "company", companyID, "role", roleID, "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	questions := make([]model.Question, 0)
	for _, q := range c.questions[companyID] {
		if q.HasRole(roleID) {
			questions = append(questions, q)
		}
	}

	set := &model.RoleQuestionSet{
		CompanyID:             companyID,
		CompanyName:           company.Name,
		RoleID:                roleID,
		RoleName:              role.Title,
		Questions:             questions,
		RecommendedOrder:      recommendedOrder(questions),
		EstimatedDuration:     estimatedDuration(questions),
		DifficultyProgression: difficultyProgression(questions),
		FocusAreas:            topTagNames(questions, focusAreaLimit),
	}

	if s.analyticsCache != nil {
		if err := s.analyticsCache.SetRoleQuestionSet(ctx, c.version, set); err != nil {
			slog.Warn("role question set cache write failed", "company", companyID, "role", roleID, "error", err)
		}
	}
	return set, nil
}

// AnalyzeCompanyPatterns aggregates a company's question set. A company
// without questions is reported as not found.
func (s *QuestionService) AnalyzeCompanyPatterns(ctx context.Context, companyID string) (*model.CompanyAnalysis, error) {
	c, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	questions := c.questions[companyID]
	if len(questions) == 0 {
		return nil, companyNotFound(companyID)
	}
	s.recordLookup(ctx, c, companyID)

	if s.analyticsCache != nil {
		cached, err := s.analyticsCache.GetCompanyAnalysis(ctx, c.version, companyID)
		if err != nil {
			slog.Warn("company analysis cache read failed", "company", companyID, "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	analysis := analyzeQuestions(questions)
	analysis.CompanyID = companyID
	analysis.CompanyName = s.companyName(companyID)
	analysis.Patterns = append(make([]model.InterviewPattern, 0, len(c.patterns[companyID])), c.patterns[companyID]...)
	analysis.GeneratedAt = s.now()

	if s.analyticsCache != nil {
		if err := s.analyticsCache.SetCompanyAnalysis(ctx, c.version, analysis); err != nil {
			slog.Warn("company analysis cache write failed", "company", companyID, "error", err)
		}
	}
	return analysis, nil
}

// analyzeQuestions computes every aggregate over a non-empty question set
func analyzeQuestions(questions []model.Question) *model.CompanyAnalysis {
	total := len(questions)

	rankSum := 0
	histogram := make(map[model.Difficulty]int, len(model.Difficulties))
	for _, d := range model.Difficulties {
		histogram[d] = 0
	}

	var categoryOrder []model.Category
	categoryCounts := make(map[model.Category]int)
	successSums := make(map[model.Category]float64)
	var alloc model.TimeAllocation

	for i := range questions {
		q := &questions[i]
		rankSum += q.Difficulty.Rank()
		histogram[q.Difficulty]++

		if categoryCounts[q.Category] == 0 {
			categoryOrder = append(categoryOrder, q.Category)
		}
		categoryCounts[q.Category]++
		successSums[q.Category] += q.CompanySpecific.SuccessRate

		minutes := q.EstimatedMinutes()
		switch q.Category {
		case model.CategoryBehavioral:
			alloc.Behavioral += minutes
		case model.CategoryTechnical:
			alloc.Technical += minutes
		case model.CategorySystemDesign:
			alloc.SystemDesign += minutes
		case model.CategoryCoding:
			alloc.Coding += minutes
		}
	}

	categories := make([]model.CategoryShare, 0, len(categoryOrder))
	for _, cat := range categoryOrder {
		categories = append(categories, model.CategoryShare{
			Category:   cat,
			Count:      categoryCounts[cat],
			Percentage: percent(categoryCounts[cat], total),
		})
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Count > categories[j].Count
	})
	if len(categories) > topShareLimit {
		categories = categories[:topShareLimit]
	}

	successRates := make(map[model.Category]float64, len(categoryCounts))
	for cat, n := range categoryCounts {
		successRates[cat] = round2(successSums[cat] / float64(n))
	}

	tagCounts := countTags(questions)
	topTags := make([]model.TagShare, 0, topShareLimit)
	for _, tc := range tagCounts {
		if len(topTags) == topShareLimit {
			break
		}
		topTags = append(topTags, model.TagShare{
			TagID:      tc.tag.ID,
			Name:       tc.tag.Name,
			Count:      tc.count,
			Percentage: percent(tc.count, total),
		})
	}

	focus := make([]string, 0, len(topTags))
	for _, t := range topTags {
		focus = append(focus, t.Name)
	}

	return &model.CompanyAnalysis{
		TotalQuestions:         total,
		AverageDifficulty:      round2(float64(rankSum) / float64(total)),
		TopCategories:          categories,
		TopTags:                topTags,
		DifficultyDistribution: histogram,
		TimeAllocation:         alloc,
		SuccessRateByCategory:  successRates,
		RecommendedPreparation: model.PreparationPlan{
			FocusAreas:      focus,
			TimeAllocation:  allocationPercent(alloc),
			SkillsToImprove: distinctTagNames(questions, skillsLimit),
		},
	}
}

// recommendedOrder sorts by frequency descending, then difficulty ascending.
// Equal keys keep corpus order.
func recommendedOrder(questions []model.Question) []model.Question {
	ordered := append(make([]model.Question, 0, len(questions)), questions...)
	sort.SliceStable(ordered, func(i, j int) bool {
		fi, fj := ordered[i].CompanySpecific.Frequency, ordered[j].CompanySpecific.Frequency
		if fi != fj {
			return fi > fj
		}
		return ordered[i].Difficulty.Less(ordered[j].Difficulty)
	})
	return ordered
}

func estimatedDuration(questions []model.Question) int {
	total := 0
	for i := range questions {
		total += questions[i].EstimatedMinutes()
	}
	return total
}

// difficultyProgression lists the distinct levels present, ascending
func difficultyProgression(questions []model.Question) []model.Difficulty {
	present := make(map[model.Difficulty]bool)
	for i := range questions {
		present[questions[i].Difficulty] = true
	}
	out := make([]model.Difficulty, 0, len(present))
	for _, d := range model.Difficulties {
		if present[d] {
			out = append(out, d)
		}
	}
	return out
}

type tagCount struct {
	tag   model.Tag
	count int
}

// countTags tallies tag occurrences, most frequent first. Ties keep
// first-seen order.
func countTags(questions []model.Question) []tagCount {
	index := make(map[string]int)
	var counts []tagCount
	for i := range questions {
		for _, t := range questions[i].Tags {
			if pos, ok := index[t.ID]; ok {
				counts[pos].count++
				continue
			}
			index[t.ID] = len(counts)
			counts = append(counts, tagCount{tag: t, count: 1})
		}
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].count > counts[j].count
	})
	return counts
}

func topTagNames(questions []model.Question, limit int) []string {
	out := make([]string, 0, limit)
	for _, tc := range countTags(questions) {
		if len(out) == limit {
			break
		}
		out = append(out, tc.tag.Name)
	}
	return out
}

// distinctTagNames lists tag names in first-seen order
func distinctTagNames(questions []model.Question, limit int) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, limit)
	for i := range questions {
		for _, t := range questions[i].Tags {
			if len(out) == limit {
				return out
			}
			if seen[t.Name] {
				continue
			}
			seen[t.Name] = true
			out = append(out, t.Name)
		}
	}
	return out
}

func allocationPercent(a model.TimeAllocation) model.TimeAllocationPercent {
	total := a.Total()
	return model.TimeAllocationPercent{
		Behavioral:   percent(a.Behavioral, total),
		Technical:    percent(a.Technical, total),
		SystemDesign: percent(a.SystemDesign, total),
		Coding:       percent(a.Coding, total),
	}
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(n) / float64(total) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
