package model

import "fmt"

// TimeRange bounds a question's time limit in minutes. Nil ends are open.
type TimeRange struct {
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
}

// QuestionFilter narrows a question set. Every field is optional: a nil or
// empty list, a nil pointer and a false flag impose no constraint. Lists are
// OR within a field; fields combine with AND.
type QuestionFilter struct {
	Companies       []string         `json:"companies,omitempty"`
	Roles           []string         `json:"roles,omitempty"`
	Categories      []Category       `json:"categories,omitempty"`
	Difficulties    []Difficulty     `json:"difficulties,omitempty"`
	Tags            []string         `json:"tags,omitempty"`
	InterviewRounds []InterviewRound `json:"interviewRounds,omitempty"`
	QuestionTypes   []QuestionType   `json:"questionTypes,omitempty"`
	TimeLimit       *TimeRange       `json:"timeLimit,omitempty"`
	MinFrequency    *float64         `json:"minFrequency,omitempty"`
	VerifiedOnly    bool             `json:"verifiedOnly,omitempty"`
}

// Validate rejects enum values outside their closed sets and inverted or
// out-of-range bounds.
func (f *QuestionFilter) Validate() error {
	for _, c := range f.Categories {
		if !c.Valid() {
			return fmt.Errorf("unknown category %q", c)
		}
	}
	for _, d := range f.Difficulties {
		if !d.Valid() {
			return fmt.Errorf("unknown difficulty %q", d)
		}
	}
	for _, r := range f.InterviewRounds {
		if !r.Valid() {
			return fmt.Errorf("unknown interview round %q", r)
		}
	}
	for _, t := range f.QuestionTypes {
		if !t.Valid() {
			return fmt.Errorf("unknown question type %q", t)
		}
	}
	if tr := f.TimeLimit; tr != nil && tr.Min != nil && tr.Max != nil && *tr.Min > *tr.Max {
		return fmt.Errorf("time limit min %d exceeds max %d", *tr.Min, *tr.Max)
	}
	if f.MinFrequency != nil && (*f.MinFrequency < 0 || *f.MinFrequency > 1) {
		return fmt.Errorf("min frequency %v outside [0,1]", *f.MinFrequency)
	}
	return nil
}

// Matches reports whether q passes every constraint except Companies,
// which callers apply when choosing candidate sets.
func (f *QuestionFilter) Matches(q *Question) bool {
	if f == nil {
		return true
	}
	if len(f.Roles) > 0 && !anyRole(q, f.Roles) {
		return false
	}
	if len(f.Categories) > 0 && !contains(f.Categories, q.Category) {
		return false
	}
	if len(f.Difficulties) > 0 && !contains(f.Difficulties, q.Difficulty) {
		return false
	}
	if len(f.Tags) > 0 && !anyTag(q, f.Tags) {
		return false
	}
	if len(f.InterviewRounds) > 0 && !contains(f.InterviewRounds, q.CompanySpecific.InterviewRound) {
		return false
	}
	if len(f.QuestionTypes) > 0 && !contains(f.QuestionTypes, q.Type) {
		return false
	}
	if f.TimeLimit != nil {
		minutes := q.EstimatedMinutes()
		if f.TimeLimit.Min != nil && minutes < *f.TimeLimit.Min {
			return false
		}
		if f.TimeLimit.Max != nil && minutes > *f.TimeLimit.Max {
			return false
		}
	}
	if f.MinFrequency != nil && q.CompanySpecific.Frequency < *f.MinFrequency {
		return false
	}
	if f.VerifiedOnly && !q.Verified {
		return false
	}
	return true
}

func anyRole(q *Question, roles []string) bool {
	for _, r := range roles {
		if q.HasRole(r) {
			return true
		}
	}
	return false
}

func anyTag(q *Question, tags []string) bool {
	for _, t := range tags {
		if q.HasTag(t) {
			return true
		}
	}
	return false
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// FacetCount is one bucket of a facet
type FacetCount struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SearchFacets groups matched questions along each filterable dimension
type SearchFacets struct {
	Companies    []FacetCount `json:"companies"`
	Roles        []FacetCount `json:"roles"`
	Categories   []FacetCount `json:"categories"`
	Difficulties []FacetCount `json:"difficulties"`
	Tags         []FacetCount `json:"tags"`
}

// SearchResult is returned by a question search
type SearchResult struct {
	Questions  []Question         `json:"questions"`
	TotalCount int                `json:"totalCount"`
	Facets     SearchFacets       `json:"facets"`
	Patterns   []InterviewPattern `json:"patterns"`
}
