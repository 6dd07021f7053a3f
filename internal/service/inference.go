package service

import (
	"strings"

	"interviewprep/internal/model"
)

// categoryRules are checked in order; the first rule with a matching
// keyword wins.
var categoryRules = []struct {
	category model.Category
	keywords []string
}{
	{model.CategorySystemDesign, []string{"design", "system", "architecture"}},
	{model.CategoryCoding, []string{"code", "implement", "algorithm"}},
	{model.CategoryBehavioral, []string{"tell me about", "describe a time"}},
	{model.CategoryCaseStudies, []string{"case", "scenario"}},
}

// InferCategory classifies free question text by keyword
func InferCategory(text string) model.Category {
	lower := strings.ToLower(text)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return model.CategoryTechnical
}

// DefaultTag is used when no catalog tag matches
var DefaultTag = model.Tag{
	ID:          model.DefaultTagID,
	Name:        "Problem Solving",
	Category:    model.TagCategoryTechnical,
	Description: "Structured approach to unfamiliar problems",
}

// InferTags returns every tag whose name or id (dashes read as spaces)
// occurs in text, in catalog order. With no match it returns the catalog's
// default tag, or DefaultTag when the catalog lacks one.
func InferTags(text string, tags []model.Tag) []model.Tag {
	lower := strings.ToLower(text)
	var matched []model.Tag
	for _, t := range tags {
		name := strings.ToLower(t.Name)
		id := strings.ToLower(strings.ReplaceAll(t.ID, "-", " "))
		if (name != "" && strings.Contains(lower, name)) || (id != "" && strings.Contains(lower, id)) {
			matched = append(matched, t)
		}
	}
	if len(matched) > 0 {
		return matched
	}
	for _, t := range tags {
		if t.ID == model.DefaultTagID {
			return []model.Tag{t}
		}
	}
	return []model.Tag{DefaultTag}
}
