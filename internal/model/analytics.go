package model

import "time"

// RoleQuestionSet bundles a company's questions for one role
type RoleQuestionSet struct {
	CompanyID   string `json:"companyId"`
	CompanyName string `json:"companyName"`
	RoleID      string `json:"roleId"`
	RoleName    string `json:"roleName"`

	Questions        []Question `json:"questions"`
	RecommendedOrder []Question `json:"recommendedOrder"` // frequency desc, then difficulty asc

	EstimatedDuration     int          `json:"estimatedDuration"` // minutes
	DifficultyProgression []Difficulty `json:"difficultyProgression"`
	FocusAreas            []string     `json:"focusAreas"` // top 5 tag names
}

// CategoryShare is a category with its share of a question set
type CategoryShare struct {
	Category   Category `json:"category"`
	Count      int      `json:"count"`
	Percentage float64  `json:"percentage"`
}

// TagShare is a tag with its share of a question set
type TagShare struct {
	TagID      string  `json:"tagId"`
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TimeAllocation sums estimated minutes per preparation bucket
type TimeAllocation struct {
	Behavioral   int `json:"behavioral"`
	Technical    int `json:"technical"`
	SystemDesign int `json:"systemDesign"`
	Coding       int `json:"coding"`
}

// Total is the sum over the four buckets
func (t TimeAllocation) Total() int {
	return t.Behavioral + t.Technical + t.SystemDesign + t.Coding
}

// TimeAllocationPercent is TimeAllocation as percentages of its total
type TimeAllocationPercent struct {
	Behavioral   float64 `json:"behavioral"`
	Technical    float64 `json:"technical"`
	SystemDesign float64 `json:"systemDesign"`
	Coding       float64 `json:"coding"`
}

// PreparationPlan is the derived study recommendation for a company
type PreparationPlan struct {
	FocusAreas      []string              `json:"focusAreas"`
	TimeAllocation  TimeAllocationPercent `json:"timeAllocation"`
	SkillsToImprove []string              `json:"skillsToImprove"` // up to 10
}

// CompanyAnalysis aggregates a company's question set
type CompanyAnalysis struct {
	CompanyID   string `json:"companyId"`
	CompanyName string `json:"companyName"`

	TotalQuestions    int     `json:"totalQuestions"`
	AverageDifficulty float64 `json:"averageDifficulty"` // 1-4

	TopCategories          []CategoryShare      `json:"topCategories"`
	TopTags                []TagShare           `json:"topTags"`
	DifficultyDistribution map[Difficulty]int   `json:"difficultyDistribution"`
	TimeAllocation         TimeAllocation       `json:"timeAllocation"`
	SuccessRateByCategory  map[Category]float64 `json:"successRateByCategory"`

	RecommendedPreparation PreparationPlan    `json:"recommendedPreparation"`
	Patterns               []InterviewPattern `json:"patterns"`

	GeneratedAt time.Time `json:"generatedAt"`
}

// TrendingCompany is a company ranked by how often it is looked up
type TrendingCompany struct {
	CompanyID   string `json:"companyId"`
	CompanyName string `json:"companyName"`
	Lookups     int    `json:"lookups"`
	Rank        int    `json:"rank"`
}
