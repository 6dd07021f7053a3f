package model

import (
	"fmt"
	"time"
)

// Difficulty is an ordered difficulty level
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
	DifficultyExpert       Difficulty = "Expert"
)

// Difficulties lists every level in ascending order
var Difficulties = []Difficulty{
	DifficultyBeginner,
	DifficultyIntermediate,
	DifficultyAdvanced,
	DifficultyExpert,
}

// Rank maps a level to 1..4. Unknown levels rank 0.
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyBeginner:
		return 1
	case DifficultyIntermediate:
		return 2
	case DifficultyAdvanced:
		return 3
	case DifficultyExpert:
		return 4
	}
	return 0
}

func (d Difficulty) Valid() bool {
	return d.Rank() > 0
}

// Less reports whether d sorts before other
func (d Difficulty) Less(other Difficulty) bool {
	return d.Rank() < other.Rank()
}

// ParseDifficulty accepts the canonical spelling only
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if !d.Valid() {
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
	return d, nil
}

// Category classifies what a question exercises
type Category string

const (
	CategoryBehavioral   Category = "behavioral"
	CategoryTechnical    Category = "technical"
	CategorySystemDesign Category = "system-design"
	CategoryCoding       Category = "coding"
	CategoryCaseStudies  Category = "case-studies"
)

// Categories lists every category
var Categories = []Category{
	CategoryBehavioral,
	CategoryTechnical,
	CategorySystemDesign,
	CategoryCoding,
	CategoryCaseStudies,
}

func (c Category) Valid() bool {
	switch c {
	case CategoryBehavioral, CategoryTechnical, CategorySystemDesign, CategoryCoding, CategoryCaseStudies:
		return true
	}
	return false
}

// DisplayName is the label shown in facet lists
func (c Category) DisplayName() string {
	switch c {
	case CategoryBehavioral:
		return "Behavioral"
	case CategoryTechnical:
		return "Technical"
	case CategorySystemDesign:
		return "System Design"
	case CategoryCoding:
		return "Coding"
	case CategoryCaseStudies:
		return "Case Studies"
	}
	return string(c)
}

// InterviewRound is where in a company's loop a question shows up
type InterviewRound string

const (
	RoundPhone  InterviewRound = "phone"
	RoundVideo  InterviewRound = "video"
	RoundOnsite InterviewRound = "onsite"
	RoundFinal  InterviewRound = "final"
	RoundAny    InterviewRound = "any"
)

func (r InterviewRound) Valid() bool {
	switch r {
	case RoundPhone, RoundVideo, RoundOnsite, RoundFinal, RoundAny:
		return true
	}
	return false
}

// QuestionType defines how the answer is delivered
type QuestionType string

const (
	QuestionTypeVerbal     QuestionType = "verbal"
	QuestionTypeWritten    QuestionType = "written"
	QuestionTypeWhiteboard QuestionType = "whiteboard"
	QuestionTypeCoding     QuestionType = "coding"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeVerbal, QuestionTypeWritten, QuestionTypeWhiteboard, QuestionTypeCoding:
		return true
	}
	return false
}

// QuestionSource records where a question came from
type QuestionSource string

const (
	SourceInterviewData QuestionSource = "interview-data"
	SourceAIGenerated   QuestionSource = "ai-generated"
	SourceCommunity     QuestionSource = "community"
)

// DefaultTimeLimitMinutes is assumed for questions without a time limit
const DefaultTimeLimitMinutes = 5

// CompanySpecific holds observed metrics for a question at its company
type CompanySpecific struct {
	InterviewRound     InterviewRound `json:"interviewRound" bson:"interviewRound"`
	Frequency          float64        `json:"frequency" bson:"frequency"`                   // 0-1
	SuccessRate        float64        `json:"successRate" bson:"successRate"`               // 0-1
	AvgTimeToAnswer    float64        `json:"avgTimeToAnswer" bson:"avgTimeToAnswer"`       // minutes
	FollowUpLikelihood float64        `json:"followUpLikelihood" bson:"followUpLikelihood"` // 0-1
}

// Question is one interview question scoped to a company and its roles
type Question struct {
	ID       string `json:"id" bson:"_id"`
	Question string `json:"question" bson:"question"`

	ExampleAnswer       string   `json:"exampleAnswer,omitempty" bson:"exampleAnswer,omitempty"`
	Tips                []string `json:"tips,omitempty" bson:"tips,omitempty"`
	CommonMistakes      []string `json:"commonMistakes,omitempty" bson:"commonMistakes,omitempty"`
	EvaluationCriteria  []string `json:"evaluationCriteria,omitempty" bson:"evaluationCriteria,omitempty"`
	CompanyExpectations []string `json:"companyExpectations,omitempty" bson:"companyExpectations,omitempty"`

	Category   Category   `json:"category" bson:"category"`
	Difficulty Difficulty `json:"difficulty" bson:"difficulty"`
	Tags       []Tag      `json:"tags" bson:"tags"`
	PrimaryTag string     `json:"primaryTag" bson:"primaryTag"`

	CompanyID       string          `json:"companyId" bson:"companyId"`
	RoleIDs         []string        `json:"roleIds" bson:"roleIds"`
	CompanySpecific CompanySpecific `json:"companySpecific" bson:"companySpecific"`

	Type      QuestionType `json:"type" bson:"type"`
	TimeLimit *int         `json:"timeLimit,omitempty" bson:"timeLimit,omitempty"` // minutes

	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt"`
	Source    QuestionSource `json:"source" bson:"source"`
	Verified  bool           `json:"verified" bson:"verified"`
}

// EstimatedMinutes is the time limit, or the default when none is set
func (q *Question) EstimatedMinutes() int {
	if q.TimeLimit != nil {
		return *q.TimeLimit
	}
	return DefaultTimeLimitMinutes
}

func (q *Question) HasRole(roleID string) bool {
	for _, r := range q.RoleIDs {
		if r == roleID {
			return true
		}
	}
	return false
}

func (q *Question) HasTag(tagID string) bool {
	for _, t := range q.Tags {
		if t.ID == tagID {
			return true
		}
	}
	return false
}
