package model

// PatternType describes what kind of regularity a pattern captures
type PatternType string

const (
	PatternQuestionStyle         PatternType = "question-style"
	PatternDifficultyProgression PatternType = "difficulty-progression"
	PatternFocusArea             PatternType = "focus-area"
	PatternFormat                PatternType = "format"
)

func (p PatternType) Valid() bool {
	switch p {
	case PatternQuestionStyle, PatternDifficultyProgression, PatternFocusArea, PatternFormat:
		return true
	}
	return false
}

// InterviewPattern is a recurring trait of a company's interview process
type InterviewPattern struct {
	ID          string            `json:"id" bson:"_id"`
	CompanyID   string            `json:"companyId" bson:"companyId"`
	Type        PatternType       `json:"type" bson:"type"`
	Description string            `json:"description" bson:"description"`
	Frequency   float64           `json:"frequency" bson:"frequency"` // 0-1
	Examples    []string          `json:"examples,omitempty" bson:"examples,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" bson:"metadata,omitempty"`
}
