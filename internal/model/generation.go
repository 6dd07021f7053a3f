package model

// GenerationRequest asks for freshly generated questions
type GenerationRequest struct {
	CompanyID       string     `json:"companyId"`
	RoleID          string     `json:"roleId"`
	Categories      []Category `json:"categories,omitempty"`
	Difficulty      Difficulty `json:"difficulty,omitempty"`
	IncludePatterns bool       `json:"includePatterns,omitempty"`
}

// GenerationPrompt is what a generator backend receives
type GenerationPrompt struct {
	Company    string     `json:"company"`
	Role       string     `json:"role"`
	Domain     string     `json:"domain"`
	Difficulty Difficulty `json:"difficulty"`
}

// GeneratedItem is a single raw item returned by a generator backend
type GeneratedItem struct {
	Question    string `json:"question"`
	Explanation string `json:"explanation"`
}

// GenerationResult holds caller-owned generated questions
type GenerationResult struct {
	Questions []Question         `json:"questions"`
	Patterns  []InterviewPattern `json:"patterns"`
}
