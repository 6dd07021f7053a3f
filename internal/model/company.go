package model

// Company is reference data owned by the catalog
type Company struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Industry      string   `json:"industry,omitempty" yaml:"industry"`
	Size          string   `json:"size,omitempty" yaml:"size"`
	Headquarters  string   `json:"headquarters,omitempty" yaml:"headquarters"`
	InterviewLoop []string `json:"interviewLoop,omitempty" yaml:"interview_loop"`
}

// Role is a job role a question can apply to
type Role struct {
	ID         string `json:"id" yaml:"id"`
	Title      string `json:"title" yaml:"title"`
	Level      string `json:"level,omitempty" yaml:"level"`
	Department string `json:"department,omitempty" yaml:"department"`
}
