package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"time"

	"interviewprep/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed data/questions.yaml
var embeddedQuestions []byte

type datasetFile struct {
	Version   string        `yaml:"version"`
	Tags      []model.Tag   `yaml:"tags"`
	Companies []companyFile `yaml:"companies"`
}

type companyFile struct {
	ID        string         `yaml:"id"`
	Questions []questionFile `yaml:"questions"`
	Patterns  []patternFile  `yaml:"patterns"`
}

type questionFile struct {
	ID                  string   `yaml:"id"`
	Question            string   `yaml:"question"`
	ExampleAnswer       string   `yaml:"example_answer"`
	Tips                []string `yaml:"tips"`
	CommonMistakes      []string `yaml:"common_mistakes"`
	EvaluationCriteria  []string `yaml:"evaluation_criteria"`
	CompanyExpectations []string `yaml:"company_expectations"`
	Category            string   `yaml:"category"`
	Difficulty          string   `yaml:"difficulty"`
	Tags                []string `yaml:"tags"`
	PrimaryTag          string   `yaml:"primary_tag"`
	Roles               []string `yaml:"roles"`
	Round               string   `yaml:"round"`
	Frequency           float64  `yaml:"frequency"`
	SuccessRate         float64  `yaml:"success_rate"`
	AvgTime             float64  `yaml:"avg_time"`
	FollowUp            float64  `yaml:"follow_up"`
	Type                string   `yaml:"type"`
	TimeLimit           *int     `yaml:"time_limit"`
	Source              string   `yaml:"source"`
	Verified            bool     `yaml:"verified"`
	CreatedAt           string   `yaml:"created_at"`
	UpdatedAt           string   `yaml:"updated_at"`
}

type patternFile struct {
	ID          string            `yaml:"id"`
	Type        string            `yaml:"type"`
	Description string            `yaml:"description"`
	Frequency   float64           `yaml:"frequency"`
	Examples    []string          `yaml:"examples"`
	Metadata    map[string]string `yaml:"metadata"`
}

// Parse decodes and validates a YAML dataset
func Parse(data []byte) (*Dataset, error) {
	var f datasetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %w", ErrInvalidDataset, err)
	}

	tagByID := make(map[string]model.Tag, len(f.Tags))
	for _, t := range f.Tags {
		tagByID[t.ID] = t
	}

	ds := &Dataset{
		Version:   f.Version,
		Tags:      f.Tags,
		Questions: make(map[string][]model.Question, len(f.Companies)),
		Patterns:  make(map[string][]model.InterviewPattern, len(f.Companies)),
	}
	for _, c := range f.Companies {
		if c.ID == "" {
			return nil, fmt.Errorf("%w: company entry without id", ErrInvalidDataset)
		}
		ds.Companies = append(ds.Companies, c.ID)

		questions := make([]model.Question, 0, len(c.Questions))
		for _, qf := range c.Questions {
			q, err := qf.toModel(c.ID, tagByID)
			if err != nil {
				return nil, fmt.Errorf("%w: question %q: %v", ErrInvalidDataset, qf.ID, err)
			}
			questions = append(questions, q)
		}
		ds.Questions[c.ID] = questions

		patterns := make([]model.InterviewPattern, 0, len(c.Patterns))
		for _, pf := range c.Patterns {
			patterns = append(patterns, model.InterviewPattern{
				ID:          pf.ID,
				CompanyID:   c.ID,
				Type:        model.PatternType(pf.Type),
				Description: pf.Description,
				Frequency:   pf.Frequency,
				Examples:    pf.Examples,
				Metadata:    pf.Metadata,
			})
		}
		ds.Patterns[c.ID] = patterns
	}

	if err := Validate(ds); err != nil {
		return nil, err
	}
	return ds, nil
}

func (qf questionFile) toModel(companyID string, tagByID map[string]model.Tag) (model.Question, error) {
	tagIDs := qf.Tags
	if len(tagIDs) == 0 {
		tagIDs = []string{model.DefaultTagID}
	}
	tags := make([]model.Tag, 0, len(tagIDs))
	for _, id := range tagIDs {
		t, ok := tagByID[id]
		if !ok {
			return model.Question{}, fmt.Errorf("unknown tag %q", id)
		}
		tags = append(tags, t)
	}
	primary := qf.PrimaryTag
	if primary == "" {
		primary = tags[0].ID
	}

	createdAt, err := parseDate(qf.CreatedAt)
	if err != nil {
		return model.Question{}, fmt.Errorf("created_at: %w", err)
	}
	updatedAt := createdAt
	if qf.UpdatedAt != "" {
		if updatedAt, err = parseDate(qf.UpdatedAt); err != nil {
			return model.Question{}, fmt.Errorf("updated_at: %w", err)
		}
	}

	round := model.InterviewRound(qf.Round)
	if round == "" {
		round = model.RoundAny
	}
	source := model.QuestionSource(qf.Source)
	if source == "" {
		source = model.SourceInterviewData
	}

	return model.Question{
		ID:                  qf.ID,
		Question:            qf.Question,
		ExampleAnswer:       qf.ExampleAnswer,
		Tips:                qf.Tips,
		CommonMistakes:      qf.CommonMistakes,
		EvaluationCriteria:  qf.EvaluationCriteria,
		CompanyExpectations: qf.CompanyExpectations,
		Category:            model.Category(qf.Category),
		Difficulty:          model.Difficulty(qf.Difficulty),
		Tags:                tags,
		PrimaryTag:          primary,
		CompanyID:           companyID,
		RoleIDs:             qf.Roles,
		CompanySpecific: model.CompanySpecific{
			InterviewRound:     round,
			Frequency:          qf.Frequency,
			SuccessRate:        qf.SuccessRate,
			AvgTimeToAnswer:    qf.AvgTime,
			FollowUpLikelihood: qf.FollowUp,
		},
		Type:      model.QuestionType(qf.Type),
		TimeLimit: qf.TimeLimit,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
		Source:    source,
		Verified:  qf.Verified,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

type embeddedSource struct{}

// Embedded serves the dataset compiled into the binary
func Embedded() Source {
	return embeddedSource{}
}

func (embeddedSource) Load(ctx context.Context) (*Dataset, error) {
	ds, err := Parse(embeddedQuestions)
	if err != nil {
		return nil, fmt.Errorf("embedded dataset: %w", err)
	}
	slog.Info("seed dataset loaded", "source", "embedded", "version", ds.Version, "questions", ds.QuestionCount())
	return ds, nil
}

type fileSource struct {
	path string
}

// File reads a YAML dataset from disk on every Load
func File(path string) Source {
	return fileSource{path: path}
}

func (s fileSource) Load(ctx context.Context) (*Dataset, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	ds, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	slog.Info("seed dataset loaded", "source", "file", "path", s.path, "version", ds.Version, "questions", ds.QuestionCount())
	return ds, nil
}
