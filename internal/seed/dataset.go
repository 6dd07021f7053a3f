package seed

import (
	"context"
	"errors"
	"fmt"

	"interviewprep/internal/model"
)

// Dataset is the full question corpus the service serves from
type Dataset struct {
	Version   string
	Tags      []model.Tag
	Companies []string // company ids in load order
	Questions map[string][]model.Question
	Patterns  map[string][]model.InterviewPattern
}

// Source loads a dataset. Implementations may block on I/O.
type Source interface {
	Load(ctx context.Context) (*Dataset, error)
}

// ErrInvalidDataset wraps every validation failure
var ErrInvalidDataset = errors.New("invalid seed dataset")

// QuestionCount is the number of questions across all companies
func (d *Dataset) QuestionCount() int {
	n := 0
	for _, qs := range d.Questions {
		n += len(qs)
	}
	return n
}

// Validate checks the invariants every consumer relies on
func Validate(d *Dataset) error {
	if d == nil {
		return fmt.Errorf("%w: dataset is nil", ErrInvalidDataset)
	}

	tagIDs := make(map[string]bool, len(d.Tags))
	for _, t := range d.Tags {
		if t.ID == "" {
			return fmt.Errorf("%w: tag with empty id", ErrInvalidDataset)
		}
		if tagIDs[t.ID] {
			return fmt.Errorf("%w: duplicate tag id %q", ErrInvalidDataset, t.ID)
		}
		if !t.Category.Valid() {
			return fmt.Errorf("%w: tag %q has unknown category %q", ErrInvalidDataset, t.ID, t.Category)
		}
		tagIDs[t.ID] = true
	}

	known := make(map[string]bool, len(d.Companies))
	for _, c := range d.Companies {
		if known[c] {
			return fmt.Errorf("%w: company %q listed twice", ErrInvalidDataset, c)
		}
		known[c] = true
	}
	for c := range d.Questions {
		if !known[c] {
			return fmt.Errorf("%w: questions for unlisted company %q", ErrInvalidDataset, c)
		}
	}
	for c := range d.Patterns {
		if !known[c] {
			return fmt.Errorf("%w: patterns for unlisted company %q", ErrInvalidDataset, c)
		}
	}

	questionIDs := make(map[string]bool)
	for _, companyID := range d.Companies {
		for i := range d.Questions[companyID] {
			q := &d.Questions[companyID][i]
			if err := validateQuestion(q, companyID, tagIDs); err != nil {
				return fmt.Errorf("%w: question %q: %v", ErrInvalidDataset, q.ID, err)
			}
			if questionIDs[q.ID] {
				return fmt.Errorf("%w: duplicate question id %q", ErrInvalidDataset, q.ID)
			}
			questionIDs[q.ID] = true
		}
		for _, p := range d.Patterns[companyID] {
			if p.ID == "" {
				return fmt.Errorf("%w: pattern with empty id for %q", ErrInvalidDataset, companyID)
			}
			if p.CompanyID != companyID {
				return fmt.Errorf("%w: pattern %q belongs to %q, listed under %q", ErrInvalidDataset, p.ID, p.CompanyID, companyID)
			}
			if !p.Type.Valid() {
				return fmt.Errorf("%w: pattern %q has unknown type %q", ErrInvalidDataset, p.ID, p.Type)
			}
			if !unitInterval(p.Frequency) {
				return fmt.Errorf("%w: pattern %q frequency %v outside [0,1]", ErrInvalidDataset, p.ID, p.Frequency)
			}
		}
	}
	return nil
}

func validateQuestion(q *model.Question, companyID string, tagIDs map[string]bool) error {
	if q.ID == "" {
		return errors.New("empty id")
	}
	if q.Question == "" {
		return errors.New("empty question text")
	}
	if q.CompanyID != companyID {
		return fmt.Errorf("company %q does not match bucket %q", q.CompanyID, companyID)
	}
	if len(q.RoleIDs) == 0 {
		return errors.New("no role ids")
	}
	if len(q.Tags) == 0 {
		return errors.New("no tags")
	}
	primaryFound := false
	for _, t := range q.Tags {
		if !tagIDs[t.ID] {
			return fmt.Errorf("unknown tag %q", t.ID)
		}
		if t.ID == q.PrimaryTag {
			primaryFound = true
		}
	}
	if !primaryFound {
		return fmt.Errorf("primary tag %q is not among its tags", q.PrimaryTag)
	}
	if !q.Category.Valid() {
		return fmt.Errorf("unknown category %q", q.Category)
	}
	if !q.Difficulty.Valid() {
		return fmt.Errorf("unknown difficulty %q", q.Difficulty)
	}
	if !q.Type.Valid() {
		return fmt.Errorf("unknown type %q", q.Type)
	}
	if q.TimeLimit != nil && *q.TimeLimit <= 0 {
		return fmt.Errorf("time limit %d must be positive", *q.TimeLimit)
	}
	cs := q.CompanySpecific
	if !cs.InterviewRound.Valid() {
		return fmt.Errorf("unknown interview round %q", cs.InterviewRound)
	}
	if !unitInterval(cs.Frequency) || !unitInterval(cs.SuccessRate) || !unitInterval(cs.FollowUpLikelihood) {
		return errors.New("company-specific rates must be within [0,1]")
	}
	if cs.AvgTimeToAnswer < 0 {
		return errors.New("negative average time to answer")
	}
	return nil
}

func unitInterval(v float64) bool {
	return v >= 0 && v <= 1
}

// Static serves a prebuilt dataset
type Static struct {
	Dataset *Dataset
}

func (s Static) Load(ctx context.Context) (*Dataset, error) {
	if s.Dataset == nil {
		return nil, errors.New("static source has no dataset")
	}
	return s.Dataset, nil
}
