package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"interviewprep/internal/model"
	"interviewprep/internal/seed"
)

// ErrNoDataset is returned by Load when nothing has been stored yet
var ErrNoDataset = errors.New("no question dataset stored")

const metaID = "current"

// QuestionRepo persists the question corpus in MongoDB. It doubles as a
// seed.Source so the service can load from it directly.
type QuestionRepo interface {
	seed.Source
	ReplaceAll(ctx context.Context, ds *seed.Dataset) error
	Version(ctx context.Context) (string, error)
}

type questionRepo struct {
	tags      *mongo.Collection
	questions *mongo.Collection
	patterns  *mongo.Collection
	meta      *mongo.Collection
}

// Documents carry their position so Load can restore dataset order

type tagDoc struct {
	model.Tag `bson:",inline"`
	Position  int `bson:"position"`
}

type questionDoc struct {
	model.Question `bson:",inline"`
	Position       int `bson:"position"`
}

type patternDoc struct {
	model.InterviewPattern `bson:",inline"`
	Position               int `bson:"position"`
}

type metaDoc struct {
	ID        string    `bson:"_id"`
	Version   string    `bson:"version"`
	Companies []string  `bson:"companies"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// NewQuestionRepo creates a new question repository
func NewQuestionRepo(db *mongo.Database) QuestionRepo {
	return &questionRepo{
		tags:      db.Collection("tags"),
		questions: db.Collection("questions"),
		patterns:  db.Collection("patterns"),
		meta:      db.Collection("dataset_meta"),
	}
}

func (r *questionRepo) Version(ctx context.Context) (string, error) {
	var meta metaDoc
	err := r.meta.FindOne(ctx, bson.M{"_id": metaID}).Decode(&meta)
	if err == mongo.ErrNoDocuments {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return meta.Version, nil
}

// Load reads the stored dataset back in the order it was written
func (r *questionRepo) Load(ctx context.Context) (*seed.Dataset, error) {
	var meta metaDoc
	err := r.meta.FindOne(ctx, bson.M{"_id": metaID}).Decode(&meta)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNoDataset
	}
	if err != nil {
		return nil, fmt.Errorf("load dataset meta: %w", err)
	}

	byPosition := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})

	var tags []tagDoc
	if err := findAll(ctx, r.tags, byPosition, &tags); err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}
	var questions []questionDoc
	if err := findAll(ctx, r.questions, byPosition, &questions); err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	var patterns []patternDoc
	if err := findAll(ctx, r.patterns, byPosition, &patterns); err != nil {
		return nil, fmt.Errorf("load patterns: %w", err)
	}

	ds := &seed.Dataset{
		Version:   meta.Version,
		Tags:      make([]model.Tag, 0, len(tags)),
		Companies: meta.Companies,
		Questions: make(map[string][]model.Question, len(meta.Companies)),
		Patterns:  make(map[string][]model.InterviewPattern, len(meta.Companies)),
	}
	for _, c := range meta.Companies {
		ds.Questions[c] = []model.Question{}
		ds.Patterns[c] = []model.InterviewPattern{}
	}
	for _, t := range tags {
		ds.Tags = append(ds.Tags, t.Tag)
	}
	for _, q := range questions {
		ds.Questions[q.CompanyID] = append(ds.Questions[q.CompanyID], q.Question)
	}
	for _, p := range patterns {
		ds.Patterns[p.CompanyID] = append(ds.Patterns[p.CompanyID], p.InterviewPattern)
	}
	return ds, nil
}

// ReplaceAll validates ds, upserts every document and removes the ones that
// are no longer part of it. The meta document is written last, so a reader
// never sees a version whose documents are missing.
func (r *questionRepo) ReplaceAll(ctx context.Context, ds *seed.Dataset) error {
	if err := seed.Validate(ds); err != nil {
		return err
	}
	opts := options.Replace().SetUpsert(true)

	tagIDs := make([]string, 0, len(ds.Tags))
	for i, t := range ds.Tags {
		if _, err := r.tags.ReplaceOne(ctx, bson.M{"_id": t.ID}, tagDoc{Tag: t, Position: i}, opts); err != nil {
			return fmt.Errorf("upsert tag %s: %w", t.ID, err)
		}
		tagIDs = append(tagIDs, t.ID)
	}

	var questionIDs, patternIDs []string
	qPos, pPos := 0, 0
	for _, companyID := range ds.Companies {
		for _, q := range ds.Questions[companyID] {
			if _, err := r.questions.ReplaceOne(ctx, bson.M{"_id": q.ID}, questionDoc{Question: q, Position: qPos}, opts); err != nil {
				return fmt.Errorf("upsert question %s: %w", q.ID, err)
			}
			questionIDs = append(questionIDs, q.ID)
			qPos++
		}
		for _, p := range ds.Patterns[companyID] {
			if _, err := r.patterns.ReplaceOne(ctx, bson.M{"_id": p.ID}, patternDoc{InterviewPattern: p, Position: pPos}, opts); err != nil {
				return fmt.Errorf("upsert pattern %s: %w", p.ID, err)
			}
			patternIDs = append(patternIDs, p.ID)
			pPos++
		}
	}

	if err := prune(ctx, r.tags, tagIDs); err != nil {
		return fmt.Errorf("prune tags: %w", err)
	}
	if err := prune(ctx, r.questions, questionIDs); err != nil {
		return fmt.Errorf("prune questions: %w", err)
	}
	if err := prune(ctx, r.patterns, patternIDs); err != nil {
		return fmt.Errorf("prune patterns: %w", err)
	}

	meta := metaDoc{
		ID:        metaID,
		Version:   ds.Version,
		Companies: ds.Companies,
		UpdatedAt: time.Now().UTC(),
	}
	if _, err := r.meta.ReplaceOne(ctx, bson.M{"_id": metaID}, meta, opts); err != nil {
		return fmt.Errorf("upsert dataset meta: %w", err)
	}
	return nil
}

func findAll(ctx context.Context, coll *mongo.Collection, opts *options.FindOptions, out interface{}) error {
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}

func prune(ctx context.Context, coll *mongo.Collection, keep []string) error {
	if keep == nil {
		keep = []string{}
	}
	_, err := coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$nin": keep}})
	return err
}
