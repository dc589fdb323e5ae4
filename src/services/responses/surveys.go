package responses

import (
	"context"
	"errors"
	"fmt"

	"Backend-Survey-Engine/src/models"
	"Backend-Survey-Engine/src/services/traversal"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SurveyCollections names the authoring collections a survey is assembled from.
type SurveyCollections struct {
	Surveys   *mongo.Collection
	Sections  *mongo.Collection
	Items     *mongo.Collection
	Questions *mongo.Collection
	EndPages  *mongo.Collection
}

// SurveyStore reads a survey with everything traversal needs in five queries.
type SurveyStore struct {
	c SurveyCollections
}

func NewSurveyStore(c SurveyCollections) *SurveyStore {
	return &SurveyStore{c: c}
}

func (st *SurveyStore) LoadSurvey(ctx context.Context, id primitive.ObjectID) (*models.Survey, error) {
	var survey models.Survey
	if err := st.c.Surveys.FindOne(ctx, bson.M{"_id": id}).Decode(&survey); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("survey %s: %w", id.Hex(), traversal.ErrNotFound)
		}
		return nil, fmt.Errorf("find survey: %w", err)
	}

	bySort := options.Find().SetSort(bson.D{{Key: "sortableId", Value: 1}})

	var sections []models.Section
	if err := findAll(ctx, st.c.Sections, bson.M{"surveyId": id}, &sections, bySort); err != nil {
		return nil, fmt.Errorf("find sections: %w", err)
	}

	var items []models.SurveyItem
	if err := findAll(ctx, st.c.Items, bson.M{"surveyId": id}, &items, bySort); err != nil {
		return nil, fmt.Errorf("find survey items: %w", err)
	}

	questionIDs := make([]primitive.ObjectID, 0, len(items))
	for _, it := range items {
		if !it.QuestionID.IsZero() {
			questionIDs = append(questionIDs, it.QuestionID)
		}
	}
	questions := map[primitive.ObjectID]*models.Question{}
	if len(questionIDs) > 0 {
		var qs []models.Question
		if err := findAll(ctx, st.c.Questions, bson.M{"_id": bson.M{"$in": questionIDs}}, &qs); err != nil {
			return nil, fmt.Errorf("find questions: %w", err)
		}
		for i := range qs {
			questions[qs[i].ID] = &qs[i]
		}
	}

	var endPages []models.EndPage
	if err := findAll(ctx, st.c.EndPages, bson.M{"surveyId": id}, &endPages); err != nil {
		return nil, fmt.Errorf("find end pages: %w", err)
	}

	survey.Sections = assemble(sections, items, questions)
	survey.EndPages = endPages
	return &survey, nil
}

// assemble attaches questions to items and items to their sections.
// Items pointing at an unknown section are dropped.
func assemble(sections []models.Section, items []models.SurveyItem, questions map[primitive.ObjectID]*models.Question) []models.Section {
	pos := make(map[primitive.ObjectID]int, len(sections))
	for i := range sections {
		pos[sections[i].ID] = i
	}
	for _, it := range items {
		si, ok := pos[it.SectionID]
		if !ok {
			continue
		}
		if q, ok := questions[it.QuestionID]; ok {
			it.Question = q
		}
		sections[si].Items = append(sections[si].Items, it)
	}
	return sections
}

func findAll(ctx context.Context, coll *mongo.Collection, filter bson.M, out any, opts ...*options.FindOptions) error {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}

// IncrementCompleted bumps the survey's completion counter.
func (st *SurveyStore) IncrementCompleted(ctx context.Context, id primitive.ObjectID) error {
	_, err := st.c.Surveys.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"completedCount": 1}},
	)
	if err != nil {
		return fmt.Errorf("increment completed count: %w", err)
	}
	return nil
}
