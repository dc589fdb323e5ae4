package responses

import (
	"context"
	"testing"
	"time"

	"Backend-Survey-Engine/src/models"
	"Backend-Survey-Engine/src/services/traversal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func toDoc(t *testing.T, v any) bson.D {
	t.Helper()
	raw, err := bson.Marshal(v)
	require.NoError(t, err)
	var d bson.D
	require.NoError(t, bson.Unmarshal(raw, &d))
	return d
}

func TestSessionStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("find by token", func(mt *mtest.T) {
		s := models.ResponseSession{ID: primitive.NewObjectID(), Token: "abc", SurveyID: primitive.NewObjectID(), Step: 2, Version: 4}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.surveyResults", mtest.FirstBatch, toDoc(mt.T, s)))

		got, err := NewSessionStore(mt.Coll).FindByToken(ctx, "abc")
		require.NoError(mt, err)
		assert.Equal(mt, s.ID, got.ID)
		assert.Equal(mt, 2, got.Step)
		assert.Equal(mt, int64(4), got.Version)
		assert.NotNil(mt, got.Answer.Items)
	})

	mt.Run("unknown fingerprint", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.surveyResults", mtest.FirstBatch))

		_, err := NewSessionStore(mt.Coll).FindByFingerprint(ctx, "fp", primitive.NewObjectID())
		assert.ErrorIs(mt, err, traversal.ErrNotFound)
	})

	mt.Run("save bumps version", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		s := &models.ResponseSession{ID: primitive.NewObjectID(), Version: 1}
		require.NoError(mt, NewSessionStore(mt.Coll).Save(ctx, s))
		assert.Equal(mt, int64(2), s.Version)
	})

	mt.Run("save on a moved version conflicts", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		s := &models.ResponseSession{ID: primitive.NewObjectID(), Version: 3}
		err := NewSessionStore(mt.Coll).Save(ctx, s)
		assert.ErrorIs(mt, err, traversal.ErrVersionConflict)
		assert.Equal(mt, int64(3), s.Version)
	})
}

func TestSurveyStoreLoadsAndAssembles(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("assemble", func(mt *mtest.T) {
		surveyID := primitive.NewObjectID()
		sec := models.Section{ID: primitive.NewObjectID(), SurveyID: surveyID, SortableID: 0}
		q := models.Question{ID: primitive.NewObjectID(), Type: models.QuestionTypeText}
		it := models.SurveyItem{ID: primitive.NewObjectID(), SurveyID: surveyID, SectionID: sec.ID, QuestionID: q.ID, Type: models.ItemTypeQuestion}
		orphan := models.SurveyItem{ID: primitive.NewObjectID(), SurveyID: surveyID, SectionID: primitive.NewObjectID()}
		page := models.EndPage{ID: primitive.NewObjectID(), SurveyID: surveyID, Default: true}

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "db.surveys", mtest.FirstBatch, toDoc(mt.T, models.Survey{ID: surveyID, Name: "s", SurveyType: models.SurveyTypeSurvey})),
			mtest.CreateCursorResponse(0, "db.surveySections", mtest.FirstBatch, toDoc(mt.T, sec)),
			mtest.CreateCursorResponse(0, "db.surveyItems", mtest.FirstBatch, toDoc(mt.T, it), toDoc(mt.T, orphan)),
			mtest.CreateCursorResponse(0, "db.questions", mtest.FirstBatch, toDoc(mt.T, q)),
			mtest.CreateCursorResponse(0, "db.surveyEndPages", mtest.FirstBatch, toDoc(mt.T, page)),
		)

		st := NewSurveyStore(SurveyCollections{Surveys: mt.Coll, Sections: mt.Coll, Items: mt.Coll, Questions: mt.Coll, EndPages: mt.Coll})
		survey, err := st.LoadSurvey(context.Background(), surveyID)
		require.NoError(mt, err)
		require.Len(mt, survey.Sections, 1)
		require.Len(mt, survey.Sections[0].Items, 1)
		require.NotNil(mt, survey.Sections[0].Items[0].Question)
		assert.Equal(mt, q.ID, survey.Sections[0].Items[0].Question.ID)
		require.Len(mt, survey.EndPages, 1)
		assert.True(mt, survey.EndPages[0].Default)
	})

	mt.Run("missing survey", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.surveys", mtest.FirstBatch))
		st := NewSurveyStore(SurveyCollections{Surveys: mt.Coll})
		_, err := st.LoadSurvey(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, traversal.ErrNotFound)
	})
}

func TestInviteAndPulseStores(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("invite", func(mt *mtest.T) {
		inv := models.Invite{ID: primitive.NewObjectID(), Token: "t", TTL: 60, CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.invites", mtest.FirstBatch, toDoc(mt.T, inv)))

		got, err := NewInviteStore(mt.Coll).FindByToken(context.Background(), "t")
		require.NoError(mt, err)
		assert.Equal(mt, int64(60), got.TTL)
		assert.True(mt, got.Expired(inv.CreatedAt.Add(time.Minute)))
	})

	mt.Run("pulse round", func(mt *mtest.T) {
		round := models.PulseRoundResult{ID: primitive.NewObjectID(), SurveyItemsMap: map[string][]string{"s": {"a"}}}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.pulseSurveyRoundResults", mtest.FirstBatch, toDoc(mt.T, round)))

		got, err := NewPulseStore(mt.Coll).FindRoundResult(context.Background(), round.ID)
		require.NoError(mt, err)
		assert.True(mt, got.Includes("a"))
		assert.False(mt, got.Includes("b"))
	})

	mt.Run("mark round completed", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))
		err := NewPulseStore(mt.Coll).MarkRoundCompleted(context.Background(), primitive.NewObjectID(), time.Now())
		assert.NoError(mt, err)
	})
}
