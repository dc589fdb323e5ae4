package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"Backend-Survey-Engine/src/models"
	"Backend-Survey-Engine/src/services/traversal"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "t-1", Type: task.Type()}, nil
}

type counters struct {
	surveys  []primitive.ObjectID
	rounds   []primitive.ObjectID
	roundErr error
}

func (c *counters) IncrementCompleted(_ context.Context, id primitive.ObjectID) error {
	c.surveys = append(c.surveys, id)
	return nil
}

func (c *counters) MarkRoundCompleted(_ context.Context, id primitive.ObjectID, _ time.Time) error {
	c.rounds = append(c.rounds, id)
	return c.roundErr
}

func TestNotifierEnqueuesCompletion(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	round := primitive.NewObjectID()
	s := &models.ResponseSession{ID: primitive.NewObjectID(), CompletedAt: &at, PulseRoundID: &round}
	survey := &models.Survey{ID: primitive.NewObjectID(), SurveyType: models.SurveyTypePulse}

	q := &fakeEnqueuer{}
	require.NoError(t, NewNotifier(q).SessionCompleted(context.Background(), s, survey))
	require.Len(t, q.tasks, 1)
	assert.Equal(t, TypeResponseCompleted, q.tasks[0].Type())

	var p ResponseCompletedPayload
	require.NoError(t, json.Unmarshal(q.tasks[0].Payload(), &p))
	assert.Equal(t, s.ID.Hex(), p.SessionID)
	assert.Equal(t, survey.ID.Hex(), p.SurveyID)
	assert.Equal(t, round.Hex(), p.PulseRoundID)
	assert.True(t, at.Equal(p.CompletedAt))
}

func TestNotifierDuplicateIsNotAnError(t *testing.T) {
	s := &models.ResponseSession{ID: primitive.NewObjectID()}
	survey := &models.Survey{ID: primitive.NewObjectID()}

	err := NewNotifier(&fakeEnqueuer{err: asynq.ErrTaskIDConflict}).SessionCompleted(context.Background(), s, survey)
	assert.NoError(t, err)

	err = NewNotifier(&fakeEnqueuer{err: errors.New("redis down")}).SessionCompleted(context.Background(), s, survey)
	assert.ErrorContains(t, err, "redis down")
}

func TestHandleResponseCompletedTask(t *testing.T) {
	surveyID := primitive.NewObjectID()
	roundID := primitive.NewObjectID()

	t.Run("survey only", func(t *testing.T) {
		c := &counters{}
		task, err := NewResponseCompletedTask(ResponseCompletedPayload{SessionID: "s1", SurveyID: surveyID.Hex()})
		require.NoError(t, err)

		require.NoError(t, HandleResponseCompletedTask(c, c)(context.Background(), task))
		assert.Equal(t, []primitive.ObjectID{surveyID}, c.surveys)
		assert.Empty(t, c.rounds)
	})

	t.Run("pulse round", func(t *testing.T) {
		c := &counters{}
		task, err := NewResponseCompletedTask(ResponseCompletedPayload{SessionID: "s2", SurveyID: surveyID.Hex(), PulseRoundID: roundID.Hex()})
		require.NoError(t, err)

		require.NoError(t, HandleResponseCompletedTask(c, c)(context.Background(), task))
		assert.Equal(t, []primitive.ObjectID{roundID}, c.rounds)
	})

	t.Run("missing round is ignored", func(t *testing.T) {
		c := &counters{roundErr: traversal.ErrNotFound}
		task, err := NewResponseCompletedTask(ResponseCompletedPayload{SessionID: "s3", SurveyID: surveyID.Hex(), PulseRoundID: roundID.Hex()})
		require.NoError(t, err)
		assert.NoError(t, HandleResponseCompletedTask(c, c)(context.Background(), task))
	})

	t.Run("bad payload skips retry", func(t *testing.T) {
		c := &counters{}
		err := HandleResponseCompletedTask(c, c)(context.Background(), asynq.NewTask(TypeResponseCompleted, []byte("{")))
		assert.ErrorIs(t, err, asynq.SkipRetry)

		task, err := NewResponseCompletedTask(ResponseCompletedPayload{SessionID: "s4", SurveyID: "nope"})
		require.NoError(t, err)
		err = HandleResponseCompletedTask(c, c)(context.Background(), task)
		assert.ErrorIs(t, err, asynq.SkipRetry)
		assert.Empty(t, c.surveys)
	})
}
