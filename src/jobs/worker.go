package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"Backend-Survey-Engine/src/logger"
	"Backend-Survey-Engine/src/metrics"
	"Backend-Survey-Engine/src/services/traversal"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SurveyCounter records survey-level completion counts.
type SurveyCounter interface {
	IncrementCompleted(ctx context.Context, surveyID primitive.ObjectID) error
}

// RoundMarker flags a pulse round recipient as done.
type RoundMarker interface {
	MarkRoundCompleted(ctx context.Context, roundID primitive.ObjectID, at time.Time) error
}

// HandleResponseCompletedTask updates the counters owned by adjacent services.
func HandleResponseCompletedTask(surveys SurveyCounter, rounds RoundMarker) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p ResponseCompletedPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			logger.Errorf("❌ Payload decode error: %v", err)
			// a broken payload will never decode; do not retry it
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		surveyID, err := primitive.ObjectIDFromHex(p.SurveyID)
		if err != nil {
			return fmt.Errorf("survey id %q: %v: %w", p.SurveyID, err, asynq.SkipRetry)
		}
		if err := surveys.IncrementCompleted(ctx, surveyID); err != nil {
			logger.Errorf("❌ Failed to count completion of %s: %v", p.SurveyID, err)
			return err
		}

		if p.PulseRoundID != "" {
			roundID, err := primitive.ObjectIDFromHex(p.PulseRoundID)
			if err != nil {
				return fmt.Errorf("pulse round id %q: %v: %w", p.PulseRoundID, err, asynq.SkipRetry)
			}
			err = rounds.MarkRoundCompleted(ctx, roundID, p.CompletedAt)
			if err != nil && !errors.Is(err, traversal.ErrNotFound) {
				logger.Errorf("❌ Failed to close pulse round %s: %v", p.PulseRoundID, err)
				return err
			}
		}

		metrics.CompletionTasks.Inc()
		logger.Infof("✅ Completion recorded: session=%s survey=%s", p.SessionID, p.SurveyID)
		return nil
	}
}

// RegisterHandlers binds every task type of this package.
func RegisterHandlers(mux *asynq.ServeMux, surveys SurveyCounter, rounds RoundMarker) {
	mux.HandleFunc(TypeResponseCompleted, HandleResponseCompletedTask(surveys, rounds))
}

// RunWorker serves tasks until ctx is cancelled.
func RunWorker(ctx context.Context, redisAddr string, mux *asynq.ServeMux) error {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 5,
			Queues:      map[string]int{"default": 1},
		},
	)
	if err := srv.Start(mux); err != nil {
		return fmt.Errorf("start asynq worker: %w", err)
	}
	logger.Infof("✅ Asynq worker started")

	<-ctx.Done()
	srv.Shutdown()
	logger.Infof("🛑 Asynq worker stopped")
	return nil
}
