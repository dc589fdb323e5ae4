package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Backend-Survey-Engine/src/logger"
	"Backend-Survey-Engine/src/models"

	"github.com/hibiken/asynq"
)

// Enqueuer is the part of *asynq.Client the notifier needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Notifier turns session completion into a responses:completed task.
type Notifier struct {
	client Enqueuer
}

func NewNotifier(client Enqueuer) *Notifier {
	return &Notifier{client: client}
}

func (n *Notifier) SessionCompleted(ctx context.Context, s *models.ResponseSession, survey *models.Survey) error {
	p := ResponseCompletedPayload{
		SessionID:   s.ID.Hex(),
		SurveyID:    survey.ID.Hex(),
		SurveyType:  survey.SurveyType,
		CompletedAt: time.Now(),
	}
	if s.CompletedAt != nil {
		p.CompletedAt = *s.CompletedAt
	}
	if s.PulseRoundID != nil {
		p.PulseRoundID = s.PulseRoundID.Hex()
	}

	task, err := NewResponseCompletedTask(p)
	if err != nil {
		return fmt.Errorf("build %s task: %w", TypeResponseCompleted, err)
	}
	info, err := n.client.EnqueueContext(ctx, task)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			logger.Debugf("🔁 [Notifier] completion of %s already queued", p.SessionID)
			return nil
		}
		return fmt.Errorf("enqueue %s: %w", TypeResponseCompleted, err)
	}
	logger.Infof("📨 [Notifier] queued %s id=%s session=%s", TypeResponseCompleted, info.ID, p.SessionID)
	return nil
}
