package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TypeResponseCompleted = "responses:completed"

type ResponseCompletedPayload struct {
	SessionID    string    `json:"session_id"`
	SurveyID     string    `json:"survey_id"`
	SurveyType   string    `json:"survey_type"`
	PulseRoundID string    `json:"pulse_round_id,omitempty"`
	CompletedAt  time.Time `json:"completed_at"`
}

func NewResponseCompletedTask(p ResponseCompletedPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	// one task per session; a duplicate enqueue is rejected by TaskID
	return asynq.NewTask(TypeResponseCompleted, payload,
		asynq.TaskID(TypeResponseCompleted+":"+p.SessionID),
		asynq.MaxRetry(5),
	), nil
}
