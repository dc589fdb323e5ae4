package traversal

import (
	"context"
	"errors"
	"fmt"

	"Backend-Survey-Engine/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// resolved is the outcome of session resolution. When payload is set the request is
// answered with it right away (expired invite, survey window, already completed).
type resolved struct {
	session *models.ResponseSession
	survey  *models.Survey
	idx     *surveyIndex
	payload *models.AnswerPayload
}

func (e *Engine) findSession(ctx context.Context, key SessionKey) (*models.ResponseSession, error) {
	switch {
	case key.Token != "":
		return e.sessions.FindByToken(ctx, key.Token)
	case key.FingerprintID != "" && key.SurveyID != "":
		surveyID, err := primitive.ObjectIDFromHex(key.SurveyID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid survey id %q", ErrBadRequest, key.SurveyID)
		}
		return e.sessions.FindByFingerprint(ctx, key.FingerprintID, surveyID)
	}
	return nil, fmt.Errorf("%w: token or fingerprintId+surveyId required", ErrBadRequest)
}

func (e *Engine) resolve(ctx context.Context, key SessionKey) (*resolved, error) {
	now := e.now()

	session, err := e.findSession(ctx, key)
	if err != nil {
		return nil, err
	}

	if key.Token != "" {
		invite, err := e.invites.FindByToken(ctx, key.Token)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("load invite: %w", err)
		}
		if invite != nil && invite.Expired(now) {
			return &resolved{session: session, payload: &models.AnswerPayload{IsExpired: true}}, nil
		}
	}

	survey, err := e.surveys.LoadSurvey(ctx, session.SurveyID)
	if err != nil {
		return nil, err
	}
	if survey.Deleted {
		return nil, fmt.Errorf("%w: survey %s", ErrNotFound, survey.ID.Hex())
	}

	r := &resolved{session: session, survey: survey}
	if survey.StartDate != nil && now.Before(*survey.StartDate) {
		r.payload = &models.AnswerPayload{Message: e.messages.Message(models.MsgSurveyNotStarted)}
		return r, nil
	}
	if survey.EndDate != nil && !now.Before(*survey.EndDate) {
		r.payload = &models.AnswerPayload{Message: e.messages.Message(models.MsgSurveyExpired)}
		return r, nil
	}
	if session.Completed && !survey.AllowReAnswer {
		r.payload = &models.AnswerPayload{Message: e.messages.Message(completedKey(survey)), Completed: true}
		return r, nil
	}

	var pulse *models.PulseRoundResult
	if survey.SurveyType == models.SurveyTypePulse && session.PulseRoundID != nil {
		pulse, err = e.pulses.FindRoundResult(ctx, *session.PulseRoundID)
		if err != nil {
			return nil, fmt.Errorf("load pulse round: %w", err)
		}
	}
	r.idx = newSurveyIndex(survey, pulse)
	return r, nil
}

func completedKey(s *models.Survey) string {
	if s.SurveyType == models.SurveyTypeQuiz {
		return models.MsgQuizCompleted
	}
	return models.MsgSurveyCompleted
}
