package traversal

import (
	"context"

	"Backend-Survey-Engine/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionStore reads and atomically writes response sessions.
// Save must fail with ErrVersionConflict when the stored version differs from s.Version,
// and bump s.Version on success.
type SessionStore interface {
	FindByToken(ctx context.Context, token string) (*models.ResponseSession, error)
	FindByFingerprint(ctx context.Context, fingerprintID string, surveyID primitive.ObjectID) (*models.ResponseSession, error)
	Save(ctx context.Context, s *models.ResponseSession) error
}

// SurveyStore returns a survey with its sections, items, questions and end pages attached.
type SurveyStore interface {
	LoadSurvey(ctx context.Context, id primitive.ObjectID) (*models.Survey, error)
}

type InviteStore interface {
	FindByToken(ctx context.Context, token string) (*models.Invite, error)
}

type PulseStore interface {
	FindRoundResult(ctx context.Context, id primitive.ObjectID) (*models.PulseRoundResult, error)
}

// MessageCatalog returns the localized text for a key (or the key itself when unknown).
type MessageCatalog interface {
	Message(key string) string
}

// Locker serializes work on one session across processes.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// CompletionNotifier is told once a session transitions to completed.
type CompletionNotifier interface {
	SessionCompleted(ctx context.Context, s *models.ResponseSession, survey *models.Survey) error
}

// SessionKey identifies a session by invite token or by (fingerprint, survey).
type SessionKey struct {
	Token         string
	FingerprintID string
	SurveyID      string
}

func (k SessionKey) lockKey() string {
	if k.Token != "" {
		return "answers:token:" + k.Token
	}
	return "answers:fp:" + k.FingerprintID + ":" + k.SurveyID
}

// Submission is the body of PUT answers.
type Submission struct {
	Answer map[string]any
	Assets []models.Asset
	Device *models.Device
}
