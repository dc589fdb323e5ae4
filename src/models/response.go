package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResponseSession is one respondent's progress through a survey.
// Version guards optimistic updates and is bumped on every save.
type ResponseSession struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Token         string              `bson:"token,omitempty" json:"token,omitempty"`
	FingerprintID string              `bson:"fingerprintId,omitempty" json:"fingerprintId,omitempty"`
	SurveyID      primitive.ObjectID  `bson:"survey" json:"survey"`
	InviteID      *primitive.ObjectID `bson:"invite,omitempty" json:"invite,omitempty"`
	PulseRoundID  *primitive.ObjectID `bson:"pulseSurveyRoundResult,omitempty" json:"pulseSurveyRoundResult,omitempty"`

	Step                int      `bson:"step" json:"step"`
	StepHistory         []int    `bson:"stepHistory" json:"stepHistory"`
	QuestionStepHistory []string `bson:"questionStepHistory" json:"questionStepHistory"`

	Answer      AnswerSheet `bson:"answer" json:"answer"`
	Completed   bool        `bson:"completed" json:"completed"`
	CompletedAt *time.Time  `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	ReAnswering bool        `bson:"reAnswering,omitempty" json:"reAnswering,omitempty"`

	QuizCorrect int                 `bson:"quizCorrect" json:"quizCorrect"`
	QuizResults map[string]bool     `bson:"quizResults,omitempty" json:"-"`
	EndPageID   *primitive.ObjectID `bson:"endPage,omitempty" json:"endPage,omitempty"`

	Device *Device `bson:"device,omitempty" json:"device,omitempty"`
	Assets []Asset `bson:"assets,omitempty" json:"assets,omitempty"`

	Version   int64     `bson:"version" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// AnswerSheet holds item answers keyed by item id plus the skip logs.
type AnswerSheet struct {
	Items         map[string]ItemAnswer `bson:"items" json:"items"`
	Skipped       []string              `bson:"skipped" json:"skipped"`
	SkippedByFlow []string              `bson:"skippedByFlow" json:"skippedByFlow"`
}

// ItemAnswer is the stored answer of one item. Which fields are set depends on the question type.
type ItemAnswer struct {
	Value        *string    `bson:"value,omitempty" json:"value,omitempty"`
	Number       *float64   `bson:"number,omitempty" json:"number,omitempty"`
	Options      []string   `bson:"options,omitempty" json:"options,omitempty"`
	Cells        []GridCell `bson:"cells,omitempty" json:"cells,omitempty"`
	CustomAnswer *string    `bson:"customAnswer,omitempty" json:"customAnswer,omitempty"`
}

// Structured reports whether any type-shaped field is set.
func (a ItemAnswer) Structured() bool {
	return a.Value != nil || a.Number != nil || len(a.Options) > 0 || len(a.Cells) > 0
}

// IsEmpty reports whether the answer carries nothing at all.
func (a ItemAnswer) IsEmpty() bool {
	if a.CustomAnswer != nil && *a.CustomAnswer != "" {
		return false
	}
	if a.Value != nil {
		return *a.Value == ""
	}
	return a.Number == nil && len(a.Options) == 0 && len(a.Cells) == 0
}

type Device struct {
	Type      string `bson:"type" json:"type" validate:"omitempty,oneof=desktop mobile tablet"`
	OS        string `bson:"os,omitempty" json:"os,omitempty"`
	Browser   string `bson:"browser,omitempty" json:"browser,omitempty"`
	UserAgent string `bson:"userAgent,omitempty" json:"userAgent,omitempty"`
}

type Asset struct {
	ItemID string `bson:"surveyItem" json:"surveyItem" validate:"required"`
	URL    string `bson:"url" json:"url" validate:"required,url"`
	Name   string `bson:"name,omitempty" json:"name,omitempty"`
}
