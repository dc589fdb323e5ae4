package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Survey types
const (
	SurveyTypeSurvey = "survey"
	SurveyTypeQuiz   = "quiz"
	SurveyTypePulse  = "pulse"
)

// Item types
const (
	ItemTypeQuestion      = "question"
	ItemTypeContents      = "contents"
	ItemTypeTrendQuestion = "trendQuestion"
)

// --- Survey ---
type Survey struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	SurveyType   string             `bson:"surveyType" json:"surveyType"`
	Deleted      bool               `bson:"deleted,omitempty" json:"-"`
	StartDate    *time.Time         `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate      *time.Time         `bson:"endDate,omitempty" json:"endDate,omitempty"`
	PublicAccess bool               `bson:"publicAccess" json:"publicAccess"`

	DisplaySingleQuestion bool `bson:"displaySingleQuestion" json:"displaySingleQuestion"`
	StatusBar             bool `bson:"statusBar" json:"statusBar"`
	StepBack              bool `bson:"stepBack" json:"stepBack"`
	AllowReAnswer         bool `bson:"allowReAnswer" json:"allowReAnswer"`
	ShowResultText        bool `bson:"showResultText" json:"showResultText"`

	// loaded from their own collections
	Sections []Section `bson:"-" json:"-"`
	EndPages []EndPage `bson:"-" json:"-"`
}

// --- Section ---
type Section struct {
	ID                primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	SurveyID          primitive.ObjectID  `bson:"surveyId" json:"surveyId"`
	Name              string              `bson:"name" json:"name"`
	SortableID        int                 `bson:"sortableId" json:"sortableId"`
	Hide              bool                `bson:"hide" json:"hide"`
	PulseSurveyDriver *primitive.ObjectID `bson:"pulseSurveyDriver,omitempty" json:"pulseSurveyDriver,omitempty"`
	DisplayRules      []DisplayRule       `bson:"displayLogic,omitempty" json:"-"`

	Items []SurveyItem `bson:"-" json:"-"`
}

// --- SurveyItem ---
type SurveyItem struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	SurveyID     primitive.ObjectID `bson:"surveyId" json:"surveyId"`
	SectionID    primitive.ObjectID `bson:"surveySection" json:"surveySection"`
	QuestionID   primitive.ObjectID `bson:"question,omitempty" json:"-"`
	SortableID   int                `bson:"sortableId" json:"sortableId"`
	Type         string             `bson:"type" json:"type"`
	Required     bool               `bson:"required" json:"required"`
	Hide         bool               `bson:"hide" json:"hide"`
	CustomAnswer bool               `bson:"customAnswer" json:"customAnswer"`
	MinAnswers   *int               `bson:"minAnswers,omitempty" json:"minAnswers,omitempty"`
	MaxAnswers   *int               `bson:"maxAnswers,omitempty" json:"maxAnswers,omitempty"`
	TextLimit    *int               `bson:"textLimit,omitempty" json:"textLimit,omitempty"`
	Contents     string             `bson:"contents,omitempty" json:"contents,omitempty"`

	FlowRules    []FlowRule    `bson:"flowLogic,omitempty" json:"-"`
	DisplayRules []DisplayRule `bson:"displayLogic,omitempty" json:"-"`

	Question *Question `bson:"-" json:"question,omitempty"`
}

// Counted reports whether the item takes an answer and therefore counts toward progress.
func (it *SurveyItem) Counted() bool {
	return it.Type != ItemTypeContents && it.Question != nil
}

// --- EndPage ---
type EndPage struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	SurveyID primitive.ObjectID `bson:"surveyId" json:"surveyId"`
	Default  bool               `bson:"default" json:"default"`
	Title    string             `bson:"title" json:"title"`
	Content  string             `bson:"content" json:"content"`
	// quiz routing, checked in order
	QuizRules []QuizRule `bson:"flowLogic,omitempty" json:"-"`
}

// QuizRule routes a finished quiz to an end page by its quizCorrect count.
type QuizRule struct {
	Condition string    `bson:"condition" json:"condition"` // equal | range
	Value     *float64  `bson:"value,omitempty" json:"value,omitempty"`
	Range     *NumRange `bson:"range,omitempty" json:"range,omitempty"`
}
