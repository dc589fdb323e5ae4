package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnswerPayload is what GET/PUT answers and GET stepBack return.
type AnswerPayload struct {
	IsExpired     bool                  `json:"isExpired,omitempty"`
	Message       string                `json:"message,omitempty"`
	Survey        *SurveyPayload        `json:"survey,omitempty"`
	StatusBarData *StatusBarData        `json:"statusBarData,omitempty"`
	Completed     bool                  `json:"completed,omitempty"`
	QuizResult    []QuizItemResult      `json:"quizResult,omitempty"`
	QuizCorrect   *int                  `json:"quizCorrect,omitempty"`
	Answer        map[string]ItemAnswer `json:"answer,omitempty"`
}

type SurveyPayload struct {
	ID            primitive.ObjectID `json:"_id"`
	Name          string             `json:"name"`
	SurveyType    string             `json:"surveyType"`
	SurveySection *SectionPayload    `json:"surveySection,omitempty"`
	NewEndPage    *EndPage           `json:"newEndPage,omitempty"`
}

type SectionPayload struct {
	ID                primitive.ObjectID  `json:"_id"`
	Name              string              `json:"name"`
	SortableID        int                 `json:"sortableId"`
	Step              int                 `json:"step"`
	PulseSurveyDriver *primitive.ObjectID `json:"pulseSurveyDriver,omitempty"`
	SurveyItems       []SurveyItem        `json:"surveyItems"`
}

type StatusBarData struct {
	Passed        int  `json:"passed"`
	Total         int  `json:"total"`
	PassedSection *int `json:"passedSection,omitempty"`
	TotalSection  *int `json:"totalSection,omitempty"`
}

// QuizItemResult is the per-question breakdown shown when showResultText is on.
type QuizItemResult struct {
	ItemID   primitive.ObjectID `json:"surveyItem"`
	Question string             `json:"question"`
	Correct  bool               `json:"quizCorrect"`
	Options  []QuizOptionResult `json:"options,omitempty"`
}

type QuizOptionResult struct {
	ID             primitive.ObjectID `json:"_id"`
	Name           string             `json:"name"`
	Selected       bool               `json:"selected"`
	QuizCorrect    bool               `json:"quizCorrect"`
	QuizResultText string             `json:"quizResultText,omitempty"`
}
