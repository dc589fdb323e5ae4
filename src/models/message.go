package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message catalog keys used by the traversal engine
const (
	MsgSurveyCompleted    = "survey.isCompleted"
	MsgSurveyExpired      = "survey.expired"
	MsgSurveyNotStarted   = "survey.notStarted"
	MsgSurveyCantStepBack = "survey.cantChangeStep"
	MsgQuizCompleted      = "quiz.isCompleted"
	MsgRequired           = "validation.required"
	MsgTextLimit          = "validation.textLimit"
	MsgNumber             = "validation.number"
	MsgNumberRange        = "validation.numberRange"
	MsgPhone              = "validation.phone"
	MsgEmail              = "validation.email"
	MsgMinAnswers         = "validation.minAnswers"
	MsgMaxAnswers         = "validation.maxAnswers"
	MsgRowRequired        = "validation.rowRequired"
)

// Message is one localized catalog entry.
type Message struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Key   string             `bson:"key" json:"key"`
	Lang  string             `bson:"lang" json:"lang"`
	Value string             `bson:"value" json:"value"`
}
