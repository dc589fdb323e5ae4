package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PulseRoundResult records which items a recipient gets in one pulse round.
// SurveyItemsMap is keyed by section (driver) id and lists the item ids of that round.
type PulseRoundResult struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	SurveyID       primitive.ObjectID  `bson:"survey" json:"survey"`
	Round          int                 `bson:"round" json:"round"`
	ContactID      *primitive.ObjectID `bson:"contact,omitempty" json:"contact,omitempty"`
	SurveyItemsMap map[string][]string `bson:"surveyItemsMap" json:"surveyItemsMap"`
	Completed      bool                `bson:"completed" json:"completed"`
	CompletedAt    *time.Time          `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
}

// Includes reports whether the item is part of this round.
func (p *PulseRoundResult) Includes(itemID string) bool {
	for _, ids := range p.SurveyItemsMap {
		for _, id := range ids {
			if id == itemID {
				return true
			}
		}
	}
	return false
}
