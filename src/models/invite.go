package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Invite is issued by the campaign service; the engine only reads it to check expiry.
type Invite struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Token     string              `bson:"token" json:"token"`
	SurveyID  primitive.ObjectID  `bson:"survey" json:"survey"`
	ContactID *primitive.ObjectID `bson:"contact,omitempty" json:"contact,omitempty"`
	TTL       int64               `bson:"ttl" json:"ttl"` // seconds, 0 = never expires
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
}

// Expired reports whether the invite's time-to-live elapsed at now.
func (i *Invite) Expired(now time.Time) bool {
	if i.TTL <= 0 {
		return false
	}
	return !now.Before(i.CreatedAt.Add(time.Duration(i.TTL) * time.Second))
}
